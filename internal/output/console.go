package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

var consoleStyles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorAccent),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

// Console prints user-facing text. Styling is applied only on a terminal.
type Console struct {
	w      io.Writer
	styled bool
}

// NewConsole wraps w, enabling styles when w is a terminal.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, styled: IsTerminal(w)}
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write passes progress text through unstyled.
func (c *Console) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c *Console) render(s lipgloss.Style, text string) string {
	if !c.styled {
		return text
	}
	return s.Render(text)
}

func (c *Console) Title(text string) {
	fmt.Fprintln(c.w, c.render(consoleStyles.Title, text))
}

func (c *Console) Info(text string) {
	fmt.Fprintln(c.w, c.render(consoleStyles.Muted, text))
}

func (c *Console) Success(text string) {
	fmt.Fprintln(c.w, c.render(consoleStyles.Success, "✓ "+text))
}

func (c *Console) Warning(text string) {
	fmt.Fprintln(c.w, c.render(consoleStyles.Warning, "⚠ "+text))
}

func (c *Console) Error(text string) {
	fmt.Fprintln(c.w, c.render(consoleStyles.Error, "✗ "+text))
}

// Box prints text inside a rounded border.
func (c *Console) Box(text string) {
	if !c.styled {
		fmt.Fprintln(c.w, text)
		return
	}
	fmt.Fprintln(c.w, consoleStyles.Box.Render(text))
}
