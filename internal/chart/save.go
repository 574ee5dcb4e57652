package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/daryltucker/complexity-runner/internal/model"
)

// pixelDPI makes one canvas point one output pixel.
const pixelDPI = 72

// NewCanvas returns a w x h canvas for the given format (png, jpg, svg, pdf, ...).
func NewCanvas(format string, w, h int) (vg.CanvasWriterTo, error) {
	width, height := vg.Length(w), vg.Length(h)
	switch strings.ToLower(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(pixelDPI))}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(pixelDPI))}, nil
	case "svg":
		return vgsvg.New(width, height), nil
	default:
		return draw.NewFormattedCanvas(width, height, format)
	}
}

// Write renders samples in format to out.
func Write(out io.Writer, format string, samples []model.Sample, label string, w, h int) error {
	c, err := NewCanvas(format, w, h)
	if err != nil {
		return err
	}
	if err := Render(c, samples, label, w, h); err != nil {
		return err
	}
	if _, err := c.WriteTo(out); err != nil {
		return fmt.Errorf("encode %s chart: %w", format, err)
	}
	return nil
}

// SaveFile renders samples to path; the format follows the file extension.
func SaveFile(path string, samples []model.Sample, label string, w, h int) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("chart file %q has no extension", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Write(f, format, samples, label, w, h); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
