// Package input generates the integer arrays fed to the measured algorithms.
package input

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"strings"
)

// DefaultMaxElements caps a single generated array (about 400 MB of ints).
const DefaultMaxElements = 50_000_000

// Order is the reordering applied after random generation.
type Order int

const (
	Random Order = iota
	Ascending
	Descending
	AlmostSorted
)

var orderNames = []string{"Random", "Ascending", "Descending", "Almost Sorted"}

// Orders returns all order modes in display order.
func Orders() []Order {
	return []Order{Random, Ascending, Descending, AlmostSorted}
}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder accepts "Almost Sorted", "almost-sorted", "AlmostSorted" and so on.
func ParseOrder(s string) (Order, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range orderNames {
		if key == strings.ToLower(strings.ReplaceAll(name, " ", "")) {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input order %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	if o < 0 || int(o) >= len(orderNames) {
		return nil, fmt.Errorf("unknown input order %d", int(o))
	}
	return []byte(strings.ToLower(strings.ReplaceAll(orderNames[o], " ", "-"))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(text []byte) error {
	v, err := ParseOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// ErrOutOfMemory is the sentinel wrapped by ExhaustedError.
var ErrOutOfMemory = errors.New("out of memory")

// ExhaustedError reports that the array for Size could not be allocated.
type ExhaustedError struct {
	Size int
	Err  error
}

func (e *ExhaustedError) Error() string {
	msg := fmt.Sprintf("failed to generate data for size %d", e.Size)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ExhaustedError) Unwrap() error {
	return ErrOutOfMemory
}

// Generator produces input arrays from a single random stream.
// It is not safe for concurrent use.
type Generator struct {
	rng         *rand.Rand
	maxElements int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the random stream reproducible. A zero seed is ignored.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithRand sets the random source directly.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithMaxElements sets the allocation ceiling. Non-positive values keep the default.
func WithMaxElements(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxElements = n
		}
	}
}

// New creates a Generator seeded from entropy unless an option says otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		maxElements: DefaultMaxElements,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns size uniform integers in [0, size*10) reordered per order.
func (g *Generator) Generate(size int, order Order) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}
	if order < Random || order > AlmostSorted {
		return nil, fmt.Errorf("unknown input order %d", int(order))
	}

	data, err := g.allocate(size)
	if err != nil {
		return nil, err
	}

	bound := size * 10
	for i := range data {
		data[i] = g.rng.IntN(bound)
	}

	switch order {
	case Ascending:
		slices.Sort(data)
	case Descending:
		slices.Sort(data)
		reverse(data)
	case AlmostSorted:
		slices.Sort(data)
		for range size / 10 {
			i := g.rng.IntN(size)
			j := g.rng.IntN(size)
			data[i], data[j] = data[j], data[i]
		}
	}

	return data, nil
}

func (g *Generator) allocate(size int) (data []int, err error) {
	if size > g.maxElements {
		return nil, &ExhaustedError{
			Size: size,
			Err:  fmt.Errorf("%d elements exceeds limit of %d", size, g.maxElements),
		}
	}
	defer func() {
		if rec := recover(); rec != nil {
			re, ok := rec.(runtime.Error)
			if !ok {
				panic(rec)
			}
			data, err = nil, &ExhaustedError{Size: size, Err: re}
		}
	}()
	return make([]int, size), nil
}

// reverse swaps symmetric pairs from both ends toward the middle.
func reverse(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
