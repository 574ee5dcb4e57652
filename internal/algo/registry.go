/*
PURPOSE:
  Registry of the six measured algorithms.
  Maps an algorithm ID to its implementation and its complexity description.

REQUIREMENTS:
  User-specified:
  - Linear Search, Binary Search, Bubble Sort, Merge Sort, Quick Sort, Fibonacci Recursive.
  - Show best/average/worst time and space complexity for each.

  Implementation-discovered:
  - Sorting algorithms are destructive, so they receive a working copy.
  - Go cannot recover from a real stack overflow, so recursive algorithms
    count depth and abort with ErrStackExhausted once the limit is passed.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine (Execute), internal/cli (Describe, Parse, All)
  - Depends on: nothing inside the module.

ERROR HANDLING:
  - ErrUnknownAlgorithm for IDs outside the closed set (a programming error).
  - ErrStackExhausted when the recursion limit is exceeded.

IMPLEMENTATION RULES:
  - Closed enum dispatch. No dynamic registration.
  - Return values of the algorithms are discarded by Execute.

USAGE:
  reg := algo.NewRegistry(algo.DefaultMaxDepth)
  err := reg.Execute(algo.QuickSort, data, len(data))

RELATED FILES:
  - internal/algo/algorithms.go
  - internal/engine/runner.go
*/

package algo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnknownAlgorithm is returned for IDs outside the closed algorithm set.
	ErrUnknownAlgorithm = errors.New("unknown algorithm selected")

	// ErrStackExhausted is returned when a recursive algorithm passes the depth limit.
	ErrStackExhausted = errors.New("recursion depth limit exceeded")
)

// DefaultMaxDepth is the default recursion limit for recursive algorithms.
const DefaultMaxDepth = 50_000

// FibonacciMaxSize is the largest size FibonacciRecursive accepts per run.
const FibonacciMaxSize = 40

// ID identifies one of the measured algorithms.
type ID int

const (
	LinearSearch ID = iota
	BinarySearch
	BubbleSort
	MergeSort
	QuickSort
	FibonacciRecursive
)

// Spec describes a single algorithm.
type Spec struct {
	ID          ID
	Name        string
	Slug        string
	Description string
	// Sorts is true when the algorithm mutates its input.
	Sorts bool

	run func(x *execution, data []int, size int)
}

var specs = []Spec{
	{
		ID:    LinearSearch,
		Name:  "Linear Search",
		Slug:  "linear-search",
		Sorts: false,
		Description: "Linear Search:\n" +
			"Time Complexity:\n" +
			"  Best: O(1) - Element found at first position\n" +
			"  Average: O(n) - Element found in the middle\n" +
			"  Worst: O(n) - Element not found or at last position\n" +
			"Space Complexity: O(1) - No additional space needed",
		run: func(_ *execution, data []int, size int) {
			linearSearch(data, data[size-1])
		},
	},
	{
		ID:    BinarySearch,
		Name:  "Binary Search",
		Slug:  "binary-search",
		Sorts: false,
		Description: "Binary Search:\n" +
			"Time Complexity:\n" +
			"  Best: O(1) - Element found at middle\n" +
			"  Average: O(log n) - Element found in logarithmic time\n" +
			"  Worst: O(log n) - Element not found\n" +
			"Space Complexity: O(1) - Iterative implementation\n" +
			"Space Complexity: O(log n) - Recursive implementation",
		run: func(_ *execution, data []int, size int) {
			slices.Sort(data)
			binarySearch(data, data[size-1])
		},
	},
	{
		ID:    BubbleSort,
		Name:  "Bubble Sort",
		Slug:  "bubble-sort",
		Sorts: true,
		Description: "Bubble Sort:\n" +
			"Time Complexity:\n" +
			"  Best: O(n) - When array is already sorted\n" +
			"  Average: O(n²) - For random data\n" +
			"  Worst: O(n²) - When array is reverse sorted\n" +
			"Space Complexity: O(1) - In-place sorting",
		run: func(_ *execution, data []int, _ int) {
			bubbleSort(data)
		},
	},
	{
		ID:    MergeSort,
		Name:  "Merge Sort",
		Slug:  "merge-sort",
		Sorts: true,
		Description: "Merge Sort:\n" +
			"Time Complexity:\n" +
			"  Best: O(n log n) - All cases\n" +
			"  Average: O(n log n)\n" +
			"  Worst: O(n log n)\n" +
			"Space Complexity: O(n) - Additional space required",
		run: func(x *execution, data []int, _ int) {
			x.mergeSort(data)
		},
	},
	{
		ID:    QuickSort,
		Name:  "Quick Sort",
		Slug:  "quick-sort",
		Sorts: true,
		Description: "Quick Sort:\n" +
			"Time Complexity:\n" +
			"  Best: O(n log n) - Good pivot selection\n" +
			"  Average: O(n log n)\n" +
			"  Worst: O(n²) - When pivot is smallest or largest\n" +
			"Space Complexity: O(log n) - Recursion stack space",
		run: func(x *execution, data []int, _ int) {
			x.quickSort(data, 0, len(data)-1)
		},
	},
	{
		ID:    FibonacciRecursive,
		Name:  "Fibonacci Recursive",
		Slug:  "fibonacci-recursive",
		Sorts: false,
		Description: "Fibonacci Recursive:\n" +
			"Time Complexity:\n" +
			"  Best: O(2^n) - Exponential time\n" +
			"  Average: O(2^n)\n" +
			"  Worst: O(2^n)\n" +
			"Space Complexity: O(n) - Recursion stack depth",
		run: func(x *execution, _ []int, size int) {
			x.fibonacci(size % FibonacciMaxSize)
		},
	},
}

// All returns the algorithm specs in display order.
func All() []Spec {
	return slices.Clone(specs)
}

// Lookup returns the spec for id.
func Lookup(id ID) (Spec, error) {
	if id < 0 || int(id) >= len(specs) {
		return Spec{}, fmt.Errorf("%w: id %d", ErrUnknownAlgorithm, int(id))
	}
	return specs[id], nil
}

// Parse resolves a display name, an ID name or a slug, ignoring case.
func Parse(name string) (ID, error) {
	key := normalize(name)
	for _, s := range specs {
		if key == normalize(s.Name) || key == normalize(s.Slug) {
			return s.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

func (id ID) String() string {
	if s, err := Lookup(id); err == nil {
		return s.Name
	}
	return fmt.Sprintf("ID(%d)", int(id))
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	s, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return []byte(s.Slug), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Registry executes algorithms with a fixed recursion limit.
type Registry struct {
	maxDepth int
}

// NewRegistry creates a Registry. A non-positive maxDepth selects DefaultMaxDepth.
func NewRegistry(maxDepth int) *Registry {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Registry{maxDepth: maxDepth}
}

// Describe returns the complexity description for id.
func (r *Registry) Describe(id ID) (string, error) {
	s, err := Lookup(id)
	if err != nil {
		return "", err
	}
	return s.Description, nil
}

// Execute runs id on data. size is the logical input size; for sorting
// algorithms data is cloned first so the caller's slice is left untouched.
func (r *Registry) Execute(id ID, data []int, size int) (err error) {
	s, err := Lookup(id)
	if err != nil {
		return err
	}
	if s.ID != FibonacciRecursive && (size <= 0 || size > len(data)) {
		return fmt.Errorf("size %d out of range for %d elements", size, len(data))
	}

	x := &execution{maxDepth: r.maxDepth}
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(depthExceeded); ok {
				err = ErrStackExhausted
				return
			}
			panic(rec)
		}
	}()

	if s.Sorts {
		data = slices.Clone(data)
	}
	s.run(x, data, size)
	return nil
}

// depthExceeded is the panic value used to unwind a too-deep recursion.
type depthExceeded struct{}

// execution carries the recursion counter for a single Execute call.
type execution struct {
	depth    int
	maxDepth int
}

func (x *execution) enter() {
	x.depth++
	if x.depth > x.maxDepth {
		panic(depthExceeded{})
	}
}

func (x *execution) leave() {
	x.depth--
}
