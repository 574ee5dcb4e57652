package algo

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomInts(n int) []int {
	r := rand.New(rand.NewPCG(1, 2))
	a := make([]int, n)
	for i := range a {
		a[i] = r.IntN(n * 10)
	}
	return a
}

func TestSortsProduceAscendingOutput(t *testing.T) {
	x := &execution{maxDepth: DefaultMaxDepth}

	t.Run("bubble", func(t *testing.T) {
		a := randomInts(300)
		bubbleSort(a)
		assert.True(t, slices.IsSorted(a))
	})

	t.Run("merge", func(t *testing.T) {
		a := randomInts(1001)
		want := slices.Sorted(slices.Values(a))
		x.mergeSort(a)
		assert.Equal(t, want, a)
		assert.Zero(t, x.depth)
	})

	t.Run("quick", func(t *testing.T) {
		a := randomInts(1001)
		want := slices.Sorted(slices.Values(a))
		x.quickSort(a, 0, len(a)-1)
		assert.Equal(t, want, a)
		assert.Zero(t, x.depth)
	})
}

func TestBubbleSort_SortedInputHasNoSwaps(t *testing.T) {
	a := slices.Sorted(slices.Values(randomInts(200)))
	assert.Zero(t, bubbleSort(a))

	slices.Reverse(a)
	assert.Positive(t, bubbleSort(a))
}

func TestSearches(t *testing.T) {
	a := []int{3, 9, 1, 7, 5}
	assert.Equal(t, 3, linearSearch(a, 7))
	assert.Equal(t, -1, linearSearch(a, 4))

	sorted := []int{1, 3, 5, 7, 9}
	assert.Equal(t, 0, binarySearch(sorted, 1))
	assert.Equal(t, 4, binarySearch(sorted, 9))
	assert.Equal(t, -1, binarySearch(sorted, 8))
}

func TestFibonacci(t *testing.T) {
	x := &execution{maxDepth: DefaultMaxDepth}
	want := []int{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for n, f := range want {
		assert.Equal(t, f, x.fibonacci(n), "fib(%d)", n)
	}
	assert.Equal(t, 6765, x.fibonacci(20))
}

func TestRegistry_Execute(t *testing.T) {
	reg := NewRegistry(0)

	t.Run("sorting algorithms work on a copy", func(t *testing.T) {
		for _, id := range []ID{BubbleSort, MergeSort, QuickSort} {
			data := randomInts(200)
			orig := slices.Clone(data)
			require.NoError(t, reg.Execute(id, data, len(data)))
			assert.Equal(t, orig, data, id.String())
		}
	})

	t.Run("every algorithm runs", func(t *testing.T) {
		for _, s := range All() {
			data := randomInts(50)
			assert.NoError(t, reg.Execute(s.ID, data, len(data)), s.Name)
		}
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		err := reg.Execute(ID(42), []int{1}, 1)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("size out of range", func(t *testing.T) {
		err := reg.Execute(LinearSearch, []int{1, 2}, 3)
		assert.Error(t, err)
	})
}

func TestRegistry_DepthLimit(t *testing.T) {
	reg := NewRegistry(100)

	t.Run("quick sort on ascending input", func(t *testing.T) {
		data := make([]int, 1000)
		for i := range data {
			data[i] = i
		}
		err := reg.Execute(QuickSort, data, len(data))
		assert.ErrorIs(t, err, ErrStackExhausted)
	})

	t.Run("merge sort stays within the limit", func(t *testing.T) {
		data := randomInts(1000)
		assert.NoError(t, reg.Execute(MergeSort, data, len(data)))
	})

	t.Run("fibonacci", func(t *testing.T) {
		small := NewRegistry(10)
		assert.ErrorIs(t, small.Execute(FibonacciRecursive, nil, 30), ErrStackExhausted)
		assert.NoError(t, small.Execute(FibonacciRecursive, nil, 5))
	})
}

func TestParse(t *testing.T) {
	cases := map[string]ID{
		"Linear Search":       LinearSearch,
		"binary-search":       BinarySearch,
		"BubbleSort":          BubbleSort,
		"merge_sort":          MergeSort,
		" QUICK SORT ":        QuickSort,
		"fibonacci-recursive": FibonacciRecursive,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Parse("heap sort")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestDescribe(t *testing.T) {
	reg := NewRegistry(0)
	for _, s := range All() {
		text, err := reg.Describe(s.ID)
		require.NoError(t, err)
		assert.Contains(t, text, s.Name+":")
		assert.Contains(t, text, "Space Complexity")
	}

	_, err := reg.Describe(ID(-1))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestID_TextRoundTrip(t *testing.T) {
	b, err := QuickSort.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "quick-sort", string(b))

	var id ID
	require.NoError(t, id.UnmarshalText([]byte("Merge Sort")))
	assert.Equal(t, MergeSort, id)
}
