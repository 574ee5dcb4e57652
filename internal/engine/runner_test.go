package engine

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/model"
	"github.com/daryltucker/complexity-runner/internal/params"
)

// eventLog records observer calls in order.
type eventLog struct {
	events  []string
	sizes   []int
	failing bool
}

func (l *eventLog) RunStarted(*model.RunResult) { l.events = append(l.events, "started") }
func (l *eventLog) SizeAdjusted(*model.RunResult, model.Adjustment) {
	l.events = append(l.events, "adjusted")
}
func (l *eventLog) SampleRecorded(_ *model.RunResult, s model.Sample) error {
	l.sizes = append(l.sizes, s.Size)
	if l.failing {
		return errors.New("sink unavailable")
	}
	return nil
}
func (l *eventLog) RunHalted(_ *model.RunResult, h model.Halt) {
	l.events = append(l.events, "halted:"+string(h.Reason))
}
func (l *eventLog) RunFinished(*model.RunResult) { l.events = append(l.events, "finished") }

type memWriter struct {
	records []model.Record
}

func (m *memWriter) Write(r model.Record) error {
	m.records = append(m.records, r)
	return nil
}

func newRunner(opts ...Option) *Runner {
	return New(algo.NewRegistry(0), input.New(input.WithSeed(7)), opts...)
}

func run(t *testing.T, r *Runner, id algo.ID, min, max, step int, order input.Order) *model.RunResult {
	t.Helper()
	res, err := r.Run(model.RunParameters{Algorithm: id, MinSize: min, MaxSize: max, Step: step, Order: order})
	require.NoError(t, err)
	return res
}

func sizesOf(res *model.RunResult) []int {
	out := make([]int, len(res.Samples))
	for i, s := range res.Samples {
		out[i] = s.Size
	}
	return out
}

func TestRun_CoversRange(t *testing.T) {
	res := run(t, newRunner(), algo.BubbleSort, 100, 300, 100, input.Ascending)

	assert.True(t, res.Completed())
	assert.True(t, res.Chartable())
	assert.Nil(t, res.Adjustment)
	assert.Equal(t, []int{100, 200, 300}, sizesOf(res))
	assert.Equal(t, 300, res.MaxSize)
	assert.NotEqual(t, uuid.Nil, res.RunID)
}

func TestRun_StepOvershootsMax(t *testing.T) {
	res := run(t, newRunner(), algo.LinearSearch, 100, 1000, 400, input.Random)
	assert.Equal(t, []int{100, 500, 900}, sizesOf(res))
}

func TestRun_SamplesOrderedAndNonNegative(t *testing.T) {
	for _, spec := range algo.All() {
		t.Run(spec.Slug, func(t *testing.T) {
			res := run(t, newRunner(), spec.ID, 5, 25, 10, input.Descending)
			require.NotEmpty(t, res.Samples)
			for i, s := range res.Samples {
				assert.GreaterOrEqual(t, s.Duration, time.Duration(0))
				if i > 0 {
					assert.Greater(t, s.Size, res.Samples[i-1].Size)
				}
			}
		})
	}
}

func TestRun_FibonacciClamp(t *testing.T) {
	log := &eventLog{}
	res := run(t, newRunner(WithObserver(log)), algo.FibonacciRecursive, 10, 100, 10, input.Random)

	require.NotNil(t, res.Adjustment)
	assert.Equal(t, 100, res.Adjustment.Requested)
	assert.Equal(t, 40, res.Adjustment.Effective)
	assert.Equal(t, 100, res.Params.MaxSize)
	assert.Equal(t, 40, res.MaxSize)
	assert.Equal(t, []int{10, 20, 30, 40}, sizesOf(res))
	assert.Equal(t, []string{"adjusted", "started", "finished"}, log.events)
}

func TestRun_FibonacciClampAboveMin(t *testing.T) {
	res := run(t, newRunner(), algo.FibonacciRecursive, 50, 100, 10, input.Random)
	require.NotNil(t, res.Adjustment)
	assert.Empty(t, res.Samples)
	assert.False(t, res.Chartable())
}

func TestRun_FibonacciWithinLimit(t *testing.T) {
	res := run(t, newRunner(), algo.FibonacciRecursive, 5, 25, 10, input.Random)
	assert.Nil(t, res.Adjustment)
	assert.Equal(t, []int{5, 15, 25}, sizesOf(res))
}

func TestRun_OutOfMemoryHalt(t *testing.T) {
	log := &eventLog{}
	r := New(algo.NewRegistry(0), input.New(input.WithMaxElements(250)), WithObserver(log))

	res := run(t, r, algo.BubbleSort, 100, 400, 100, input.Random)

	require.NotNil(t, res.Halt)
	assert.Equal(t, model.HaltOutOfMemory, res.Halt.Reason)
	assert.Equal(t, 300, res.Halt.Size)
	assert.Equal(t, []int{100, 200}, sizesOf(res))
	assert.Equal(t, []string{"started", "halted:out_of_memory", "finished"}, log.events)
}

func TestRun_StackHalt(t *testing.T) {
	r := New(algo.NewRegistry(100), input.New())

	res := run(t, r, algo.QuickSort, 50, 500, 150, input.Ascending)

	require.NotNil(t, res.Halt)
	assert.Equal(t, model.HaltStackExhausted, res.Halt.Reason)
	assert.Equal(t, 200, res.Halt.Size)
	assert.Equal(t, []int{50}, sizesOf(res))
	assert.False(t, res.Completed())
	assert.False(t, res.Chartable())
}

func TestRun_Errors(t *testing.T) {
	r := newRunner()

	_, err := r.Run(model.RunParameters{Algorithm: algo.ID(42), MinSize: 1, MaxSize: 10, Step: 1})
	assert.ErrorIs(t, err, algo.ErrUnknownAlgorithm)

	_, err = r.Run(model.RunParameters{Algorithm: algo.LinearSearch, MinSize: 10, MaxSize: 10, Step: 1})
	assert.ErrorIs(t, err, params.ErrMaxNotAboveMin)

	_, err = r.Run(model.RunParameters{Algorithm: algo.LinearSearch, MinSize: 0, MaxSize: 10, Step: 1})
	assert.ErrorIs(t, err, params.ErrNonPositive)

	_, err = r.Run(model.RunParameters{Algorithm: algo.LinearSearch, MinSize: 1, MaxSize: 10, Step: 20})
	assert.ErrorIs(t, err, params.ErrStepTooLarge)
}

func TestRun_Progress(t *testing.T) {
	var buf bytes.Buffer
	res := run(t, newRunner(WithProgress(&buf)), algo.MergeSort, 10, 30, 10, input.AlmostSorted)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Analyzing Merge Sort with Almost Sorted order...", lines[0])
	assert.Equal(t, "Input Sizes: 10 to 30 with step 10", lines[1])
	assert.Empty(t, lines[2])
	for i, s := range res.Samples {
		assert.Regexp(t, `^Size: \d+ - Time: \d+ ns$`, lines[3+i])
		assert.True(t, strings.HasPrefix(lines[3+i], "Size: "+strconv.Itoa(s.Size)+" - "))
	}
}

func TestRun_FailingObserverDoesNotStopRun(t *testing.T) {
	failing := &eventLog{failing: true}
	healthy := &eventLog{}
	res := run(t, newRunner(WithObserver(failing), WithObserver(healthy)), algo.BinarySearch, 10, 50, 20, input.Random)

	assert.Equal(t, []int{10, 30, 50}, sizesOf(res))
	assert.Equal(t, sizesOf(res), failing.sizes)
	assert.Equal(t, sizesOf(res), healthy.sizes)
}

func TestSinkObserver(t *testing.T) {
	mem := &memWriter{}
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sink := NewSinkObserver(mem)
	sink.Now = func() time.Time { return ts }

	res := run(t, newRunner(WithObserver(sink)), algo.QuickSort, 10, 20, 10, input.Random)

	require.Len(t, mem.records, 2)
	for i, rec := range mem.records {
		assert.Equal(t, res.RunID, rec.RunID)
		assert.Equal(t, "Quick Sort", rec.Algorithm)
		assert.Equal(t, "Random", rec.Order)
		assert.Equal(t, res.Samples[i].Size, rec.Size)
		assert.Equal(t, res.Samples[i].DurationNanos(), rec.DurationNanos)
		assert.Equal(t, ts, rec.Timestamp)
	}
}

func TestRun_Clock(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	res := run(t, newRunner(WithClock(func() time.Time { return start })), algo.LinearSearch, 1, 2, 1, input.Random)
	assert.Equal(t, start, res.StartedAt)
}
