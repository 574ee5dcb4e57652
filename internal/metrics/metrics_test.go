package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/engine"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/model"
)

var _ engine.Observer = (*Recorder)(nil)

func testRun() *model.RunResult {
	return &model.RunResult{
		Params: model.RunParameters{Algorithm: algo.QuickSort, Order: input.Descending},
	}
}

func TestRecorder_Samples(t *testing.T) {
	r := NewRecorder()
	res := testRun()

	require.NoError(t, r.SampleRecorded(res, model.Sample{Size: 100, Duration: time.Microsecond}))
	require.NoError(t, r.SampleRecorded(res, model.Sample{Size: 200, Duration: 3 * time.Microsecond}))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SamplesTotal.WithLabelValues("Quick Sort", "Descending")))
	assert.Equal(t, 200.0, testutil.ToFloat64(r.LastSize.WithLabelValues("Quick Sort")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.SampleSeconds))
}

func TestRecorder_Outcomes(t *testing.T) {
	r := NewRecorder()

	done := testRun()
	r.RunFinished(done)

	halted := testRun()
	halted.Halt = &model.Halt{Size: 5000, Reason: model.HaltStackExhausted}
	r.RunHalted(halted, *halted.Halt)
	r.RunFinished(halted)

	fib := &model.RunResult{Params: model.RunParameters{Algorithm: algo.FibonacciRecursive}}
	r.SizeAdjusted(fib, model.Adjustment{Requested: 100, Effective: 40})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.RunsTotal.WithLabelValues("Quick Sort", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RunsTotal.WithLabelValues("Quick Sort", "halted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HaltsTotal.WithLabelValues("stack_exhausted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.AdjustmentsTotal.WithLabelValues("Fibonacci Recursive")))
}

func TestRecorder_WriteFile(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.SampleRecorded(testRun(), model.Sample{Size: 1, Duration: time.Nanosecond}))

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `complexity_samples_total{algorithm="Quick Sort",order="Descending"} 1`)
}
