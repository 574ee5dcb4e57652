/*
PURPOSE:
  High-level runner that orchestrates one measurement sweep.
  Loops through the size range, generates input, times the algorithm and
  collects samples.

REQUIREMENTS:
  User-specified:
  - Measure every size from min to max inclusive, stepping by step.
  - Print one progress line per completed size.
  - Stop early on memory or stack exhaustion, keeping what was measured.
  - Clamp Fibonacci Recursive runs to size 40 and tell the caller.

  Implementation-discovered:
  - Sinks and metrics want the same per-sample events, so they are observers.
  - time.Now carries a monotonic reading; time.Since uses it.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/algo, internal/input, internal/params, internal/output

ERROR HANDLING:
  - Exhaustion is a Halt on the result, not an error.
  - Unknown algorithms and invalid parameters are returned as errors.
  - Observer failures are logged and the run continues.

IMPLEMENTATION RULES:
  - Single goroutine, synchronous. The caller blocks for the whole run.
  - Each size gets freshly generated data.

USAGE:
  r := engine.New(algo.NewRegistry(0), input.New(), engine.WithProgress(os.Stdout))
  res, err := r.Run(p)

RELATED FILES:
  - internal/engine/observer.go
  - internal/model/types.go
*/

package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/daryltucker/complexity-runner/internal/model"
	"github.com/daryltucker/complexity-runner/internal/output"
	"github.com/daryltucker/complexity-runner/internal/params"
	"github.com/google/uuid"
)

// ErrNegativeDuration means the clock went backwards during a measurement.
var ErrNegativeDuration = errors.New("measured a negative duration")

// Runner executes measurement sweeps.
type Runner struct {
	registry  *algo.Registry
	gen       *input.Generator
	progress  io.Writer
	observers []Observer
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress sets the writer that receives the textual progress lines.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

// WithObserver adds an observer. Observers are notified in the order added.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// WithClock overrides the clock used for run and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner.
func New(registry *algo.Registry, gen *input.Generator, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		gen:      gen,
		progress: io.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run measures p.Algorithm for every size in the range.
func (r *Runner) Run(p model.RunParameters) (*model.RunResult, error) {
	if err := params.Check(params.FromInts(p.MinSize, p.MaxSize, p.Step)).Err(); err != nil {
		return nil, fmt.Errorf("invalid run parameters: %w", err)
	}
	spec, err := algo.Lookup(p.Algorithm)
	if err != nil {
		return nil, err
	}

	res := &model.RunResult{
		RunID:     uuid.New(),
		Params:    p,
		MaxSize:   p.MaxSize,
		StartedAt: r.now(),
	}

	if p.Algorithm == algo.FibonacciRecursive && p.MaxSize > algo.FibonacciMaxSize {
		adj := model.Adjustment{
			Requested: p.MaxSize,
			Effective: algo.FibonacciMaxSize,
			Reason:    fmt.Sprintf("Fibonacci recursive limited to max size %d to prevent stack overflow", algo.FibonacciMaxSize),
		}
		res.MaxSize = adj.Effective
		res.Adjustment = &adj
		output.Logger.Warn("Max size adjusted", "requested", adj.Requested, "effective", adj.Effective)
		r.notify(func(o Observer) error { o.SizeAdjusted(res, adj); return nil })
	}

	output.Logger.Info("Run started",
		"run_id", res.RunID,
		"algorithm", spec.Name,
		"order", p.Order,
		"min", p.MinSize,
		"max", res.MaxSize,
		"step", p.Step,
	)
	fmt.Fprintf(r.progress, "Analyzing %s with %s order...\n", spec.Name, p.Order)
	fmt.Fprintf(r.progress, "Input Sizes: %d to %d with step %d\n\n", p.MinSize, res.MaxSize, p.Step)
	r.notify(func(o Observer) error { o.RunStarted(res); return nil })

	for size := p.MinSize; size <= res.MaxSize; size += p.Step {
		sample, halt, err := r.measure(p, size)
		if err != nil {
			return res, err
		}
		if halt != nil {
			res.Halt = halt
			output.Logger.Error("Run halted", "size", halt.Size, "reason", halt.Reason, "detail", halt.Detail)
			r.notify(func(o Observer) error { o.RunHalted(res, *halt); return nil })
			break
		}

		res.Samples = append(res.Samples, sample)
		fmt.Fprintf(r.progress, "Size: %d - Time: %d ns\n", sample.Size, sample.DurationNanos())
		output.Logger.Debug("Sample recorded", "size", sample.Size, "duration", sample.Duration)
		r.notify(func(o Observer) error { return o.SampleRecorded(res, sample) })
	}

	output.Logger.Info("Run finished", "run_id", res.RunID, "samples", len(res.Samples), "completed", res.Completed())
	r.notify(func(o Observer) error { o.RunFinished(res); return nil })
	return res, nil
}

// measure generates input for size and times one execution.
func (r *Runner) measure(p model.RunParameters, size int) (model.Sample, *model.Halt, error) {
	data, err := r.gen.Generate(size, p.Order)
	if err != nil {
		var ee *input.ExhaustedError
		if errors.As(err, &ee) {
			return model.Sample{}, &model.Halt{Size: size, Reason: model.HaltOutOfMemory, Detail: err.Error()}, nil
		}
		return model.Sample{}, nil, fmt.Errorf("generate input for size %d: %w", size, err)
	}

	start := time.Now()
	err = r.registry.Execute(p.Algorithm, data, size)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, algo.ErrStackExhausted):
		return model.Sample{}, &model.Halt{Size: size, Reason: model.HaltStackExhausted, Detail: err.Error()}, nil
	case err != nil:
		return model.Sample{}, nil, fmt.Errorf("execute %s at size %d: %w", p.Algorithm, size, err)
	case elapsed < 0:
		return model.Sample{}, nil, fmt.Errorf("size %d: %w", size, ErrNegativeDuration)
	}

	return model.Sample{Size: size, Duration: elapsed}, nil, nil
}

func (r *Runner) notify(fn func(Observer) error) {
	for _, o := range r.observers {
		if err := fn(o); err != nil {
			output.Logger.Error("Observer failed", "observer", fmt.Sprintf("%T", o), "error", err)
		}
	}
}
