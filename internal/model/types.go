/*
PURPOSE:
  Defines the core data structures shared by the runner, the sinks and the CLI.
  These models represent run parameters, samples and run outcomes.

REQUIREMENTS:
  User-specified:
  - Record input size and elapsed nanoseconds per measured size.
  - Keep the samples collected before a run halts.

  Implementation-discovered:
  - Need JSON tags for the JSONL sink.
  - The outcome of a run is either complete or halted at a size, never an error.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/metrics, internal/chart, internal/cli
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Use time.Duration for measured time.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go
*/

package model

import (
	"time"

	"github.com/daryltucker/complexity-runner/internal/algo"
	"github.com/daryltucker/complexity-runner/internal/input"
	"github.com/google/uuid"
)

// RunParameters are the validated inputs of a single run.
type RunParameters struct {
	Algorithm algo.ID     `json:"algorithm"`
	MinSize   int         `json:"min_size"`
	MaxSize   int         `json:"max_size"`
	Step      int         `json:"step"`
	Order     input.Order `json:"order"`
}

// Sample is one measured size.
type Sample struct {
	Size     int           `json:"size"`
	Duration time.Duration `json:"duration_ns"`
}

// DurationNanos returns the elapsed time in nanoseconds.
func (s Sample) DurationNanos() int64 {
	return s.Duration.Nanoseconds()
}

// HaltReason explains why a run stopped early.
type HaltReason string

const (
	HaltOutOfMemory    HaltReason = "out_of_memory"
	HaltStackExhausted HaltReason = "stack_exhausted"
)

// Halt records the size at which a run stopped.
type Halt struct {
	Size   int        `json:"size"`
	Reason HaltReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// Adjustment records a clamped upper bound.
type Adjustment struct {
	Requested int    `json:"requested"`
	Effective int    `json:"effective"`
	Reason    string `json:"reason"`
}

// RunResult is the outcome of one run. Halt is nil when every size completed.
type RunResult struct {
	RunID      uuid.UUID     `json:"run_id"`
	Params     RunParameters `json:"params"`
	MaxSize    int           `json:"effective_max_size"`
	StartedAt  time.Time     `json:"started_at"`
	Samples    []Sample      `json:"samples"`
	Halt       *Halt         `json:"halt,omitempty"`
	Adjustment *Adjustment   `json:"adjustment,omitempty"`
}

// Completed reports whether the run covered the whole size range.
func (r *RunResult) Completed() bool {
	return r.Halt == nil
}

// Chartable reports whether there are enough samples to draw a line.
func (r *RunResult) Chartable() bool {
	return len(r.Samples) >= 2
}

// Record is the flattened row written by the sinks.
type Record struct {
	RunID         uuid.UUID `json:"run_id"`
	Algorithm     string    `json:"algorithm"`
	Order         string    `json:"order"`
	Size          int       `json:"size"`
	DurationNanos int64     `json:"duration_ns"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewRecord flattens s for run r.
func NewRecord(r *RunResult, s Sample, ts time.Time) Record {
	return Record{
		RunID:         r.RunID,
		Algorithm:     r.Params.Algorithm.String(),
		Order:         r.Params.Order.String(),
		Size:          s.Size,
		DurationNanos: s.DurationNanos(),
		Timestamp:     ts,
	}
}
