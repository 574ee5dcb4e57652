package engine

import (
	"time"

	"github.com/daryltucker/complexity-runner/internal/model"
)

// Observer receives run events. SampleRecorded may fail; the runner logs
// the error and keeps going.
type Observer interface {
	RunStarted(r *model.RunResult)
	SizeAdjusted(r *model.RunResult, adj model.Adjustment)
	SampleRecorded(r *model.RunResult, s model.Sample) error
	RunHalted(r *model.RunResult, h model.Halt)
	RunFinished(r *model.RunResult)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) RunStarted(*model.RunResult) {}
func (NopObserver) SizeAdjusted(*model.RunResult, model.Adjustment) {}
func (NopObserver) SampleRecorded(*model.RunResult, model.Sample) error { return nil }
func (NopObserver) RunHalted(*model.RunResult, model.Halt) {}
func (NopObserver) RunFinished(*model.RunResult) {}

// RecordWriter is implemented by the CSV and JSONL sinks.
type RecordWriter interface {
	Write(model.Record) error
}

// SinkObserver forwards every sample to a RecordWriter.
type SinkObserver struct {
	NopObserver
	W   RecordWriter
	Now func() time.Time
}

// NewSinkObserver wraps w.
func NewSinkObserver(w RecordWriter) *SinkObserver {
	return &SinkObserver{W: w, Now: time.Now}
}

func (s *SinkObserver) SampleRecorded(r *model.RunResult, sample model.Sample) error {
	return s.W.Write(model.NewRecord(r, sample, s.Now()))
}
