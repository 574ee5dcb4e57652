// Package metrics records run statistics as Prometheus metrics.
//
// A Recorder is an engine.Observer. Metrics live on a private registry and
// are exported as a text exposition file at the end of a run, since the
// process exits before a scraper could reach it.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/daryltucker/complexity-runner/internal/engine"
	"github.com/daryltucker/complexity-runner/internal/model"
)

const namespace = "complexity"

// Recorder holds the run metrics.
type Recorder struct {
	engine.NopObserver

	registry *prometheus.Registry

	// RunsTotal counts runs by algorithm and outcome (completed, halted).
	RunsTotal *prometheus.CounterVec

	// SamplesTotal counts measured sizes by algorithm and order.
	SamplesTotal *prometheus.CounterVec

	// SampleSeconds observes the measured durations by algorithm and order.
	SampleSeconds *prometheus.HistogramVec

	// HaltsTotal counts halted runs by reason.
	HaltsTotal *prometheus.CounterVec

	// AdjustmentsTotal counts clamped upper bounds by algorithm.
	AdjustmentsTotal *prometheus.CounterVec

	// LastSize is the largest size measured in the latest run.
	LastSize *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total runs by algorithm and outcome",
		}, []string{"algorithm", "outcome"}),
		SamplesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Total measured sizes by algorithm and input order",
		}, []string{"algorithm", "order"}),
		SampleSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_duration_seconds",
			Help:      "Measured execution time per size",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 10),
		}, []string{"algorithm", "order"}),
		HaltsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "halts_total",
			Help:      "Runs stopped early by reason",
		}, []string{"reason"}),
		AdjustmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adjustments_total",
			Help:      "Runs whose max size was clamped",
		}, []string{"algorithm"}),
		LastSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_size",
			Help:      "Largest size measured in the latest run",
		}, []string{"algorithm"}),
	}
	r.registry.MustRegister(
		r.RunsTotal,
		r.SamplesTotal,
		r.SampleSeconds,
		r.HaltsTotal,
		r.AdjustmentsTotal,
		r.LastSize,
	)
	return r
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) SizeAdjusted(res *model.RunResult, _ model.Adjustment) {
	r.AdjustmentsTotal.WithLabelValues(res.Params.Algorithm.String()).Inc()
}

func (r *Recorder) SampleRecorded(res *model.RunResult, s model.Sample) error {
	alg, order := res.Params.Algorithm.String(), res.Params.Order.String()
	r.SamplesTotal.WithLabelValues(alg, order).Inc()
	r.SampleSeconds.WithLabelValues(alg, order).Observe(s.Duration.Seconds())
	r.LastSize.WithLabelValues(alg).Set(float64(s.Size))
	return nil
}

func (r *Recorder) RunHalted(_ *model.RunResult, h model.Halt) {
	r.HaltsTotal.WithLabelValues(string(h.Reason)).Inc()
}

func (r *Recorder) RunFinished(res *model.RunResult) {
	outcome := "completed"
	if !res.Completed() {
		outcome = "halted"
	}
	r.RunsTotal.WithLabelValues(res.Params.Algorithm.String(), outcome).Inc()
}

// WriteFile writes the current metrics in the Prometheus text format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
