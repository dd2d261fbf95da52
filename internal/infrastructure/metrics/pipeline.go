package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeWarning = "success_with_warnings"
)

// Compensation results
const (
	CompensationApplied = "applied"
	CompensationSkipped = "skipped"
	CompensationFailed  = "failed"
)

// PipelineMetrics holds all Prometheus metrics for the meeting pipeline.
type PipelineMetrics struct {
	RunsTotal           *prometheus.CounterVec
	RunSeconds          *prometheus.HistogramVec
	CompensationsTotal  *prometheus.CounterVec
	WarningsTotal       *prometheus.CounterVec
	StuckRecoveredTotal *prometheus.CounterVec
}

// DefaultPipelineMetrics registers metrics with the default registerer.
func DefaultPipelineMetrics() *PipelineMetrics {
	return NewPipelineMetrics(prometheus.DefaultRegisterer)
}

// NewPipelineMetrics creates a new set of pipeline metrics.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_pipeline_runs_total",
				Help: "Total pipeline runs by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		RunSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meeting_pipeline_run_seconds",
				Help:    "Pipeline run latency per stage",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"stage"},
		),
		CompensationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_pipeline_compensations_total",
				Help: "Compensating status transitions after a failed run",
			},
			[]string{"stage", "result"},
		),
		WarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_pipeline_warnings_total",
				Help: "Best-effort writes that failed without failing the run",
			},
			[]string{"code"},
		),
		StuckRecoveredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_pipeline_stuck_recovered_total",
				Help: "Meetings released from processing by the watchdog",
			},
			[]string{"stage"},
		),
	}
}

// ObserveRun records the outcome and latency of one run. Safe on nil.
func (m *PipelineMetrics) ObserveRun(stage, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(stage, outcome).Inc()
	m.RunSeconds.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// ObserveCompensation records a compensating transition attempt
func (m *PipelineMetrics) ObserveCompensation(stage, result string) {
	if m == nil {
		return
	}
	m.CompensationsTotal.WithLabelValues(stage, result).Inc()
}

// ObserveWarning counts a warning attached to a run result
func (m *PipelineMetrics) ObserveWarning(code string) {
	if m == nil {
		return
	}
	m.WarningsTotal.WithLabelValues(code).Inc()
}

// ObserveStuckRecovered counts a meeting released by the watchdog
func (m *PipelineMetrics) ObserveStuckRecovered(stage string) {
	if m == nil {
		return
	}
	m.StuckRecoveredTotal.WithLabelValues(stage).Inc()
}
