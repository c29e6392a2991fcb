package observability

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects run statistics.
type Metrics struct {
	Steps     prometheus.Counter
	Runs      *prometheus.CounterVec
	Duration  prometheus.Histogram
	TapeCells prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of machine steps taken",
		}),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by final status",
			},
			[]string{"status"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_duration_seconds",
			Help:    "Wall-clock duration of runs",
			Buckets: prometheus.ExponentialBuckets(0.0001, 10, 8),
		}),
		TapeCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "turing_tape_cells",
			Help: "Tape length of the most recently finished run",
		}),
	}

	reg.MustRegister(m.Steps, m.Runs, m.Duration, m.TapeCells)
	return m
}

// ObserveSteps implements runner.Observer.
func (m *Metrics) ObserveSteps(n uint64) {
	m.Steps.Add(float64(n))
}

// ObserveRun implements runner.Observer.
func (m *Metrics) ObserveRun(report *domain.Report) {
	m.Runs.WithLabelValues(string(report.Status)).Inc()
	m.Duration.Observe(report.Elapsed.Seconds())
	m.TapeCells.Set(float64(report.TapeLength))
}
