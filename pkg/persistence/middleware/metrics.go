package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

type metricsMiddleware struct {
	next     ports.ReportStore
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware records the latency of every store operation in
// turing_report_store_duration_seconds{op,result}. A nil reg uses the
// default registerer. It panics if the collector is already registered.
func NewMetricsMiddleware(reg prometheus.Registerer) Middleware {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "turing_report_store_duration_seconds",
		Help:    "Latency of report store operations",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"op", "result"})
	reg.MustRegister(duration)

	return func(next ports.ReportStore) ports.ReportStore {
		return &metricsMiddleware{next: next, duration: duration}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := resultOK
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		result = resultNotFound
	case err != nil:
		result = resultError
	}
	m.duration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, report *domain.Report) error {
	start := time.Now()
	err := m.next.Save(ctx, report)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, id string) (*domain.Report, error) {
	start := time.Now()
	r, err := m.next.Load(ctx, id)
	m.observe("load", start, err)
	return r, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
