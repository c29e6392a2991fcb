package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ReportStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and
// failures at warn. Misses are not failures.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ReportStore) ports.ReportStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if id != "" {
		attrs = append(attrs, "report_id", id)
	}
	if err != nil && !errors.Is(err, domain.ErrReportNotFound) {
		m.logger.WarnContext(ctx, "report store failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "report store", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, report *domain.Report) error {
	start := time.Now()
	err := m.next.Save(ctx, report)
	m.log(ctx, "save", report.ID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*domain.Report, error) {
	start := time.Now()
	r, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, start, err)
	return r, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}
