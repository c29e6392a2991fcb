package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// FailingStore is a testify mock of ports.ReportStore.
type FailingStore struct {
	mock.Mock
}

func (m *FailingStore) Save(ctx context.Context, report *domain.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *FailingStore) Load(ctx context.Context, id string) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FailingStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *FailingStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func TestChain_Contract(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewMetricsMiddleware(prometheus.NewRegistry()),
	)
	ports.RunReportStoreContract(t, store)
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ReportStore) ports.ReportStore {
			order = append(order, name)
			return next
		}
	}

	middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	assert.Equal(t, []string{"inner", "outer"}, order, "inner wraps the store first")
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "r1"}))
	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	out := buf.String()
	assert.Contains(t, out, "op=save")
	assert.Contains(t, out, "report_id=r1")
	assert.Contains(t, out, "op=load")
	assert.NotContains(t, out, "level=WARN", "a miss is not a failure")

	buf.Reset()
	failing := new(FailingStore)
	failing.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	_, err = middleware.NewLoggingMiddleware(logger)(failing).List(ctx)
	assert.Error(t, err)
	assert.True(t, strings.Contains(buf.String(), "level=WARN"))
	assert.Contains(t, buf.String(), "connection refused")
	failing.AssertExpectations(t)
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := middleware.NewMetricsMiddleware(reg)(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "r1"}))
	_, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	_, err = store.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrReportNotFound)

	// save/ok, load/ok, load/not_found
	count, err := testutil.GatherAndCount(reg, "turing_report_store_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	failing := new(FailingStore)
	failing.On("Delete", mock.Anything, "r1").Return(errors.New("boom"))
	failingReg := prometheus.NewRegistry()
	assert.Error(t, middleware.NewMetricsMiddleware(failingReg)(failing).Delete(ctx, "r1"))

	count, err = testutil.GatherAndCount(failingReg, "turing_report_store_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	middleware.NewMetricsMiddleware(reg)
	assert.Panics(t, func() { middleware.NewMetricsMiddleware(reg) })
}
