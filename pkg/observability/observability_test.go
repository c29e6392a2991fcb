package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveSteps(6)
	m.ObserveSteps(101)
	m.ObserveRun(&domain.Report{Status: domain.StatusHalted, TapeLength: 14, Elapsed: time.Millisecond})
	m.ObserveRun(&domain.Report{Status: domain.StatusFaulted, TapeLength: 2})

	assert.Equal(t, 107.0, testutil.ToFloat64(m.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("halted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("faulted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TapeCells))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	count, err := testutil.GatherAndCount(reg, "turing_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)
	assert.Panics(t, func() { observability.NewMetrics(reg) })
}

func TestMetrics_WithRunner(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())

	records, err := compiler.NewParser().Parse(strings.NewReader("A 0 -> B 1 R\nA 1 -> B 1 L\nB 0 -> A 1 L\nB 1 -> Halt 1 R\n"))
	require.NoError(t, err)
	tbl, err := table.New(records)
	require.NoError(t, err)
	eng, err := runtime.NewEngine(tbl)
	require.NoError(t, err)

	_, err = runner.New(runner.WithObserver(m), runner.WithCheckInterval(4)).Run(context.Background(), eng)
	require.NoError(t, err)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("halted")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.TapeCells))
}

func TestHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.Hooks(logger)

	hooks.OnHalt(&domain.MachineEvent{State: "B", Read: 1, Steps: 6})
	assert.Contains(t, buf.String(), "machine halted")
	assert.Contains(t, buf.String(), "steps=6")

	buf.Reset()
	hooks.OnFault(&domain.MachineEvent{State: "A", Read: 1, Steps: 2, Err: domain.ErrUndefinedTransition})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "machine faulted")
}
