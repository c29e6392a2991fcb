package turing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		name  string
		steps uint64
		ones  uint64
		zeros uint64
	}{
		{"busy_beaver_1", 1, 1, 1},
		{"busy_beaver_2", 6, 4, 0},
		{"busy_beaver_3", 14, 6, 0},
		{"busy_beaver_4", 107, 13, 1},
		{"busy_beaver_5_best_currently_known", 47_176_870, 4098, 8191},
	}

	names, err := turing.Catalog().ListTables()
	require.NoError(t, err)
	require.Len(t, names, len(tests))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.steps > 1_000_000 && testing.Short() {
				t.Skip("long run")
			}
			m, err := turing.FromLoader(turing.Catalog(), tt.name)
			require.NoError(t, err)

			report, err := m.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.name, report.Machine)
			assert.Equal(t, domain.StatusHalted, report.Status)
			assert.Equal(t, tt.steps, report.Steps)
			assert.Equal(t, tt.ones, report.Ones)
			assert.Equal(t, tt.zeros, report.Zeros)
		})
	}
}

func TestLoad(t *testing.T) {
	m, err := turing.Load(filepath.Join("examples", "busy_beaver", "busy_beaver_3.turing"))
	require.NoError(t, err)
	assert.Equal(t, "busy_beaver_3", m.Name)
	assert.Equal(t, []string{"A", "B", "C"}, m.Table().States())

	_, err = turing.Load(filepath.Join(t.TempDir(), "missing.turing"))
	assert.Error(t, err)
}

func TestCompile_Errors(t *testing.T) {
	_, err := turing.Compile(strings.NewReader("A 0 -> B 1 X\n"), "bad")
	assert.ErrorIs(t, err, compiler.ErrBadDirection)

	_, err = turing.Compile(strings.NewReader("A 0 -> B 1 R\nA 0 -> C 0 L\n"), "dup")
	assert.ErrorIs(t, err, domain.ErrDuplicateTransition)

	_, err = turing.Compile(strings.NewReader(""), "empty")
	assert.ErrorIs(t, err, domain.ErrEmptyTable)

	_, err = turing.New(nil)
	assert.Error(t, err)

	_, err = turing.FromLoader(turing.Catalog(), "nope")
	assert.Error(t, err)
}

func TestMachine_Options(t *testing.T) {
	var halted []*domain.MachineEvent
	m, err := turing.Compile(
		strings.NewReader("A 7 -> B 1 R\nB 7 -> Halt 2 L\nC 7 -> Halt 3 R\n"),
		"custom",
		turing.WithBlank(7),
		turing.WithLifecycleHooks(domain.LifecycleHooks{
			OnHalt: func(e *domain.MachineEvent) { halted = append(halted, e) },
		}),
	)
	require.NoError(t, err)

	report, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), report.Steps)
	assert.Equal(t, domain.Cells{1, 2}, m.Snapshot().Tape)
	require.Len(t, halted, 1)
	assert.Equal(t, "B", halted[0].State)

	m, err = turing.New(m.Table(), turing.WithBlank(7), turing.WithInitialState("C"))
	require.NoError(t, err)
	ok, err := m.Step()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Cells{3, 7}, m.Snapshot().Tape)

	_, err = turing.New(m.Table(), turing.WithInitialState("Z"))
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestMachine_RunOptionsAndReset(t *testing.T) {
	m, err := turing.Compile(strings.NewReader("A 0 -> A 1 R\n"), "runaway")
	require.NoError(t, err)

	report, err := m.Run(context.Background(), runner.WithMaxSteps(50))
	assert.ErrorIs(t, err, runner.ErrStepLimit)
	assert.Equal(t, uint64(50), report.Steps)

	pending, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, "(A, 0) -> (A, 1, Right)", m.Table().Format(pending))

	require.NoError(t, m.Reset())
	assert.Zero(t, m.Snapshot().Steps)
	assert.Same(t, m.Table(), m.Engine().Table())
}

func TestMachine_Fault(t *testing.T) {
	m, err := turing.Compile(strings.NewReader("A 0 -> B 1 L\nB 0 -> A 0 R\n"), "gap")
	require.NoError(t, err)

	_, err = m.Run(context.Background())
	var undefined *domain.UndefinedTransitionError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, uint64(2), undefined.Steps)
	assert.Equal(t, domain.StatusFaulted, m.Snapshot().Status)
}

func TestVersion(t *testing.T) {
	data, err := os.ReadFile("VERSION")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(string(data)), turing.Version)
	assert.NotEmpty(t, turing.Version)
}
