package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/report"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const busyBeaver2 = "A 0 -> B 1 R\nA 1 -> B 1 L\nB 0 -> A 1 L\nB 1 -> Halt 1 R\n"

func mustTable(t *testing.T, src string) *table.Table {
	t.Helper()
	records, err := compiler.NewParser().Parse(strings.NewReader(src))
	require.NoError(t, err)
	tbl, err := table.New(records)
	require.NoError(t, err)
	return tbl
}

func TestStates(t *testing.T) {
	got := report.States(mustTable(t, busyBeaver2))
	want := "States:\n" +
		" Number | Name\n" +
		"--------+------\n" +
		"      0 | 'A'\n" +
		"      1 | 'B'\n\n"
	assert.Equal(t, want, got)
}

func TestInstructions(t *testing.T) {
	got := report.Instructions(mustTable(t, busyBeaver2))
	assert.True(t, strings.HasPrefix(got, "Instructions:\n(A, 0) -> (B, 1, Right)\n"))
	assert.Contains(t, got, "(B, 1) -> (Halt, 1, Right)\n")
}

func TestTape(t *testing.T) {
	tbl := mustTable(t, busyBeaver2)
	snap := domain.Snapshot{
		State:  "B",
		Steps:  3,
		Tape:   domain.Cells{1, 1, 0},
		Head:   2,
		Offset: 1,
	}
	pending, ok := tbl.Lookup(1, 0)
	require.True(t, ok)

	got := report.Tape(tbl, snap, &pending, true)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "State: B, (B, 0) -> (A, 1, Left), 3 steps", lines[0])
	assert.Equal(t, " 1 1 0", lines[1])
	assert.Equal(t, "  | |^  ", lines[2])

	got = report.Tape(tbl, domain.Snapshot{State: domain.HaltName, Tape: domain.Cells{1}}, nil, false)
	assert.Equal(t, "State: Halt, No Instruction, 0 steps\n 1\n", got)
}

func TestSummary(t *testing.T) {
	r := &domain.Report{
		Status:         domain.StatusHalted,
		Steps:          107,
		Ones:           13,
		Zeros:          1,
		Elapsed:        1500 * time.Microsecond,
		StepsPerSecond: 71333.3,
	}
	got := report.Summary(r)
	assert.Contains(t, got, "Simulation took 1.500ms\n")
	assert.Contains(t, got, "7.133e+04 Iterations / second\n")
	assert.Contains(t, got, "Busy Beaver: 13 ones, 1 zeros, after 107 steps\n")
	assert.NotContains(t, got, "Faulted")

	r.Status = domain.StatusFaulted
	r.Error = "no instruction for (A, 1) at head 1 after 2 steps"
	assert.Contains(t, report.Summary(r), "Faulted: no instruction for (A, 1)")

	r.Status = domain.StatusRunning
	r.State = "C"
	r.Error = "step limit reached"
	assert.Contains(t, report.Summary(r), "Stopped in state C: step limit reached")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{2500 * time.Millisecond, "2.500s"},
		{1234567 * time.Nanosecond, "1.235ms"},
		{1500 * time.Nanosecond, "1.500µs"},
		{42, "42ns"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, report.FormatDuration(tt.in))
	}
}

func TestMarkdown(t *testing.T) {
	tbl := mustTable(t, busyBeaver2)
	md := report.Markdown(tbl, &domain.Report{
		Machine: "busy_beaver_2",
		Status:  domain.StatusHalted,
		State:   domain.HaltName,
		Steps:   6,
		Ones:    4,
	})

	assert.True(t, strings.HasPrefix(md, "# busy_beaver_2\n"))
	assert.Contains(t, md, "| 1 | `B` |")
	assert.Contains(t, md, "| `B` | 1 | `Halt` | 1 | Right |")
	assert.Contains(t, md, "- **Steps:** 6")
	assert.NotContains(t, md, "> ")

	md = report.Markdown(tbl, &domain.Report{Error: "boom"})
	assert.True(t, strings.HasPrefix(md, "# Turing machine\n"))
	assert.Contains(t, md, "> boom")
}
