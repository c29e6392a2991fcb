// Package report renders tables, tapes and run reports for terminals.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// States lists the interned states with their indices.
func States(tbl *table.Table) string {
	var sb strings.Builder
	sb.WriteString("States:\n")
	sb.WriteString(" Number | Name\n")
	sb.WriteString("--------+------\n")
	for i, name := range tbl.States() {
		fmt.Fprintf(&sb, " %6d | '%s'\n", i, name)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Instructions lists the table in declaration order.
func Instructions(tbl *table.Table) string {
	var sb strings.Builder
	sb.WriteString("Instructions:\n")
	sb.WriteString(tbl.String())
	sb.WriteByte('\n')
	return sb.String()
}

// Tape renders the state line, the cells and, when marker is set, a line
// framing the origin cell with '|' and pointing at the head with '^'.
// pending is the instruction the next step would take, if any.
func Tape(tbl *table.Table, snap domain.Snapshot, pending *domain.Instruction, marker bool) string {
	var sb strings.Builder

	next := "No Instruction"
	if pending != nil {
		next = tbl.Format(*pending)
	}
	fmt.Fprintf(&sb, "State: %s, %s, %d steps\n", snap.State, next, snap.Steps)

	for _, c := range snap.Tape {
		fmt.Fprintf(&sb, " %d", c)
	}
	sb.WriteByte('\n')

	if marker {
		for i := 0; i <= len(snap.Tape); i++ {
			frame := byte(' ')
			if i == snap.Offset || i == snap.Offset+1 {
				frame = '|'
			}
			head := byte(' ')
			if i == snap.Head {
				head = '^'
			}
			sb.WriteByte(frame)
			sb.WriteByte(head)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary renders timing, throughput and the busy-beaver tally of a run.
func Summary(r *domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nSimulation took %s\n", FormatDuration(r.Elapsed))
	fmt.Fprintf(&sb, "%.3e Iterations / second\n", r.StepsPerSecond)
	switch r.Status {
	case domain.StatusHalted:
	case domain.StatusFaulted:
		fmt.Fprintf(&sb, "Faulted: %s\n", r.Error)
	default:
		fmt.Fprintf(&sb, "Stopped in state %s: %s\n", r.State, r.Error)
	}
	fmt.Fprintf(&sb, "Busy Beaver: %d ones, %d zeros, after %d steps\n", r.Ones, r.Zeros, r.Steps)
	return sb.String()
}

// FormatDuration prints d with three decimals in the largest fitting unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.3fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.3fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// Markdown renders the table and the report as a Markdown document.
func Markdown(tbl *table.Table, r *domain.Report) string {
	var sb strings.Builder

	title := r.Machine
	if title == "" {
		title = "Turing machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("## States\n\n| Number | Name |\n|---:|---|\n")
	for i, name := range tbl.States() {
		fmt.Fprintf(&sb, "| %d | `%s` |\n", i, name)
	}

	sb.WriteString("\n## Instructions\n\n| State | Read | Next | Write | Move |\n|---|---:|---|---:|---|\n")
	for _, inst := range tbl.Instructions() {
		fmt.Fprintf(&sb, "| `%s` | %d | `%s` | %d | %s |\n",
			tbl.StateName(inst.From), inst.Read, tbl.StateName(inst.To), inst.Write, inst.Move)
	}

	sb.WriteString("\n## Result\n\n")
	fmt.Fprintf(&sb, "- **Status:** %s\n", r.Status)
	fmt.Fprintf(&sb, "- **State:** `%s`\n", r.State)
	fmt.Fprintf(&sb, "- **Steps:** %d\n", r.Steps)
	fmt.Fprintf(&sb, "- **Ones / zeros:** %d / %d\n", r.Ones, r.Zeros)
	fmt.Fprintf(&sb, "- **Tape length:** %d\n", r.TapeLength)
	fmt.Fprintf(&sb, "- **Elapsed:** %s (%.3e steps/s)\n", FormatDuration(r.Elapsed), r.StepsPerSecond)
	if r.Error != "" {
		fmt.Fprintf(&sb, "\n> %s\n", r.Error)
	}
	return sb.String()
}
