// Package validator statically checks a transition table.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// Gap is a reachable (state, symbol) pair with no instruction.
// Running into one faults the machine.
type Gap struct {
	State string        `json:"state"`
	Read  domain.Symbol `json:"read"`
}

// Result summarizes the analysis.
type Result struct {
	Start         string   `json:"start"`
	Reachable     []string `json:"reachable"`
	Unreachable   []string `json:"unreachable,omitempty"`
	Gaps          []Gap    `json:"gaps,omitempty"`
	HaltReachable bool     `json:"halt_reachable"`
}

// OK reports whether nothing was flagged.
func (r *Result) OK() bool {
	return len(r.Unreachable) == 0 && len(r.Gaps) == 0 && r.HaltReachable
}

// Err lists every finding, or nil when the table is clean.
func (r *Result) Err() error {
	var problems []string
	for _, name := range r.Unreachable {
		problems = append(problems, fmt.Sprintf("state '%s' is unreachable from '%s'", name, r.Start))
	}
	for _, g := range r.Gaps {
		problems = append(problems, fmt.Sprintf("no instruction for (%s, %d)", g.State, g.Read))
	}
	if !r.HaltReachable {
		problems = append(problems, fmt.Sprintf("no Halt transition is reachable from '%s'", r.Start))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
}

// Validate walks the table breadth-first from start. The symbols considered
// for gaps are the blank plus every symbol the table reads or writes.
func Validate(tbl *table.Table, start domain.StateID, blank domain.Symbol) *Result {
	res := &Result{Start: tbl.StateName(start)}

	alphabet := tbl.Alphabet()
	hasBlank := false
	for _, s := range alphabet {
		if s == blank {
			hasBlank = true
			break
		}
	}
	if !hasBlank {
		alphabet = append([]domain.Symbol{blank}, alphabet...)
	}

	visited := make([]bool, tbl.NumStates())
	queue := []domain.StateID{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		res.Reachable = append(res.Reachable, tbl.StateName(current))

		for _, sym := range alphabet {
			inst, ok := tbl.Lookup(current, sym)
			if !ok {
				res.Gaps = append(res.Gaps, Gap{State: tbl.StateName(current), Read: sym})
				continue
			}
			if inst.To.Halted() {
				res.HaltReachable = true
				continue
			}
			if !visited[inst.To] {
				visited[inst.To] = true
				queue = append(queue, inst.To)
			}
		}
	}

	for id, name := range tbl.States() {
		if !visited[id] {
			res.Unreachable = append(res.Unreachable, name)
		}
	}

	return res
}
