package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateTransition is returned when two instructions share a (state, symbol) source.
var ErrDuplicateTransition = errors.New("duplicate transition")

// ErrUndefinedTransition is returned when no instruction matches the current (state, symbol).
var ErrUndefinedTransition = errors.New("undefined transition")

// ErrEmptyTable is returned when a transition table is built from no instructions.
var ErrEmptyTable = errors.New("transition table has no instructions")

// ErrUnknownState is returned when a state name is not declared in the table.
var ErrUnknownState = errors.New("unknown state")

// ErrStepOverflow is returned when the step counter would wrap.
var ErrStepOverflow = errors.New("step counter overflow")

// ErrReportNotFound is returned when a run report cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// DuplicateTransitionError carries the conflicting declarations.
type DuplicateTransitionError struct {
	State     string
	Read      Symbol
	Line      int // Line of the rejected instruction
	FirstLine int // Line of the instruction already in the table
}

func (e *DuplicateTransitionError) Error() string {
	if e.Line == 0 && e.FirstLine == 0 {
		return fmt.Sprintf("duplicate transition for (%s, %d)", e.State, e.Read)
	}
	return fmt.Sprintf("line %d: duplicate transition for (%s, %d), first declared on line %d",
		e.Line, e.State, e.Read, e.FirstLine)
}

func (e *DuplicateTransitionError) Unwrap() error {
	return ErrDuplicateTransition
}

// UndefinedTransitionError describes where a machine got stuck.
// The engine keeps its tape and counters untouched so callers can inspect them.
type UndefinedTransitionError struct {
	State string
	Read  Symbol
	Head  int
	Steps uint64
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no instruction for (%s, %d) at head %d after %d steps",
		e.State, e.Read, e.Head, e.Steps)
}

func (e *UndefinedTransitionError) Unwrap() error {
	return ErrUndefinedTransition
}
