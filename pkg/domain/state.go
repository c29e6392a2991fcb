package domain

// StateID is an interned control state index, dense from 0.
type StateID int32

// Halt is the transition target meaning "no next control state".
const Halt StateID = -1

// HaltName is the table token and display name of the Halt marker.
const HaltName = "Halt"

// Halted reports whether the id is the Halt marker.
func (id StateID) Halted() bool {
	return id == Halt
}

// Status defines the lifecycle of an execution engine.
type Status string

const (
	StatusRunning Status = "running" // Instructions are still being consulted
	StatusHalted  Status = "halted"  // A Halt transition was taken
	StatusFaulted Status = "faulted" // No instruction matched the current (state, symbol)
)

// Terminal reports whether no further instruction will be consulted.
func (s Status) Terminal() bool {
	return s == StatusHalted || s == StatusFaulted
}
