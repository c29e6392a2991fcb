package domain

import "time"

// Report is the outcome of driving an engine, kept for display and storage.
// It describes a finished (or stopped) run; it is not resumable machine state.
type Report struct {
	ID        string    `json:"id"`
	Machine   string    `json:"machine,omitempty"`
	StartedAt time.Time `json:"started_at"`

	Status Status `json:"status"`
	State  string `json:"state"` // Current state name, HaltName once halted
	Steps  uint64 `json:"steps"`

	Ones       uint64 `json:"ones"`
	Zeros      uint64 `json:"zeros"`
	TapeLength int    `json:"tape_length"`
	Head       int    `json:"head"`
	Offset     int    `json:"offset"`

	Elapsed        time.Duration `json:"elapsed_ns"`
	StepsPerSecond float64       `json:"steps_per_second"`

	// Error describes why the run stopped without halting.
	Error string `json:"error,omitempty"`
}
