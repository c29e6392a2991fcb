package domain

// Tally counts the canonical busy-beaver symbols on the tape.
type Tally struct {
	Ones  uint64 `json:"ones"`
	Zeros uint64 `json:"zeros"`
}

// Snapshot is a copy of the observable state of an engine.
type Snapshot struct {
	State  string `json:"state"`
	Status Status `json:"status"`
	Steps  uint64 `json:"steps"`
	Tape   Cells  `json:"tape"`
	Head   int    `json:"head"`
	Offset int    `json:"offset"`
}
