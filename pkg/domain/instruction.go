package domain

// Record is a validated instruction line as produced by the parser.
// State names are not interned yet.
type Record struct {
	// Line is the 1-based line number in the source, 0 when built in code.
	Line int `json:"line,omitempty"`

	From string `json:"from"`
	Read Symbol `json:"read"`

	// Reserved holds the third column of the table format. It is kept for
	// round-tripping but never interpreted.
	Reserved string `json:"reserved,omitempty"`

	// To is a state name or HaltName.
	To    string    `json:"to"`
	Write Symbol    `json:"write"`
	Move  Direction `json:"move"`
}

// Halts reports whether the record targets the Halt marker.
func (r Record) Halts() bool {
	return r.To == HaltName
}

// Instruction is an interned transition rule owned by a transition table.
type Instruction struct {
	From  StateID
	Read  Symbol
	To    StateID // Halt when the instruction ends the run
	Write Symbol
	Move  Direction
	Line  int
}

// Halts reports whether taking the instruction halts the machine.
func (i Instruction) Halts() bool {
	return i.To == Halt
}
