package runtime

import "github.com/aretw0/turing/pkg/domain"

const minTapeCapacity = 64

// Tape is an unbounded bidirectional sequence of symbols.
//
// Cells live in buf[start:end]; spare capacity on both sides already holds the
// blank symbol, so growing by one cell is an index move except when a side is
// exhausted, in which case the buffer doubles towards that side.
type Tape struct {
	buf    []domain.Symbol
	start  int
	end    int
	head   int // Logical index, 0 <= head < Len()
	offset int // Cells prepended since the original left edge
	blank  domain.Symbol
}

// NewTape creates a one-cell tape holding the blank symbol.
func NewTape(blank domain.Symbol) *Tape {
	t := &Tape{
		buf:   make([]domain.Symbol, minTapeCapacity),
		blank: blank,
	}
	fill(t.buf, blank)
	t.start = minTapeCapacity / 2
	t.end = t.start + 1
	return t
}

func fill(cells []domain.Symbol, s domain.Symbol) {
	if s == 0 {
		return // make already zeroed the cells
	}
	for i := range cells {
		cells[i] = s
	}
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	return t.buf[t.start+t.head]
}

// Write replaces the symbol under the head.
func (t *Tape) Write(s domain.Symbol) {
	t.buf[t.start+t.head] = s
}

// MoveLeft moves the head one cell left, prepending a blank cell at the edge.
func (t *Tape) MoveLeft() {
	if t.head > 0 {
		t.head--
		return
	}
	if t.start == 0 {
		t.growLeft()
	}
	t.start--
	t.offset++
}

// MoveRight moves the head one cell right, appending a blank cell at the edge.
func (t *Tape) MoveRight() {
	t.head++
	if t.head < t.end-t.start {
		return
	}
	if t.end == len(t.buf) {
		t.growRight()
	}
	t.end++
}

func (t *Tape) growLeft() {
	extra := len(t.buf)
	nb := make([]domain.Symbol, len(t.buf)+extra)
	fill(nb[:extra], t.blank)
	copy(nb[extra:], t.buf)
	t.buf = nb
	t.start += extra
	t.end += extra
}

func (t *Tape) growRight() {
	extra := len(t.buf)
	nb := make([]domain.Symbol, len(t.buf)+extra)
	copy(nb, t.buf)
	fill(nb[len(t.buf):], t.blank)
	t.buf = nb
}

// Len returns the number of cells materialized so far.
func (t *Tape) Len() int {
	return t.end - t.start
}

// Head returns the head position as an index into Cells.
func (t *Tape) Head() int {
	return t.head
}

// Offset returns how many cells were prepended on the left.
func (t *Tape) Offset() int {
	return t.offset
}

// Blank returns the default symbol of new cells.
func (t *Tape) Blank() domain.Symbol {
	return t.blank
}

// At returns the symbol at logical index i.
func (t *Tape) At(i int) domain.Symbol {
	return t.buf[t.start+i]
}

// Cells returns a copy of the tape contents, left to right.
func (t *Tape) Cells() domain.Cells {
	out := make(domain.Cells, t.Len())
	copy(out, t.buf[t.start:t.end])
	return out
}

// Count returns the number of cells holding s.
func (t *Tape) Count(s domain.Symbol) uint64 {
	var n uint64
	for _, c := range t.buf[t.start:t.end] {
		if c == s {
			n++
		}
	}
	return n
}
