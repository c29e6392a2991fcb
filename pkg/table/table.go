package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Table is an immutable, validated set of instructions.
type Table struct {
	names        []string
	index        map[string]domain.StateID
	instructions []domain.Instruction

	// rows[state][symbol] is 1 + the position in instructions, 0 when undefined.
	rows [][]int32
}

// New builds a table from records in declaration order.
// It fails with a *domain.DuplicateTransitionError when two records share a
// (state, symbol) source; no partial table is returned.
func New(records []domain.Record) (*Table, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyTable
	}

	t := &Table{
		index:        make(map[string]domain.StateID),
		instructions: make([]domain.Instruction, 0, len(records)),
	}

	for _, r := range records {
		if r.From == "" || r.To == "" {
			return nil, fmt.Errorf("line %d: instruction missing state name", r.Line)
		}
		if r.From == domain.HaltName {
			return nil, fmt.Errorf("line %d: %s cannot be a source state", r.Line, domain.HaltName)
		}

		from := t.intern(r.From)
		to := domain.Halt
		if !r.Halts() {
			to = t.intern(r.To)
		}

		row := t.rows[from]
		if int(r.Read) < len(row) && row[r.Read] != 0 {
			first := t.instructions[row[r.Read]-1]
			return nil, &domain.DuplicateTransitionError{
				State:     r.From,
				Read:      r.Read,
				Line:      r.Line,
				FirstLine: first.Line,
			}
		}
		if int(r.Read) >= len(row) {
			grown := make([]int32, int(r.Read)+1)
			copy(grown, row)
			row = grown
			t.rows[from] = row
		}

		t.instructions = append(t.instructions, domain.Instruction{
			From:  from,
			Read:  r.Read,
			To:    to,
			Write: r.Write,
			Move:  r.Move,
			Line:  r.Line,
		})
		row[r.Read] = int32(len(t.instructions))
	}

	return t, nil
}

func (t *Table) intern(name string) domain.StateID {
	if id, ok := t.index[name]; ok {
		return id
	}
	id := domain.StateID(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = id
	t.rows = append(t.rows, nil)
	return id
}

// Lookup returns the instruction for (state, symbol).
func (t *Table) Lookup(state domain.StateID, sym domain.Symbol) (domain.Instruction, bool) {
	if state < 0 || int(state) >= len(t.rows) {
		return domain.Instruction{}, false
	}
	row := t.rows[state]
	if int(sym) >= len(row) || row[sym] == 0 {
		return domain.Instruction{}, false
	}
	return t.instructions[row[sym]-1], true
}

// Initial returns the first declared state.
func (t *Table) Initial() domain.StateID {
	return 0
}

// StateID resolves a declared state name.
func (t *Table) StateID(name string) (domain.StateID, error) {
	id, ok := t.index[name]
	if !ok {
		return domain.Halt, fmt.Errorf("%w: %q", domain.ErrUnknownState, name)
	}
	return id, nil
}

// StateName returns the display name of a state, or the Halt marker.
func (t *Table) StateName(id domain.StateID) string {
	if id.Halted() {
		return domain.HaltName
	}
	if int(id) >= len(t.names) || id < 0 {
		return fmt.Sprintf("State(%d)", int32(id))
	}
	return t.names[id]
}

// States returns the state names in declaration (index) order.
func (t *Table) States() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// NumStates returns the number of declared states.
func (t *Table) NumStates() int {
	return len(t.names)
}

// Instructions returns the instructions in declaration order.
func (t *Table) Instructions() []domain.Instruction {
	out := make([]domain.Instruction, len(t.instructions))
	copy(out, t.instructions)
	return out
}

// Len returns the number of instructions.
func (t *Table) Len() int {
	return len(t.instructions)
}

// Alphabet returns every symbol read or written by the table, ascending.
func (t *Table) Alphabet() []domain.Symbol {
	seen := make(map[domain.Symbol]bool)
	for _, inst := range t.instructions {
		seen[inst.Read] = true
		seen[inst.Write] = true
	}
	out := make([]domain.Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Records converts the table back to records, resolving interned names.
func (t *Table) Records() []domain.Record {
	out := make([]domain.Record, len(t.instructions))
	for i, inst := range t.instructions {
		out[i] = domain.Record{
			Line:  inst.Line,
			From:  t.StateName(inst.From),
			Read:  inst.Read,
			To:    t.StateName(inst.To),
			Write: inst.Write,
			Move:  inst.Move,
		}
	}
	return out
}

// Format renders an instruction as "(A, 0) -> (B, 1, Right)".
func (t *Table) Format(inst domain.Instruction) string {
	return fmt.Sprintf("(%s, %d) -> (%s, %d, %s)",
		t.StateName(inst.From), inst.Read, t.StateName(inst.To), inst.Write, inst.Move)
}

// String renders the whole table, one instruction per line.
func (t *Table) String() string {
	var sb strings.Builder
	for _, inst := range t.instructions {
		sb.WriteString(t.Format(inst))
		sb.WriteByte('\n')
	}
	return sb.String()
}
