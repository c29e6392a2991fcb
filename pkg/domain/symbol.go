package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Symbol is a value of the tape alphabet.
type Symbol uint8

// Blank is the default symbol of unvisited cells.
const Blank Symbol = 0

// ParseSymbol parses a decimal symbol token.
func ParseSymbol(tok string) (Symbol, error) {
	v, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid symbol %q: %w", tok, err)
	}
	return Symbol(v), nil
}

func (s Symbol) String() string {
	return strconv.Itoa(int(s))
}

// Cells is an ordered run of tape symbols.
// It encodes to JSON as an array of numbers rather than base64.
type Cells []Symbol

// MarshalJSON implements json.Marshaler.
func (c Cells) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(c))
	for i, s := range c {
		ints[i] = int(s)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cells) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make(Cells, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("symbol out of range: %d", v)
		}
		out[i] = Symbol(v)
	}
	*c = out
	return nil
}

// String renders the cells space separated, e.g. "1 0 1".
func (c Cells) String() string {
	var sb strings.Builder
	for i, s := range c {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
