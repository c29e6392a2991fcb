package domain

import "fmt"

// Direction is the movement of the head after a write.
// There is no "stay" direction.
type Direction uint8

const (
	Left Direction = iota
	Right
)

// ParseDirection parses the table tokens "L" and "R".
func ParseDirection(tok string) (Direction, error) {
	switch tok {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	}
	return 0, fmt.Errorf("invalid direction %q (expected L or R)", tok)
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Token returns the table-format token for the direction.
func (d Direction) Token() string {
	if d == Left {
		return "L"
	}
	return "R"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.Token()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
