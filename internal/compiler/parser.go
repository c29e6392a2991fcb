package compiler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// FieldCount is the number of whitespace-separated fields of an instruction line.
const FieldCount = 6

var (
	// ErrFieldCount is returned when a line does not have exactly six fields.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrBadSymbol is returned when a read or write symbol cannot be parsed.
	ErrBadSymbol = errors.New("unparseable symbol")
	// ErrBadDirection is returned when the direction is not L or R.
	ErrBadDirection = errors.New("unrecognized direction")
)

// LineError reports a malformed line with its content and reason.
type LineError struct {
	Line    int
	Content string
	Reason  string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("can't read instruction from line %d '%s': %s", e.Line, e.Content, e.Reason)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parser converts the line-oriented table format into records.
//
//	<source> <read> <unused> <target|Halt> <write> <L|R>
type Parser struct {
	// Comments enables skipping lines starting with '#'.
	Comments bool
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{Comments: true}
}

// Parse reads every instruction from r. It stops at the first malformed line.
func (p *Parser) Parse(r io.Reader) ([]domain.Record, error) {
	var records []domain.Record

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if p.Comments && strings.HasPrefix(trimmed, "#") {
			continue
		}

		rec, err := p.ParseLine(line)
		if err != nil {
			var le *LineError
			if errors.As(err, &le) {
				le.Line = lineNo
			}
			return nil, err
		}
		rec.Line = lineNo
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read instructions: %w", err)
	}

	return records, nil
}

// ParseLine parses a single non-empty instruction line.
func (p *Parser) ParseLine(line string) (domain.Record, error) {
	fields := strings.Fields(line)
	if len(fields) != FieldCount {
		return domain.Record{}, &LineError{
			Content: line,
			Reason:  fmt.Sprintf("invalid number of elements (found %d, expected %d)", len(fields), FieldCount),
			Err:     ErrFieldCount,
		}
	}

	read, err := domain.ParseSymbol(fields[1])
	if err != nil {
		return domain.Record{}, &LineError{
			Content: line,
			Reason:  fmt.Sprintf("unable to parse source entry: %v", err),
			Err:     ErrBadSymbol,
		}
	}

	write, err := domain.ParseSymbol(fields[4])
	if err != nil {
		return domain.Record{}, &LineError{
			Content: line,
			Reason:  fmt.Sprintf("unable to parse target entry: %v", err),
			Err:     ErrBadSymbol,
		}
	}

	move, err := domain.ParseDirection(fields[5])
	if err != nil {
		return domain.Record{}, &LineError{
			Content: line,
			Reason:  err.Error(),
			Err:     ErrBadDirection,
		}
	}

	return domain.Record{
		From:     fields[0],
		Read:     read,
		Reserved: fields[2],
		To:       fields[3],
		Write:    write,
		Move:     move,
	}, nil
}

// ParseFile opens and parses a table file.
func (p *Parser) ParseFile(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", path, err)
	}
	defer f.Close()

	records, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Format renders records back into the table format.
func Format(records []domain.Record) string {
	var sb strings.Builder
	for _, r := range records {
		reserved := r.Reserved
		if reserved == "" {
			reserved = "->"
		}
		fmt.Fprintf(&sb, "%s %d %s %s %d %s\n", r.From, r.Read, reserved, r.To, r.Write, r.Move.Token())
	}
	return sb.String()
}
