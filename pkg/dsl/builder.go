package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// Builder collects rules in declaration order.
type Builder struct {
	records []domain.Record
}

// New creates a new table builder.
func New() *Builder {
	return &Builder{}
}

// State starts declaring rules for the named state.
// Calling it again for the same state adds more rules to it.
func (b *Builder) State(name string) *StateBuilder {
	return &StateBuilder{name: name, builder: b}
}

// Records returns a copy of the declared rules.
func (b *Builder) Records() []domain.Record {
	out := make([]domain.Record, len(b.records))
	copy(out, b.records)
	return out
}

// Table compiles the rules. Duplicate (state, symbol) pairs are rejected.
func (b *Builder) Table() (*table.Table, error) {
	return table.New(b.Records())
}

// Build compiles the rules and serves them as a single-table loader under name.
func (b *Builder) Build(name string) (*memory.Loader, error) {
	if _, err := b.Table(); err != nil {
		return nil, fmt.Errorf("failed to build table %q: %w", name, err)
	}
	return memory.NewFromRecords(map[string][]domain.Record{name: b.Records()})
}
