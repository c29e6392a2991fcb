package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Loader implements ports.TableLoader using an in-memory map.
type Loader struct {
	tables map[string][]byte
}

// NewLoader creates a new Loader with the provided raw table texts.
func NewLoader(data map[string]string) *Loader {
	tables := make(map[string][]byte)
	for k, v := range data {
		tables[k] = []byte(v)
	}
	return &Loader{
		tables: tables,
	}
}

// NewFromRecords creates a Loader from parsed records, keyed by table name.
func NewFromRecords(tables map[string][]domain.Record) (*Loader, error) {
	data := make(map[string][]byte)
	for name, records := range tables {
		if name == "" {
			return nil, fmt.Errorf("table missing name")
		}
		data[name] = []byte(compiler.Format(records))
	}
	return &Loader{tables: data}, nil
}

// GetTable retrieves the raw table text by name.
func (l *Loader) GetTable(name string) ([]byte, error) {
	content, ok := l.tables[name]
	if !ok {
		return nil, fmt.Errorf("table not found: %s", name)
	}
	return content, nil
}

// ListTables returns all available table names.
func (l *Loader) ListTables() ([]string, error) {
	keys := make([]string, 0, len(l.tables))
	for k := range l.tables {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
