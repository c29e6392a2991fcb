package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the suffix of transition table files.
const Extension = ".turing"

// Loader implements ports.TableLoader over a directory of table files.
// The table name is the file name without Extension.
type Loader struct {
	Dir string
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// GetTable reads <dir>/<name>.turing.
func (l *Loader) GetTable(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid table name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(l.Dir, name+Extension))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("table not found: %s", name)
		}
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return data, nil
}

// ListTables returns the names of all table files in the directory, sorted.
func (l *Loader) ListTables() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}
