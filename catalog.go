package turing

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/aretw0/turing/pkg/adapters/memory"
)

//go:embed examples/busy_beaver/*.turing
var catalogFS embed.FS

const catalogDir = "examples/busy_beaver"

// Catalog returns a loader over the bundled busy-beaver tables.
func Catalog() *memory.Loader {
	entries, err := fs.ReadDir(catalogFS, catalogDir)
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}

	tables := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := catalogFS.ReadFile(path.Join(catalogDir, e.Name()))
		if err != nil {
			panic(err)
		}
		tables[strings.TrimSuffix(e.Name(), ".turing")] = string(data)
	}
	return memory.NewLoader(tables)
}
