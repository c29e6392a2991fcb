package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// BusyBeaver2 is the 2-state, 2-symbol champion: 6 steps, four ones.
const BusyBeaver2 = `A 0 -> B 1 R
A 1 -> B 1 L
B 0 -> A 1 L
B 1 -> Halt 1 R
`

// Stuck faults after two steps: there is no rule for (A, 1).
const Stuck = `A 0 -> B 1 L
B 0 -> A 0 R
`

// WriteTable writes src to name inside a fresh temporary directory and
// returns the file's path. It fails the test immediately on error.
func WriteTable(t *testing.T, name, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644), "Failed to write table")
	return path
}
