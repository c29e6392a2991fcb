package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "turing version "+turing.Version+"\n", out)
}

func TestRunAndReports(t *testing.T) {
	table := testutils.WriteTable(t, "bb2.turing", testutils.BusyBeaver2)
	reports := filepath.Join(t.TempDir(), "reports")

	out, err := execute(t, "run", table, "--store", "file", "--store-dir", reports, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Busy Beaver: 4 ones, 0 zeros, after 6 steps")

	out, err = execute(t, "report", "ls", "--store", "file", "--store-dir", reports, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "bb2")
	assert.Contains(t, out, "6 steps")

	out, err = execute(t, "validate", table, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Table is valid!")
}

func TestReportWithoutStore(t *testing.T) {
	_, err := execute(t, "report", "ls", "--store", "none", "--log-level", "error")
	assert.ErrorContains(t, err, "no report store configured")
}
