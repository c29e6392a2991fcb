package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithFile_FansOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turing.log")
	var buf bytes.Buffer

	logger, closer, err := logging.NewWithFile(&buf, slog.LevelInfo, path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("run halted", "steps", 107, "error", "none")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "run halted")
	assert.Contains(t, buf.String(), "err=none")
	assert.NotContains(t, buf.String(), "hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "run halted", entry["msg"])
	assert.Equal(t, float64(107), entry["steps"])
	assert.Equal(t, "none", entry["err"])
}

func TestNewWithFile_NoFile(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.NewWithFile(&buf, slog.LevelDebug, "")
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NoError(t, closer.Close())
}

func TestNewWithFile_BadPath(t *testing.T) {
	_, _, err := logging.NewWithFile(&bytes.Buffer{}, slog.LevelInfo, filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
