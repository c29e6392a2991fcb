package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/turing/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "turing.yaml", `
log:
  level: debug
run:
  max_steps: 1000000
  progress_interval: 50000
store:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
    ttl: 1h
metrics:
  addr: ":2112"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint64(1_000_000), cfg.Run.MaxSteps)
	assert.Equal(t, uint64(50_000), cfg.Run.ProgressInterval)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)

	// Untouched keys keep their defaults.
	assert.Equal(t, uint64(1<<16), cfg.Run.CheckInterval)
	assert.Equal(t, "turing:report:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "turing.json", `{"report": {"pretty": true}, "http": {"port": "9090"}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Report.Pretty)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "run:\n  max_stepz: 3\n"},
		{"bad backend", "store:\n  backend: postgres\n"},
		{"bad transport", "mcp:\n  transport: carrier-pigeon\n"},
		{"bad duration", "store:\n  redis:\n    ttl: soon\n"},
		{"bad yaml", "log: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "turing.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("implicit default may be absent", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})
}
