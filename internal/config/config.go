// Package config loads the optional turing.yaml settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no path is given and it exists.
const DefaultFile = "turing.yaml"

// Store backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Run     RunConfig     `mapstructure:"run"`
	Report  ReportConfig  `mapstructure:"report"`
	Store   StoreConfig   `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type RunConfig struct {
	MaxSteps         uint64 `mapstructure:"max_steps"`
	ProgressInterval uint64 `mapstructure:"progress_interval"`
	CheckInterval    uint64 `mapstructure:"check_interval"`
}

type ReportConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Run: RunConfig{CheckInterval: 1 << 16},
		Store: StoreConfig{
			Backend: BackendNone,
			Dir:     filepath.Join(".turing", "reports"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "turing:report:",
			},
		},
		HTTP: HTTPConfig{Port: 8080},
		MCP:  MCPConfig{Transport: "stdio", Port: 8080},
	}
}

// Load reads path over the defaults. An empty path falls back to DefaultFile
// when present; a missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode merges a generic map into cfg. Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendNone, BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("invalid store.backend %q", c.Store.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid mcp.transport %q", c.MCP.Transport)
	}
	return nil
}
