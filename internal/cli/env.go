package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Env holds the process-wide dependencies built from configuration.
type Env struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    ports.ReportStore
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	closers []io.Closer
}

// NewEnv builds logging, the report store and metrics from cfg.
// Logs go to stderr; the caller must Close the Env.
func NewEnv(ctx context.Context, cfg config.Config, stderr io.Writer) (*Env, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.NewWithFile(stderr, level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
		closers:  []io.Closer{logCloser},
	}
	env.Registry.MustRegister(collectors.NewGoCollector())
	env.Metrics = observability.NewMetrics(env.Registry)

	store, err := newStore(ctx, cfg.Store)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	if store != nil {
		if c, ok := store.(io.Closer); ok {
			env.closers = append(env.closers, c)
		}
		env.Store = middleware.Chain(store,
			middleware.NewLoggingMiddleware(logger),
			middleware.NewMetricsMiddleware(env.Registry),
		)
	}

	logger.Debug("environment ready", "store", cfg.Store.Backend, "log_file", cfg.Log.File)
	return env, nil
}

func newStore(ctx context.Context, cfg config.StoreConfig) (ports.ReportStore, error) {
	switch cfg.Backend {
	case config.BackendNone, "":
		return nil, nil
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendFile:
		return file.New(cfg.Dir), nil
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// RunnerOptions returns the runner settings shared by every command.
func (e *Env) RunnerOptions() []runner.Option {
	opts := []runner.Option{
		runner.WithLogger(e.Logger),
		runner.WithObserver(e.Metrics),
		runner.WithCheckInterval(e.Config.Run.CheckInterval),
	}
	if e.Store != nil {
		opts = append(opts, runner.WithStore(e.Store))
	}
	return opts
}

// MetricsHandler serves the registry in the Prometheus text format.
func (e *Env) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(e.Registry, promhttp.HandlerOpts{})
}

// ServeMetrics starts a /metrics listener on addr in the background.
// The returned server must be shut down by the caller.
func (e *Env) ServeMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.MetricsHandler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		e.Logger.Info("metrics listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Error("metrics server failed", "err", err)
		}
	}()
	return srv
}

// Close releases the store and the log file.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
