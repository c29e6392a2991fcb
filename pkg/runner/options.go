package runner

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/ports"
)

// DefaultCheckInterval is how many steps run between context checks.
const DefaultCheckInterval uint64 = 1 << 16

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithName labels reports with the table name.
func WithName(name string) Option {
	return func(r *Runner) {
		r.name = name
	}
}

// WithMaxSteps bounds the run. Zero means unbounded.
// A machine still running after n steps stops with ErrStepLimit.
func WithMaxSteps(n uint64) Option {
	return func(r *Runner) {
		r.maxSteps = n
	}
}

// WithCheckInterval sets how many steps run between context checks.
func WithCheckInterval(n uint64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.checkInterval = n
		}
	}
}

// WithProgress calls fn every interval steps.
func WithProgress(interval uint64, fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progressInterval = interval
		r.progress = fn
	}
}

// WithStore persists every report.
func WithStore(store ports.ReportStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithObserver adds an observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}
