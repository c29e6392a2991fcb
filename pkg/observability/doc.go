// Package observability exposes Prometheus metrics for machine runs.
//
// Metrics implements runner.Observer, so it can be attached to any runner with
// runner.WithObserver. Hooks returns engine lifecycle hooks that log halts and
// faults through slog.
package observability
