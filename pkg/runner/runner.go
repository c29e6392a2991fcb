package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

// ErrStepLimit is returned when the step budget runs out before the machine halts.
var ErrStepLimit = errors.New("step limit reached")

// Machine is what a Runner drives. *runtime.Engine satisfies it.
type Machine interface {
	Step() (bool, error)
	Steps() uint64
	Status() domain.Status
	StateName() string
	Tally() domain.Tally
	TapeLen() int
	Head() int
	Offset() int
}

// Observer is notified about step throughput and finished runs.
type Observer interface {
	// ObserveSteps reports n steps taken since the previous call.
	ObserveSteps(n uint64)
	// ObserveRun is called once per run with its final report.
	ObserveRun(report *domain.Report)
}

// Progress is passed to a ProgressFunc.
type Progress struct {
	Steps   uint64
	State   string
	TapeLen int
	Elapsed time.Duration
}

// ProgressFunc receives periodic progress updates.
type ProgressFunc func(Progress)

// Runner handles the execution loop of a machine.
type Runner struct {
	logger           *slog.Logger
	name             string
	maxSteps         uint64
	checkInterval    uint64
	progressInterval uint64
	progress         ProgressFunc
	store            ports.ReportStore
	observers        []Observer
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		checkInterval: DefaultCheckInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run steps m until it stops and returns the report of the run.
// The returned error is nil on halt, the fault on an undefined transition,
// ErrStepLimit when the budget is spent, or the context error.
// A report is returned in every case.
func (r *Runner) Run(ctx context.Context, m Machine) (*domain.Report, error) {
	start := time.Now()
	report := &domain.Report{
		ID:        uuid.NewString(),
		Machine:   r.name,
		StartedAt: start.UTC(),
	}

	r.logger.Info("run started", "run_id", report.ID, "machine", r.name, "max_steps", r.maxSteps)

	runErr := r.loop(ctx, m, start)
	r.fill(report, m, runErr, time.Since(start))

	switch {
	case runErr == nil:
		r.logger.Info("run halted", "run_id", report.ID, "steps", report.Steps, "elapsed", report.Elapsed)
	case errors.Is(runErr, domain.ErrUndefinedTransition):
		r.logger.Warn("run faulted", "run_id", report.ID, "steps", report.Steps, "err", runErr)
	default:
		r.logger.Info("run stopped", "run_id", report.ID, "steps", report.Steps, "err", runErr)
	}

	for _, o := range r.observers {
		o.ObserveRun(report)
	}

	if r.store != nil {
		// The report outlives a cancelled run.
		if err := r.store.Save(context.WithoutCancel(ctx), report); err != nil {
			r.logger.Error("failed to save report", "run_id", report.ID, "err", err)
			if runErr == nil {
				return report, fmt.Errorf("save report: %w", err)
			}
		}
	}

	return report, runErr
}

func (r *Runner) loop(ctx context.Context, m Machine, start time.Time) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		steps := m.Steps()
		batch := r.checkInterval
		if r.maxSteps > 0 {
			if steps >= r.maxSteps {
				if m.Status() == domain.StatusHalted {
					return nil
				}
				return ErrStepLimit
			}
			batch = min(batch, r.maxSteps-steps)
		}
		if r.progress != nil && r.progressInterval > 0 {
			next := (steps/r.progressInterval + 1) * r.progressInterval
			batch = min(batch, next-steps)
		}

		done, err := r.batch(m, batch)
		r.observeSteps(m.Steps() - steps)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if r.progress != nil && r.progressInterval > 0 && m.Steps()%r.progressInterval == 0 {
			r.progress(Progress{
				Steps:   m.Steps(),
				State:   m.StateName(),
				TapeLen: m.TapeLen(),
				Elapsed: time.Since(start),
			})
		}
	}
}

// batch takes up to n steps. done reports a halt.
func (r *Runner) batch(m Machine, n uint64) (done bool, err error) {
	for i := uint64(0); i < n; i++ {
		ok, err := m.Step()
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
	}
	return m.Status() == domain.StatusHalted, nil
}

func (r *Runner) observeSteps(n uint64) {
	if n == 0 {
		return
	}
	for _, o := range r.observers {
		o.ObserveSteps(n)
	}
}

func (r *Runner) fill(report *domain.Report, m Machine, runErr error, elapsed time.Duration) {
	tally := m.Tally()
	report.Status = m.Status()
	report.State = m.StateName()
	report.Steps = m.Steps()
	report.Ones = tally.Ones
	report.Zeros = tally.Zeros
	report.TapeLength = m.TapeLen()
	report.Head = m.Head()
	report.Offset = m.Offset()
	report.Elapsed = elapsed
	if secs := elapsed.Seconds(); secs > 0 {
		report.StepsPerSecond = float64(report.Steps) / secs
	}
	if runErr != nil {
		report.Error = runErr.Error()
	}
}
