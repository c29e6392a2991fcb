package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/report"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	Path         string
	InitialState string
	Blank        domain.Symbol
	Pretty       bool
	ShowTape     bool
}

// Run loads the table at opts.Path, prints it, runs it to completion and
// prints the outcome. The error is the run's terminating error.
func Run(ctx context.Context, w io.Writer, env *Env, opts RunOptions) (*domain.Report, error) {
	machineOpts := []turing.Option{
		turing.WithLogger(env.Logger),
		turing.WithLifecycleHooks(observability.Hooks(env.Logger)),
		turing.WithBlank(opts.Blank),
	}
	if opts.InitialState != "" {
		machineOpts = append(machineOpts, turing.WithInitialState(opts.InitialState))
	}

	m, err := turing.Load(opts.Path, machineOpts...)
	if err != nil {
		return nil, err
	}
	tbl := m.Table()

	if !opts.Pretty {
		fmt.Fprint(w, report.States(tbl))
		fmt.Fprint(w, report.Instructions(tbl))
	}

	runOpts := env.RunnerOptions()
	runOpts = append(runOpts, runner.WithMaxSteps(env.Config.Run.MaxSteps))
	if n := env.Config.Run.ProgressInterval; n > 0 {
		runOpts = append(runOpts, runner.WithProgress(n, func(p runner.Progress) {
			env.Logger.Info("progress", "steps", p.Steps, "state", p.State, "tape", p.TapeLen, "elapsed", p.Elapsed)
		}))
	}

	rep, runErr := m.Run(ctx, runOpts...)

	if opts.Pretty {
		out, err := tui.NewRenderer()(report.Markdown(tbl, rep))
		if err != nil {
			return rep, err
		}
		fmt.Fprint(w, out)
	} else {
		fmt.Fprint(w, report.Summary(rep))
	}

	if opts.ShowTape {
		snap := m.Snapshot()
		var pending *domain.Instruction
		if inst, ok := m.Pending(); ok {
			pending = &inst
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, report.Tape(tbl, snap, pending, true))
	}

	if env.Store != nil {
		env.Logger.Info("report saved", "run_id", rep.ID)
	}
	return rep, runErr
}
