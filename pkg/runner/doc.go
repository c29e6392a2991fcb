/*
Package runner drives a machine from its current state to a stop.

A Runner repeatedly calls Step until the machine halts, faults, exceeds a step
budget, or the context is cancelled. The context is only consulted between
batches of steps so the hot loop stays a tight sequence of Step calls.

Every run produces a domain.Report, which is handed to the configured observers
and, when a store is set, persisted through ports.ReportStore.

# Usage

	r := runner.New(
		runner.WithName("busy_beaver_4"),
		runner.WithMaxSteps(1_000_000),
		runner.WithStore(memory.NewStore()),
	)

	report, err := r.Run(ctx, engine)
*/
package runner
