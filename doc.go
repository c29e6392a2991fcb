/*
Package turing is a deterministic single-tape Turing machine engine, tuned for
running busy-beaver candidates.

A machine is described by a plain-text transition table, one instruction per
line:

	<state> <read> -> <next|Halt> <write> <L|R>

The third field is positional and ignored. States are named on first mention;
the first one declared is the initial state. Halt is reserved as a target and
stops the machine.

# Concept

Parsing, table construction and execution are separate layers. The table is
immutable once built and can be shared by many machines. Each Machine owns one
engine: a tape that grows by one blank cell whenever the head walks off either
end, the current state and a step counter. Running into a (state, symbol) pair
without an instruction is a fault, reported as a *domain.UndefinedTransitionError.

# Usage

	m, err := turing.Load("examples/busy_beaver/busy_beaver_4.turing")
	if err != nil {
		log.Fatal(err)
	}

	report, err := m.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Steps, report.Ones) // 107 13

Callers wanting full control step manually:

	for {
		ok, err := m.Step()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}

# Structure

  - pkg/domain: symbols, directions, states, errors and reports.
  - pkg/table: the interned, immutable transition table.
  - internal/compiler: the line-oriented table parser.
  - internal/runtime: the tape and the stepping engine.
  - pkg/runner: drives an engine to completion with limits and observers.
  - pkg/adapters: report stores (memory, file, redis), table loaders, HTTP and MCP.
*/
package turing
