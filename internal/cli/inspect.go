package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/runner"
)

// Validate statically checks the table at path and prints the findings.
// It returns the findings as an error when there are any.
func Validate(w io.Writer, path string) error {
	m, err := turing.Load(path)
	if err != nil {
		return err
	}
	tbl := m.Table()
	res := validator.Validate(tbl, tbl.Initial(), 0)

	fmt.Fprintf(w, "%s: %d states, %d instructions, reachable from '%s': %d\n",
		m.Name, tbl.NumStates(), tbl.Len(), res.Start, len(res.Reachable))
	return res.Err()
}

// DefaultGraphSteps bounds a graph run when no limit is given.
const DefaultGraphSteps = 100_000

// GraphOptions configures the graph command.
type GraphOptions struct {
	Path string
	// Run executes the machine first and highlights the states it
	// visited and the one it stopped in.
	Run      bool
	MaxSteps uint64
}

// Graph prints a Mermaid diagram of the table at opts.Path.
func Graph(ctx context.Context, w io.Writer, opts GraphOptions) error {
	m, err := turing.Load(opts.Path)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Run {
		overlay, err = trace(ctx, m, opts.MaxSteps)
		if err != nil {
			return err
		}
	}

	fmt.Fprint(w, graph.GenerateMermaid(m.Table(), overlay))
	return nil
}

// trace steps m and records every state it passes through.
// Faults and exhausted budgets are not errors here, the overlay shows them.
func trace(ctx context.Context, m *turing.Machine, limit uint64) (*graph.GraphOverlay, error) {
	if limit == 0 {
		limit = DefaultGraphSteps
	}
	eng := m.Engine()
	seen := map[string]bool{eng.StateName(): true}
	visited := []string{eng.StateName()}

	for i := uint64(0); i < limit; i++ {
		if i%runner.DefaultCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ok, err := m.Step()
		if err != nil || !ok {
			break
		}
		name := eng.StateName()
		if !seen[name] {
			seen[name] = true
			visited = append(visited, name)
		}
	}

	return &graph.GraphOverlay{VisitedStates: visited, CurrentState: eng.StateName()}, nil
}
