package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// GraphOverlay contains run data to highlight on the diagram.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid stateDiagram for the table.
// The initial state is entered from [*]; Halt transitions exit to [*].
// Edges are labelled "read/write,move".
func GenerateMermaid(tbl *table.Table, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	ids := mermaidIDs(tbl.States())
	for i, name := range tbl.States() {
		if ids[i] != name {
			fmt.Fprintf(&sb, "    state \"%s\" as %s\n", escapeLabel(name), ids[i])
		}
	}

	if tbl.NumStates() > 0 {
		fmt.Fprintf(&sb, "    [*] --> %s\n", ids[tbl.Initial()])
	}

	for _, inst := range tbl.Instructions() {
		to := "[*]"
		if !inst.To.Halted() {
			to = ids[inst.To]
		}
		fmt.Fprintf(&sb, "    %s --> %s : %d/%d,%s\n", ids[inst.From], to, inst.Read, inst.Write, inst.Move.Token())
	}

	if overlay != nil {
		index := make(map[string]string, len(ids))
		for i, name := range tbl.States() {
			index[name] = ids[i]
		}

		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[string]bool)
		for _, name := range overlay.VisitedStates {
			id, ok := index[name]
			if !ok || seen[id] || name == overlay.CurrentState {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited\n", id)
		}

		if id, ok := index[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current\n", id)
		}
	}

	return sb.String()
}

// mermaidIDs maps state names to unique identifiers Mermaid accepts.
func mermaidIDs(names []string) []string {
	ids := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		id := sanitizeMermaidID(name)
		if id == "" || used[id] || id == domain.HaltName {
			id = fmt.Sprintf("%s_%d", id, i)
		}
		used[id] = true
		ids[i] = id
	}
	return ids
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
