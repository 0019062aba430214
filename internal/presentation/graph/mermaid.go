// Package graph renders action graphs as Mermaid flowcharts and Graphviz DOT.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/normsuite/pkg/domain"
)

// GraphOverlay contains an observed trace to highlight on the graph.
type GraphOverlay struct {
	Trace domain.Trace
}

// edge is one hop of an action. Hops of multi-step actions carry the action
// label so the chain stays recognizable.
type edge struct {
	from, to domain.Node
	label    string
}

// GenerateMermaid produces a Mermaid flowchart from a list of actions.
// It applies semantic styling:
// - Goal start: ((Circle))
// - Goal target: (((Double circle)))
// - Default: [Rectangle]
// Visited and sanctioned nodes are styled when an overlay is given.
func GenerateMermaid(actions []domain.Action, goal domain.Goal, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	nodes, edges := collect(actions, goal)
	for _, n := range nodes {
		opener, closer := "[", "]"
		switch n {
		case goal.Start:
			opener, closer = "((", "))"
		case goal.Target:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(n), opener, escape(n), closer)
	}
	for _, e := range edges {
		arrow := "-->"
		if e.label != "" {
			arrow = fmt.Sprintf("-. \"%s\" .->", escape(e.label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.from), arrow, sanitizeMermaidID(e.to))
	}

	if overlay != nil && len(overlay.Trace) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef sanctioned fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		sanctioned := make(map[string]bool)
		for _, step := range overlay.Trace {
			if step.Sanctioned {
				sanctioned[sanitizeMermaidID(step.Node)] = true
			}
		}
		seen := make(map[string]bool)
		for _, step := range overlay.Trace {
			id := sanitizeMermaidID(step.Node)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			class := "visited"
			if sanctioned[id] {
				class = "sanctioned"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", id, class)
		}
	}

	return sb.String()
}

// collect returns the nodes in first-seen order (goal first) and the
// deduplicated edges of every action.
func collect(actions []domain.Action, goal domain.Goal) ([]domain.Node, []edge) {
	var nodes []domain.Node
	seenNode := make(map[domain.Node]bool)
	add := func(n domain.Node) {
		if n != "" && !seenNode[n] {
			seenNode[n] = true
			nodes = append(nodes, n)
		}
	}
	add(goal.Start)
	add(goal.Target)

	var edges []edge
	seenEdge := make(map[edge]bool)
	for _, a := range actions {
		label := ""
		if len(a.Path) > 2 {
			label = a.String()
		}
		for i, n := range a.Path {
			add(n)
			if i == 0 {
				continue
			}
			e := edge{from: a.Path[i-1], to: n, label: label}
			if !seenEdge[e] {
				seenEdge[e] = true
				edges = append(edges, e)
			}
		}
	}
	return nodes, edges
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
