package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/normsuite/pkg/domain"
)

// GenerateDOT renders the action graph in Graphviz DOT. Sanctioned nodes of
// the overlay trace are filled red and visited nodes blue.
func GenerateDOT(actions []domain.Action, goal domain.Goal, overlay *GraphOverlay) string {
	visited := make(map[domain.Node]string)
	if overlay != nil {
		for _, step := range overlay.Trace {
			if step.Sanctioned {
				visited[step.Node] = "#ffcdd2"
			} else if _, ok := visited[step.Node]; !ok {
				visited[step.Node] = "#e1f5fe"
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("digraph actions {\n")
	sb.WriteString("    rankdir=LR;\n")

	nodes, edges := collect(actions, goal)
	for _, n := range nodes {
		var attrs []string
		switch n {
		case goal.Start:
			attrs = append(attrs, "shape=circle")
		case goal.Target:
			attrs = append(attrs, "shape=doublecircle")
		default:
			attrs = append(attrs, "shape=box")
		}
		if fill, ok := visited[n]; ok {
			attrs = append(attrs, "style=filled", "fillcolor="+strconv.Quote(fill))
		}
		fmt.Fprintf(&sb, "    %s [%s];\n", strconv.Quote(n), strings.Join(attrs, ", "))
	}
	for _, e := range edges {
		if e.label != "" {
			fmt.Fprintf(&sb, "    %s -> %s [style=dashed, label=%s];\n", strconv.Quote(e.from), strconv.Quote(e.to), strconv.Quote(e.label))
			continue
		}
		fmt.Fprintf(&sb, "    %s -> %s;\n", strconv.Quote(e.from), strconv.Quote(e.to))
	}
	sb.WriteString("}\n")
	return sb.String()
}
