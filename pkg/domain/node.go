package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Node identifies a location in the plan graph.
type Node = string

// ValidateNode checks that a node name survives the textual forms of traces,
// actions and hypotheses: it must be non-empty, free of whitespace and of the
// action separator, and not a reserved token.
func ValidateNode(n Node) error {
	switch {
	case n == "":
		return fmt.Errorf("node name is empty")
	case strings.ContainsFunc(n, unicode.IsSpace):
		return fmt.Errorf("node name %q contains whitespace", n)
	case strings.Contains(n, "->"):
		return fmt.Errorf("node name %q contains the action separator", n)
	case n == SanctionMarker:
		return fmt.Errorf("node name %q is the reserved sanction marker", n)
	case n == noNormLabel:
		return fmt.Errorf("node name %q is reserved for the baseline hypothesis", n)
	}
	return nil
}

// Path is an ordered sequence of nodes.
type Path []Node

// Contains reports whether node occurs anywhere in the path.
func (p Path) Contains(node Node) bool {
	for _, n := range p {
		if n == node {
			return true
		}
	}
	return false
}

// Equal reports whether both paths hold the same nodes in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return "[" + strings.Join(p, " ") + "]"
}
