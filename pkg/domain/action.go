package domain

import (
	"fmt"
	"strings"
)

// Action is one operator of the plan graph, traversing its nodes in order.
// Consecutive actions in a plan share a node: the last node of one action is
// the first node of the next.
type Action struct {
	Path Path `json:"path" yaml:"path" mapstructure:"path"`
}

// NewAction creates an action traversing the given nodes.
func NewAction(nodes ...Node) Action {
	return Action{Path: append(Path(nil), nodes...)}
}

// ParseAction parses the "a->b->c" form produced by String.
func ParseAction(s string) (Action, error) {
	parts := strings.Split(s, "->")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	a := NewAction(parts...)
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// Validate checks that the action spans at least two valid nodes.
func (a Action) Validate() error {
	if len(a.Path) < 2 {
		return fmt.Errorf("action %s must span at least two nodes", a.Path)
	}
	for i, n := range a.Path {
		if err := ValidateNode(n); err != nil {
			return fmt.Errorf("action %s, position %d: %w", a.Path, i, err)
		}
	}
	return nil
}

// First returns the node the action starts from.
func (a Action) First() Node {
	if len(a.Path) == 0 {
		return ""
	}
	return a.Path[0]
}

// Last returns the node the action ends at.
func (a Action) Last() Node {
	if len(a.Path) == 0 {
		return ""
	}
	return a.Path[len(a.Path)-1]
}

func (a Action) String() string {
	return strings.Join(a.Path, "->")
}

// Goal identifies the target condition handed to the planner: reach Target
// starting from Start.
type Goal struct {
	Start  Node `json:"start" yaml:"start" mapstructure:"start"`
	Target Node `json:"target" yaml:"target" mapstructure:"target"`
}

func (g Goal) String() string {
	return fmt.Sprintf("Goal(%s, %s)", g.Start, g.Target)
}

// Plan is an ordered sequence of actions achieving a goal.
type Plan []Action

// Nodes returns every distinct node mentioned by the actions, in first-seen order.
func Nodes(actions []Action) []Node {
	seen := make(map[Node]bool)
	var nodes []Node
	for _, a := range actions {
		for _, n := range a.Path {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

// Successors maps each node to the nodes that directly follow it inside some action.
func Successors(actions []Action) map[Node]map[Node]bool {
	succ := make(map[Node]map[Node]bool)
	for _, a := range actions {
		for i := 0; i < len(a.Path)-1; i++ {
			from := a.Path[i]
			if succ[from] == nil {
				succ[from] = make(map[Node]bool)
			}
			succ[from][a.Path[i+1]] = true
		}
	}
	return succ
}
