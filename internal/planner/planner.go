// Package planner enumerates the plans that achieve a goal in an action graph.
package planner

import (
	"sort"
	"strings"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Config configures the enumeration.
type Config struct {
	// MaxDepth limits the number of actions in a single plan.
	MaxDepth int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxDepth: 32}
}

// DFS enumerates plans by depth-first search over applicable actions.
// An action is applicable when its first node is the current node. Nodes are
// never revisited, so every plan is acyclic and the enumeration terminates.
//
// Thread Safety: Safe for concurrent use.
type DFS struct {
	config Config
}

// New creates a depth-first planner.
func New(config Config) *DFS {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	return &DFS{config: config}
}

// Plans implements ports.Planner.
func (p *DFS) Plans(goal domain.Goal, actions []domain.Action) ([]domain.Plan, error) {
	byFirst := make(map[domain.Node][]domain.Action)
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		byFirst[a.First()] = append(byFirst[a.First()], a)
	}
	for n := range byFirst {
		sort.Slice(byFirst[n], func(i, j int) bool {
			return byFirst[n][i].String() < byFirst[n][j].String()
		})
	}

	var plans []domain.Plan
	visited := map[domain.Node]bool{goal.Start: true}

	var walk func(current domain.Node, plan domain.Plan)
	walk = func(current domain.Node, plan domain.Plan) {
		if len(plan) > 0 && current == goal.Target {
			plans = append(plans, append(domain.Plan(nil), plan...))
			return
		}
		if len(plan) >= p.config.MaxDepth {
			return
		}
		for _, a := range byFirst[current] {
			rest := a.Path[1:]
			if revisits(rest, visited) {
				continue
			}
			for _, n := range rest {
				visited[n] = true
			}
			walk(a.Last(), append(plan, a))
			for _, n := range rest {
				delete(visited, n)
			}
		}
	}
	walk(goal.Start, nil)

	if len(plans) == 0 {
		return nil, &domain.PlanningError{Goal: goal, Actions: actions}
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return planKey(plans[i]) < planKey(plans[j])
	})
	return plans, nil
}

// revisits reports whether the nodes repeat among themselves or hit a visited node.
func revisits(nodes []domain.Node, visited map[domain.Node]bool) bool {
	seen := make(map[domain.Node]bool, len(nodes))
	for _, n := range nodes {
		if visited[n] || seen[n] {
			return true
		}
		seen[n] = true
	}
	return false
}

func planKey(plan domain.Plan) string {
	parts := make([]string, len(plan))
	for i, a := range plan {
		parts[i] = a.String()
	}
	return strings.Join(parts, "|")
}
