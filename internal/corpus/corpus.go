// Package corpus caches the plans achieving a goal and their linearized paths.
package corpus

import (
	"fmt"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

// Corpus is the immutable set of plans for one goal.
// It is rebuilt wholly whenever the goal changes.
type Corpus struct {
	goal  domain.Goal
	plans []domain.Plan
	paths []domain.Path
}

// Build asks the planner for every plan achieving the goal and linearizes them.
// It fails with a *domain.PlanningError when no plan exists.
func Build(planner ports.Planner, goal domain.Goal, actions []domain.Action) (*Corpus, error) {
	plans, err := planner.Plans(goal, actions)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate plans: %w", err)
	}
	if len(plans) == 0 {
		return nil, &domain.PlanningError{Goal: goal, Actions: actions}
	}

	paths := make([]domain.Path, len(plans))
	for i, plan := range plans {
		paths[i] = Linearize(plan)
	}

	return &Corpus{
		goal:  goal,
		plans: plans,
		paths: paths,
	}, nil
}

// Linearize concatenates the action paths of a plan, dropping the first node of
// every action after the first since it repeats the previous action's last node.
func Linearize(plan domain.Plan) domain.Path {
	if len(plan) == 0 || len(plan[0].Path) == 0 {
		return domain.Path{}
	}
	path := domain.Path{plan[0].Path[0]}
	for _, a := range plan {
		if len(a.Path) > 1 {
			path = append(path, a.Path[1:]...)
		}
	}
	return path
}

// ContainsSubPath reports whether candidate occurs in path as a contiguous
// sub-sequence. An empty candidate is contained in every path.
func ContainsSubPath(candidate, path domain.Path) bool {
	for i := 0; i+len(candidate) <= len(path); i++ {
		if path[i:i+len(candidate)].Equal(candidate) {
			return true
		}
	}
	return false
}

// Goal returns the goal the corpus was built for.
func (c *Corpus) Goal() domain.Goal {
	return c.goal
}

// Plans returns the enumerated plans.
func (c *Corpus) Plans() []domain.Plan {
	return c.plans
}

// Paths returns the linearized plan paths.
func (c *Corpus) Paths() []domain.Path {
	return c.paths
}

// Len returns the number of plans in the corpus.
func (c *Corpus) Len() int {
	return len(c.paths)
}

// Consistent returns the plan paths that contain the candidate as a contiguous sub-path.
func (c *Corpus) Consistent(candidate domain.Path) []domain.Path {
	var out []domain.Path
	for _, p := range c.paths {
		if ContainsSubPath(candidate, p) {
			out = append(out, p)
		}
	}
	return out
}
