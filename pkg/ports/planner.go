package ports

import "github.com/aretw0/normsuite/pkg/domain"

// Planner enumerates plans for a goal.
// Implementations must return domain.ErrNoPlan (possibly wrapped) when no plan exists.
type Planner interface {
	// Plans returns every plan (ordered action sequence) that achieves the goal.
	Plans(goal domain.Goal, actions []domain.Action) ([]domain.Plan, error)
}
