package ports

import (
	"context"

	"github.com/aretw0/normsuite/pkg/scenario"
)

// ScenarioRepository provides read access to named scenarios.
type ScenarioRepository interface {
	Get(ctx context.Context, id string) (*scenario.Scenario, error)
	List(ctx context.Context) ([]string, error)
}
