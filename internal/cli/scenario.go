package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/normsuite/internal/logging"
	"github.com/aretw0/normsuite/pkg/adapters/loam"
	"github.com/aretw0/normsuite/pkg/scenario"
)

// NewLogger creates the stderr logger for the given level name.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// LoadScenario resolves ref to a scenario. Without a repository directory ref
// is a YAML or JSON file; otherwise it is a document ID inside the Loam
// repository at repoDir.
func LoadScenario(ctx context.Context, repoDir, ref string) (*scenario.Scenario, error) {
	if repoDir == "" {
		return scenario.Load(ref)
	}
	repo, err := loam.Open(repoDir)
	if err != nil {
		return nil, err
	}
	sc, err := repo.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %q from %s: %w", ref, repoDir, err)
	}
	return sc, nil
}

// AppendTraces adds traces given on the command line after the scenario traces.
func AppendTraces(sc *scenario.Scenario, traces []string) {
	sc.Traces = append(sc.Traces, traces...)
}
