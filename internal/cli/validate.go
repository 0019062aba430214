package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/pkg/scenario"
)

// ValidationResult summarizes a scenario check.
type ValidationResult struct {
	Plans       int
	Hypotheses  int
	Traces      int
	Unexplained []string
}

// Valid reports whether every trace can be explained by some plan.
func (r *ValidationResult) Valid() bool {
	return len(r.Unexplained) == 0
}

// Validate checks hypotheses, parameters and traces, builds the plan corpus
// and reports traces whose plan evidence would be skipped. Hard failures
// (malformed input, unreachable goal) are returned as errors.
func Validate(ctx context.Context, sc *scenario.Scenario, opts ...normsuite.Option) (*ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	traces, err := sc.ParseTraces()
	if err != nil {
		return nil, err
	}
	suite, err := normsuite.FromScenario(sc, opts...)
	if err != nil {
		return nil, err
	}

	res := &ValidationResult{
		Plans:      len(suite.Paths()),
		Hypotheses: len(suite.Normalized()),
		Traces:     len(traces),
	}
	for _, t := range traces {
		if !suite.Explains(t) {
			res.Unexplained = append(res.Unexplained, t.String())
		}
	}
	return res, nil
}

// PrintValidation writes a human readable summary.
func PrintValidation(w io.Writer, r *ValidationResult) {
	fmt.Fprintf(w, "%d plan(s), %d hypotheses, %d trace(s)\n", r.Plans, r.Hypotheses, r.Traces)
	for _, t := range r.Unexplained {
		fmt.Fprintf(w, "trace %q cannot be explained by any plan; plan evidence will be skipped\n", t)
	}
}
