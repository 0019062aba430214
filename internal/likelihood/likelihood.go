// Package likelihood scores an observed path under a norm hypothesis.
//
// Two independent models are provided. Sanctions explains the punishment
// signals attached to a trace; Plans explains which of the goal's plans the
// agent appears to be following.
package likelihood

import (
	"math"

	"github.com/aretw0/normsuite/internal/corpus"
	"github.com/aretw0/normsuite/internal/norm"
	"github.com/aretw0/normsuite/pkg/domain"
)

// Sanctions returns the probability of observing the given sanctioned
// positions along path if h were the norm in force.
//
// A violation at position i is punished iff position i+1 is sanctioned.
func Sanctions(path domain.Path, sanctioned map[int]bool, h domain.Hypothesis, p domain.Params) (float64, error) {
	if h.IsNoNorm() {
		n := 0
		for pos := range sanctioned {
			if pos >= 0 && pos <= len(path) {
				n++
			}
		}
		return math.Pow(1-p.Random, float64(len(path)-n)) * math.Pow(p.Random, float64(n)), nil
	}

	rule, err := norm.For(h)
	if err != nil {
		return 0, err
	}
	violations := rule.Violations(path)

	likelihood := 1.0
	for i := range path {
		punished := sanctioned[i+1]
		switch {
		case violations[i] && punished:
			likelihood *= p.Random + (1-p.Random)*p.Detect*p.Sanction
		case violations[i]:
			likelihood *= (1 - p.Detect*p.Sanction) * (1 - p.Random)
		case punished:
			likelihood *= p.Random
		default:
			likelihood *= 1 - p.Random
		}
	}
	return likelihood, nil
}

// Plans returns the probability of observing path as part of a plan for the
// corpus goal if h were the norm in force.
//
// All plans are assumed equally likely. A compliant agent only follows plans
// that do not breach the norm; with probability p.NonCompliance it ignores the
// norm. It fails with a *domain.NoExplanationError when no plan contains path.
func Plans(c *corpus.Corpus, path domain.Path, h domain.Hypothesis, p domain.Params) (float64, error) {
	consistent := c.Consistent(path)
	if len(consistent) == 0 {
		return 0, &domain.NoExplanationError{Path: path, Goal: c.Goal()}
	}
	baseline := float64(len(consistent)) / float64(c.Len())
	if h.IsNoNorm() {
		return baseline, nil
	}

	rule, err := norm.For(h)
	if err != nil {
		return 0, err
	}

	compliant := countCompliant(rule, c.Paths())
	if compliant == 0 {
		return p.NonCompliance * baseline, nil
	}
	compliantConsistent := countCompliant(rule, consistent)
	return (1-p.NonCompliance)*float64(compliantConsistent)/float64(compliant) + p.NonCompliance*baseline, nil
}

func countCompliant(rule norm.Rule, paths []domain.Path) int {
	n := 0
	for _, path := range paths {
		if !rule.Breaches(path) {
			n++
		}
	}
	return n
}
