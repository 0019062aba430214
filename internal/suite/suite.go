// Package suite stores the odds-ratio mass of every hypothesis.
//
// Masses are relative odds against the baseline hypothesis, not
// probabilities. They are never renormalized while evidence is applied.
package suite

import (
	"fmt"
	"math"
	"sort"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Suite is the hypothesis to mass mapping plus the prior it started from.
//
// Thread Safety: Not safe for concurrent use. Callers serialize access.
type Suite struct {
	prior  domain.Masses
	masses domain.Masses
}

// New creates a suite from a prior. Every hypothesis must be well formed and
// every mass finite and non-negative. The baseline hypothesis is added with
// mass 1 when the prior omits it.
func New(prior domain.Masses) (*Suite, error) {
	if err := validate(prior); err != nil {
		return nil, err
	}
	p := prior.Clone()
	if _, ok := p[domain.NoNorm()]; !ok {
		p[domain.NoNorm()] = 1
	}
	return &Suite{prior: p, masses: p.Clone()}, nil
}

func validate(m domain.Masses) error {
	for h, v := range m {
		if err := h.Validate(); err != nil {
			return err
		}
		if err := checkFactor(v); err != nil {
			return fmt.Errorf("invalid mass for %s: %w", h, err)
		}
	}
	return nil
}

func checkFactor(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("value %v is not a finite non-negative number", v)
	}
	return nil
}

// Mult multiplies the mass of h in place.
func (s *Suite) Mult(h domain.Hypothesis, factor float64) error {
	v, ok := s.masses[h]
	if !ok {
		return &domain.HypothesisError{Hypothesis: h, Reason: "not part of the suite"}
	}
	if err := checkFactor(factor); err != nil {
		return fmt.Errorf("invalid factor for %s: %w", h, err)
	}
	s.masses[h] = v * factor
	return nil
}

// Mass returns the current mass of h.
func (s *Suite) Mass(h domain.Hypothesis) (float64, bool) {
	v, ok := s.masses[h]
	return v, ok
}

// Len returns the number of hypotheses, baseline included.
func (s *Suite) Len() int {
	return len(s.masses)
}

// Hypotheses returns every hypothesis in a stable order.
func (s *Suite) Hypotheses() []domain.Hypothesis {
	out := make([]domain.Hypothesis, 0, len(s.masses))
	for h := range s.masses {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Items returns every hypothesis with its current mass, in the order of Hypotheses.
func (s *Suite) Items() []domain.Scored {
	hs := s.Hypotheses()
	out := make([]domain.Scored, len(hs))
	for i, h := range hs {
		out[i] = domain.Scored{Hypothesis: h, Mass: s.masses[h]}
	}
	return out
}

// Masses returns a copy of the current masses.
func (s *Suite) Masses() domain.Masses {
	return s.masses.Clone()
}

// Prior returns a copy of the prior.
func (s *Suite) Prior() domain.Masses {
	return s.prior.Clone()
}

// Normalize is intentionally a no-op: masses stay relative odds.
// Use Normalized for a probability view.
func (s *Suite) Normalize() {}

// Normalized returns the masses scaled to sum to 1. If the total is zero the
// result is all zeros.
func (s *Suite) Normalized() domain.Masses {
	total := 0.0
	for _, v := range s.masses {
		total += v
	}
	out := make(domain.Masses, len(s.masses))
	for h, v := range s.masses {
		if total > 0 {
			out[h] = v / total
		} else {
			out[h] = 0
		}
	}
	return out
}

// Reset restores the prior masses.
func (s *Suite) Reset() {
	s.masses = s.prior.Clone()
}

// Restore replaces the current masses. The hypotheses must match the prior exactly.
func (s *Suite) Restore(masses domain.Masses) error {
	if err := validate(masses); err != nil {
		return err
	}
	if len(masses) != len(s.prior) {
		return fmt.Errorf("restored masses hold %d hypotheses, suite has %d", len(masses), len(s.prior))
	}
	for h := range masses {
		if _, ok := s.prior[h]; !ok {
			return &domain.HypothesisError{Hypothesis: h, Reason: "not part of the suite"}
		}
	}
	s.masses = masses.Clone()
	return nil
}
