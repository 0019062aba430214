// Package ranking orders hypotheses by mass and selects the most probable.
package ranking

import (
	"sort"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Sort returns a copy of items ordered by descending mass. Equal masses are
// ordered by the hypothesis text so reports are deterministic.
func Sort(items []domain.Scored) []domain.Scored {
	out := append([]domain.Scored(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mass != out[j].Mass {
			return out[i].Mass > out[j].Mass
		}
		return out[i].Hypothesis.String() < out[j].Hypothesis.String()
	})
	return out
}

// Top returns the n highest ranked items, extended with every item whose mass
// equals the mass of the n-th one. The second result is the effective count,
// which may exceed n.
func Top(items []domain.Scored, n int) ([]domain.Scored, int) {
	if n <= 0 || len(items) == 0 {
		return []domain.Scored{}, 0
	}
	sorted := Sort(items)
	if n >= len(sorted) {
		return sorted, len(sorted)
	}
	cutoff := sorted[n-1].Mass
	end := n
	for end < len(sorted) && sorted[end].Mass == cutoff {
		end++
	}
	return sorted[:end], end
}
