package dsl

import "github.com/aretw0/normsuite/pkg/domain"

// Enumerate builds the standard hypothesis space over the nodes of the actions:
//
//   - eventually and never for every node
//   - eventually and never for every (context, node) pair
//   - next and not-next for every (context, node) where node directly follows
//     context in some action
//
// Every hypothesis gets the given prior mass. The baseline gets mass 1.
func Enumerate(actions []domain.Action, mass float64) domain.Masses {
	nodes := domain.Nodes(actions)
	successors := domain.Successors(actions)

	prior := domain.Masses{domain.NoNorm(): 1}
	for _, n := range nodes {
		prior[domain.Unconditional(domain.ModalityEventually, n)] = mass
		prior[domain.Unconditional(domain.ModalityNever, n)] = mass
	}
	for _, c := range nodes {
		for _, n := range nodes {
			prior[domain.Conditional(c, domain.ModalityEventually, n)] = mass
			prior[domain.Conditional(c, domain.ModalityNever, n)] = mass
			if successors[c][n] {
				prior[domain.Conditional(c, domain.ModalityNext, n)] = mass
				prior[domain.Conditional(c, domain.ModalityNotNext, n)] = mass
			}
		}
	}
	return prior
}
