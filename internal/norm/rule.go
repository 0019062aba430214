// Package norm evaluates norm hypotheses against a single linear node path.
//
// Each modality is a small strategy with two views of the same semantics:
// Violations locates the breaching positions (used by the sanction model),
// Breaches only reports whether any breach exists (used by the plan model).
package norm

import (
	"fmt"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Rule is the evaluable form of a concrete norm hypothesis.
type Rule interface {
	// Violations returns the set of path positions at which the norm is breached.
	Violations(path domain.Path) map[int]bool
	// Breaches reports whether the norm is breached anywhere on the path.
	Breaches(path domain.Path) bool
}

type unconditionalFactory func(node domain.Node) Rule

type conditionalFactory func(context, node domain.Node) Rule

var unconditional = map[domain.Modality]unconditionalFactory{
	domain.ModalityEventually: func(node domain.Node) Rule { return eventually{node: node} },
	domain.ModalityNever:      func(node domain.Node) Rule { return never{node: node} },
}

var conditional = map[domain.Modality]conditionalFactory{
	domain.ModalityNext:       func(c, n domain.Node) Rule { return next{context: c, node: n} },
	domain.ModalityNotNext:    func(c, n domain.Node) Rule { return notNext{context: c, node: n} },
	domain.ModalityEventually: func(c, n domain.Node) Rule { return eventuallyAfter{context: c, node: n} },
	domain.ModalityNever:      func(c, n domain.Node) Rule { return neverAfter{context: c, node: n} },
}

// For returns the rule for a concrete hypothesis. NoNorm has no rule.
func For(h domain.Hypothesis) (Rule, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	switch h.Kind {
	case domain.KindUnconditional:
		if f, ok := unconditional[h.Modality]; ok {
			return f(h.Node), nil
		}
	case domain.KindConditional:
		if f, ok := conditional[h.Modality]; ok {
			return f(h.Context, h.Node), nil
		}
	case domain.KindNone:
		return nil, &domain.HypothesisError{Hypothesis: h, Reason: "the baseline hypothesis has no violation rule"}
	}
	return nil, &domain.HypothesisError{Hypothesis: h, Reason: fmt.Sprintf("no rule for modality %q", h.Modality)}
}

// eventually: the node must occur somewhere; otherwise the last position breaches.
type eventually struct{ node domain.Node }

func (r eventually) Violations(path domain.Path) map[int]bool {
	if len(path) == 0 || path.Contains(r.node) {
		return map[int]bool{}
	}
	return map[int]bool{len(path) - 1: true}
}

func (r eventually) Breaches(path domain.Path) bool {
	return !path.Contains(r.node)
}

// never: every occurrence of the node breaches independently.
type never struct{ node domain.Node }

func (r never) Violations(path domain.Path) map[int]bool {
	out := map[int]bool{}
	for i, n := range path {
		if n == r.node {
			out[i] = true
		}
	}
	return out
}

func (r never) Breaches(path domain.Path) bool {
	return path.Contains(r.node)
}

// next: whenever the context has a successor, it must be the node.
type next struct{ context, node domain.Node }

func (r next) Violations(path domain.Path) map[int]bool {
	out := map[int]bool{}
	for i := 0; i < len(path)-1; i++ {
		if path[i] == r.context && path[i+1] != r.node {
			out[i+1] = true
		}
	}
	return out
}

func (r next) Breaches(path domain.Path) bool {
	return len(r.Violations(path)) > 0
}

// notNext: the context must never be directly followed by the node.
type notNext struct{ context, node domain.Node }

func (r notNext) Violations(path domain.Path) map[int]bool {
	out := map[int]bool{}
	for i := 0; i < len(path)-1; i++ {
		if path[i] == r.context && path[i+1] == r.node {
			out[i+1] = true
		}
	}
	return out
}

func (r notNext) Breaches(path domain.Path) bool {
	return len(r.Violations(path)) > 0
}

// eventuallyAfter: after the last context occurrence (ignoring the final
// position), the node must occur strictly later.
type eventuallyAfter struct{ context, node domain.Node }

func (r eventuallyAfter) breached(path domain.Path) bool {
	last := -1
	for i := len(path) - 2; i >= 0; i-- {
		if path[i] == r.context {
			last = i
			break
		}
	}
	return last >= 0 && !path[last+1:].Contains(r.node)
}

func (r eventuallyAfter) Violations(path domain.Path) map[int]bool {
	if r.breached(path) {
		return map[int]bool{len(path) - 1: true}
	}
	return map[int]bool{}
}

func (r eventuallyAfter) Breaches(path domain.Path) bool {
	return r.breached(path)
}

// neverAfter: after the first context occurrence (ignoring the final
// position), the node must not occur. Violation indices are relative to the
// suffix that follows the context occurrence.
type neverAfter struct{ context, node domain.Node }

func (r neverAfter) suffix(path domain.Path) domain.Path {
	for i := 0; i < len(path)-1; i++ {
		if path[i] == r.context {
			return path[i+1:]
		}
	}
	return nil
}

func (r neverAfter) Violations(path domain.Path) map[int]bool {
	out := map[int]bool{}
	for i, n := range r.suffix(path) {
		if n == r.node {
			out[i] = true
		}
	}
	return out
}

func (r neverAfter) Breaches(path domain.Path) bool {
	return r.suffix(path).Contains(r.node)
}
