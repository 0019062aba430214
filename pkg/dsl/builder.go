package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/normsuite/pkg/domain"
)

// Model is the output of a Builder: everything needed to create a suite.
type Model struct {
	Goal    domain.Goal
	Actions []domain.Action
	Prior   domain.Masses
}

// Builder manages the model construction.
type Builder struct {
	actions   []domain.Action
	seen      map[string]bool
	goal      *domain.Goal
	prior     domain.Masses
	enumerate *float64
	errs      []error
}

// New creates a new model builder.
func New() *Builder {
	return &Builder{
		seen:  make(map[string]bool),
		prior: make(domain.Masses),
	}
}

// Action adds an action traversing the given nodes. Duplicates are ignored.
func (b *Builder) Action(nodes ...domain.Node) *Builder {
	a := domain.NewAction(nodes...)
	if err := a.Validate(); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if !b.seen[a.String()] {
		b.seen[a.String()] = true
		b.actions = append(b.actions, a)
	}
	return b
}

// Node returns a builder adding single-step actions out of id.
func (b *Builder) Node(id domain.Node) *NodeBuilder {
	return &NodeBuilder{id: id, builder: b}
}

// Goal sets the inferred goal.
func (b *Builder) Goal(start, target domain.Node) *Builder {
	b.goal = &domain.Goal{Start: start, Target: target}
	return b
}

// Norm adds a hypothesis with an explicit prior mass.
func (b *Builder) Norm(h domain.Hypothesis, mass float64) *Builder {
	if err := h.Validate(); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.prior[h] = mass
	return b
}

// Norms adds hypotheses parsed from their text form with the same prior mass.
func (b *Builder) Norms(mass float64, texts ...string) *Builder {
	for _, s := range texts {
		h, err := domain.ParseHypothesis(s)
		if err != nil {
			b.errs = append(b.errs, err)
			continue
		}
		b.prior[h] = mass
	}
	return b
}

// Enumerate requests the full hypothesis space over the action graph, each
// hypothesis with the given prior mass. Explicit norms take precedence.
func (b *Builder) Enumerate(mass float64) *Builder {
	b.enumerate = &mass
	return b
}

// Build validates and returns the model.
func (b *Builder) Build() (*Model, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("invalid model: %w", errors.Join(b.errs...))
	}
	if b.goal == nil {
		return nil, errors.New("invalid model: goal is not set")
	}
	if len(b.actions) == 0 {
		return nil, errors.New("invalid model: no actions")
	}

	prior := make(domain.Masses)
	if b.enumerate != nil {
		prior = Enumerate(b.actions, *b.enumerate)
	}
	for h, m := range b.prior {
		prior[h] = m
	}
	if _, ok := prior[domain.NoNorm()]; !ok {
		prior[domain.NoNorm()] = 1
	}

	return &Model{
		Goal:    *b.goal,
		Actions: append([]domain.Action(nil), b.actions...),
		Prior:   prior,
	}, nil
}

// NodeBuilder provides a fluent API for the edges leaving one node.
type NodeBuilder struct {
	id      domain.Node
	builder *Builder
}

// To adds the action id->target.
func (n *NodeBuilder) To(target domain.Node) *NodeBuilder {
	n.builder.Action(n.id, target)
	return n
}

// Via adds the multi-step action id->hops...
func (n *NodeBuilder) Via(hops ...domain.Node) *NodeBuilder {
	n.builder.Action(append([]domain.Node{n.id}, hops...)...)
	return n
}
