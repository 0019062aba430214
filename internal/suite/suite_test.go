package suite

import (
	"math"
	"testing"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	neverC  = domain.Unconditional(domain.ModalityNever, "c")
	eventD  = domain.Unconditional(domain.ModalityEventually, "d")
	unknown = domain.Unconditional(domain.ModalityNever, "z")
)

func TestNew(t *testing.T) {
	s, err := New(domain.Masses{neverC: 0.05, eventD: 0.05})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len(), "baseline is added")
	m, ok := s.Mass(domain.NoNorm())
	assert.True(t, ok)
	assert.Equal(t, 1.0, m)

	_, err = New(domain.Masses{domain.Unconditional(domain.ModalityNext, "c"): 1})
	assert.ErrorIs(t, err, domain.ErrInvalidHypothesis)

	_, err = New(domain.Masses{neverC: -1})
	assert.Error(t, err)

	_, err = New(domain.Masses{neverC: math.NaN()})
	assert.Error(t, err)
}

func TestNew_KeepsExplicitBaseline(t *testing.T) {
	s, err := New(domain.Masses{domain.NoNorm(): 2, neverC: 1})
	require.NoError(t, err)
	m, _ := s.Mass(domain.NoNorm())
	assert.Equal(t, 2.0, m)
}

func TestMult(t *testing.T) {
	s, err := New(domain.UniformPrior(neverC))
	require.NoError(t, err)

	require.NoError(t, s.Mult(neverC, 3))
	require.NoError(t, s.Mult(neverC, 0.5))
	m, _ := s.Mass(neverC)
	assert.InDelta(t, 1.5, m, 1e-12)

	assert.ErrorIs(t, s.Mult(unknown, 2), domain.ErrInvalidHypothesis)
	assert.Error(t, s.Mult(neverC, math.Inf(1)))
	assert.Error(t, s.Mult(neverC, -2))

	m, _ = s.Mass(neverC)
	assert.InDelta(t, 1.5, m, 1e-12, "rejected factors leave the mass untouched")
}

func TestNormalize(t *testing.T) {
	s, err := New(domain.Masses{neverC: 3})
	require.NoError(t, err)

	s.Normalize()
	m, _ := s.Mass(neverC)
	assert.Equal(t, 3.0, m, "Normalize must not rescale")

	n := s.Normalized()
	assert.InDelta(t, 0.75, n[neverC], 1e-12)
	assert.InDelta(t, 0.25, n[domain.NoNorm()], 1e-12)
}

func TestNormalized_ZeroTotal(t *testing.T) {
	s, err := New(domain.Masses{domain.NoNorm(): 0, neverC: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.Masses{domain.NoNorm(): 0, neverC: 0}, s.Normalized())
}

func TestResetAndRestore(t *testing.T) {
	s, err := New(domain.Masses{neverC: 0.05, eventD: 0.05})
	require.NoError(t, err)
	require.NoError(t, s.Mult(neverC, 10))

	s.Reset()
	m, _ := s.Mass(neverC)
	assert.Equal(t, 0.05, m)

	restored := s.Masses()
	restored[eventD] = 7
	require.NoError(t, s.Restore(restored))
	m, _ = s.Mass(eventD)
	assert.Equal(t, 7.0, m)

	assert.Error(t, s.Restore(domain.Masses{neverC: 1}))
	assert.ErrorIs(t, s.Restore(domain.Masses{domain.NoNorm(): 1, neverC: 1, unknown: 1}), domain.ErrInvalidHypothesis)
}

func TestItems_StableOrder(t *testing.T) {
	s, err := New(domain.Masses{neverC: 2, eventD: 1})
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, eventD, items[0].Hypothesis)
	assert.Equal(t, neverC, items[1].Hypothesis)
	assert.Equal(t, domain.NoNorm(), items[2].Hypothesis)
}
