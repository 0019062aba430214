package norm

import (
	"errors"
	"testing"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(indices ...int) map[int]bool {
	out := map[int]bool{}
	for _, i := range indices {
		out[i] = true
	}
	return out
}

func TestRule_Violations(t *testing.T) {
	tests := []struct {
		name string
		h    domain.Hypothesis
		path domain.Path
		want map[int]bool
	}{
		{"eventually satisfied", domain.Unconditional(domain.ModalityEventually, "d"), domain.Path{"a", "b", "d"}, set()},
		{"eventually missing", domain.Unconditional(domain.ModalityEventually, "c"), domain.Path{"a", "b", "d"}, set(2)},
		{"never absent", domain.Unconditional(domain.ModalityNever, "c"), domain.Path{"a", "b", "d"}, set()},
		{"never repeated", domain.Unconditional(domain.ModalityNever, "a"), domain.Path{"a", "b", "a"}, set(0, 2)},
		{"next followed", domain.Conditional("a", domain.ModalityNext, "b"), domain.Path{"a", "b", "d"}, set()},
		{"next broken", domain.Conditional("a", domain.ModalityNext, "c"), domain.Path{"a", "b", "d"}, set(1)},
		{"next context last", domain.Conditional("d", domain.ModalityNext, "a"), domain.Path{"a", "b", "d"}, set()},
		{"not-next broken", domain.Conditional("a", domain.ModalityNotNext, "b"), domain.Path{"a", "b", "d"}, set(1)},
		{"not-next fine", domain.Conditional("a", domain.ModalityNotNext, "c"), domain.Path{"a", "b", "d"}, set()},
		{"eventually after satisfied", domain.Conditional("a", domain.ModalityEventually, "d"), domain.Path{"a", "b", "d"}, set()},
		{"eventually after missing", domain.Conditional("b", domain.ModalityEventually, "c"), domain.Path{"a", "b", "d"}, set(2)},
		{"eventually after uses last context", domain.Conditional("a", domain.ModalityEventually, "b"), domain.Path{"a", "b", "a", "d"}, set(3)},
		{"eventually after ignores final context", domain.Conditional("d", domain.ModalityEventually, "c"), domain.Path{"a", "b", "d"}, set()},
		{"never after suffix relative", domain.Conditional("a", domain.ModalityNever, "d"), domain.Path{"a", "b", "d"}, set(1)},
		{"never after no context", domain.Conditional("x", domain.ModalityNever, "d"), domain.Path{"a", "b", "d"}, set()},
		{"never after node before context", domain.Conditional("b", domain.ModalityNever, "a"), domain.Path{"a", "b", "d"}, set()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := For(tt.h)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule.Violations(tt.path))
			assert.Equal(t, len(tt.want) > 0, rule.Breaches(tt.path))
		})
	}
}

func TestRule_EmptyPath(t *testing.T) {
	rule, err := For(domain.Unconditional(domain.ModalityEventually, "a"))
	require.NoError(t, err)
	assert.Empty(t, rule.Violations(nil))
	assert.True(t, rule.Breaches(nil))

	rule, err = For(domain.Unconditional(domain.ModalityNever, "a"))
	require.NoError(t, err)
	assert.False(t, rule.Breaches(nil))
}

func TestFor_Invalid(t *testing.T) {
	_, err := For(domain.NoNorm())
	assert.True(t, errors.Is(err, domain.ErrInvalidHypothesis))

	_, err = For(domain.Unconditional(domain.ModalityNext, "a"))
	assert.True(t, errors.Is(err, domain.ErrInvalidHypothesis))

	_, err = For(domain.Hypothesis{Kind: domain.KindConditional, Context: "a", Modality: "sometimes", Node: "b"})
	assert.True(t, errors.Is(err, domain.ErrInvalidHypothesis))
}
