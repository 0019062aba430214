package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokens(t *testing.T) {
	t.Run("Trailing Marker", func(t *testing.T) {
		trace, err := ParseTokens([]string{"a", "b", "d", "!"})
		require.NoError(t, err)
		assert.Equal(t, Path{"a", "b", "d"}, trace.Path())
		assert.Equal(t, map[int]bool{3: true}, trace.SanctionedPositions())
	})

	t.Run("Consecutive Markers Collapse", func(t *testing.T) {
		trace, err := ParseTokens([]string{"a", "!", "!", "b"})
		require.NoError(t, err)
		assert.Equal(t, Path{"a", "b"}, trace.Path())
		assert.Equal(t, map[int]bool{1: true}, trace.SanctionedPositions())
	})

	t.Run("Interleaved Markers", func(t *testing.T) {
		trace, err := ParseTraceString("a ! b c !")
		require.NoError(t, err)
		assert.Equal(t, map[int]bool{1: true, 3: true}, trace.SanctionedPositions())
		assert.Equal(t, "a ! b c !", trace.String())
	})

	t.Run("Leading Marker", func(t *testing.T) {
		_, err := ParseTokens([]string{"!", "a"})
		assert.ErrorIs(t, err, ErrMalformedTrace)
	})

	t.Run("Empty", func(t *testing.T) {
		trace, err := ParseTokens(nil)
		require.NoError(t, err)
		assert.Empty(t, trace.Path())
		assert.Empty(t, trace.SanctionedPositions())
	})
}

func TestActions(t *testing.T) {
	actions := []Action{NewAction("a", "b"), NewAction("a", "c", "e"), NewAction("e", "d")}

	assert.Equal(t, []Node{"a", "b", "c", "e", "d"}, Nodes(actions))

	succ := Successors(actions)
	assert.True(t, succ["a"]["b"])
	assert.True(t, succ["c"]["e"])
	assert.False(t, succ["a"]["e"])

	assert.Error(t, NewAction("a").Validate())
	assert.Error(t, NewAction("a", SanctionMarker).Validate())
	assert.NoError(t, NewAction("a", "b").Validate())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("a -> c->e")
	require.NoError(t, err)
	assert.Equal(t, NewAction("a", "c", "e"), a)
	assert.Equal(t, "a->c->e", a.String())

	_, err = ParseAction("a")
	assert.Error(t, err)
	_, err = ParseAction("a->->b")
	assert.Error(t, err)

	for _, bad := range []string{"loading dock->b", "a->none", "a->!", "a\tb->c"} {
		_, err = ParseAction(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestValidateNode(t *testing.T) {
	for _, ok := range []Node{"a", "dock-7", "not", "next", "never"} {
		assert.NoError(t, ValidateNode(ok), ok)
	}
	for _, bad := range []Node{"", "loading dock", "a->b", SanctionMarker, "none"} {
		assert.Error(t, ValidateNode(bad), bad)
	}
}
