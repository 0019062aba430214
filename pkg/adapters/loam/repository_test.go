package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/normsuite/internal/testutils"
	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = `---
goal:
  start: a
  target: d
actions: [a->b, b->e, b->c, b->d, a->f, a->c->e, e->d]
hypotheses: [never c, a next b]
mass: 0.1
params:
  p_random: 0.02
top: 2
traces:
  - a b d
---
# Observations

The agent was watched for two days.
Nobody intervened on the second.

- a c ! e d
- ` + "`a b d !`" + `
`

func TestRepository_Get(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{"corridor.md": corridor})

	r := New(loam.NewTypedRepository[ScenarioMetadata](repo))
	s, err := r.Get(context.Background(), "corridor")
	require.NoError(t, err)

	assert.Equal(t, "corridor", s.Name)
	assert.Equal(t, domain.Goal{Start: "a", Target: "d"}, s.Goal)
	assert.Equal(t, []string{"a b d", "a c ! e d", "a b d !"}, s.Traces)
	assert.Equal(t, 0.1, s.Mass)
	assert.Equal(t, 2, s.Top)
	assert.Equal(t, 0.02, s.Params.Random)
	assert.Equal(t, 0.5, s.Params.Detect)

	m, err := s.Model()
	require.NoError(t, err)
	assert.Len(t, m.Actions, 7)
	assert.Equal(t, 0.1, m.Prior[domain.Unconditional(domain.ModalityNever, "c")])
}

func TestRepository_List(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{
		"corridor.md": corridor,
		"small.json":  `{"goal": {"start": "a", "target": "b"}, "actions": ["a->b"]}`,
	})

	r := New(loam.NewTypedRepository[ScenarioMetadata](repo))
	ids, err := r.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"corridor", "small"}, ids)
}

func TestRepository_List_DetectsCollisions(t *testing.T) {
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{
		"foo.md":   "---\nid: foo\n---\n",
		"foo.json": `{"id": "foo"}`,
	})

	r := New(loam.NewTypedRepository[ScenarioMetadata](repo))
	_, err := r.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestBodyTraces(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "List Items",
			body: "# Title\n\n<!-- note -->\n- a b\n* c d !\n+ `e f`\n\n",
			want: []string{"a b", "c d !", "e f"},
		},
		{
			name: "Prose Is Ignored",
			body: "# Observations\nThe agent was watched for two days.\n- a b d\n`a c`\n",
			want: []string{"a b d"},
		},
		{
			name: "Fenced Block",
			body: "Traces below.\n\n```\na b d\n\na c ! e d\n```\nDone.\n",
			want: []string{"a b d", "a c ! e d"},
		},
		{
			name: "No Traces",
			body: "Just notes.\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bodyTraces(tt.body))
		})
	}
}
