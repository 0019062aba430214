package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleYAML = `
name: corridor
goal: {start: a, target: d}
actions: [a->b, b->e, b->c, b->d, a->f, a->c->e, e->d]
hypotheses: [never c, a next b]
prior:
  eventually e: 0.2
params:
  p_random: 0.02
traces:
  - a c e d
  - a b d !
top: 3
`

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleYAML), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "corridor", s.Name)
	assert.Equal(t, domain.Goal{Start: "a", Target: "d"}, s.Goal)
	assert.Len(t, s.Actions, 7)
	assert.Equal(t, 3, s.Top)

	// Unset parameters keep their defaults.
	assert.Equal(t, 0.02, s.Params.Random)
	assert.Equal(t, 0.5, s.Params.Detect)

	m, err := s.Model()
	require.NoError(t, err)
	assert.Len(t, m.Actions, 7)
	assert.Len(t, m.Prior, 4)
	assert.Equal(t, 0.05, m.Prior[domain.Unconditional(domain.ModalityNever, "c")])
	assert.Equal(t, 0.2, m.Prior[domain.Unconditional(domain.ModalityEventually, "e")])
	assert.Equal(t, 1.0, m.Prior[domain.NoNorm()])

	traces, err := s.ParseTraces()
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.True(t, traces[1][2].Sanctioned)

	assert.NoError(t, s.Validate())
}

func TestLoad_JSON(t *testing.T) {
	raw := map[string]any{
		"goal":      map[string]string{"start": "a", "target": "d"},
		"actions":   []string{"a->b", "b->d"},
		"enumerate": true,
		"traces":    []string{"a b d"},
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "small.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "small", s.Name, "name defaults to the file name")
	assert.Equal(t, DefaultTop, s.Top)

	m, err := s.Model()
	require.NoError(t, err)
	// 3 nodes: 6 unconditional, 18 conditional, 2 edges with next/not-next, baseline.
	assert.Len(t, m.Prior, 6+18+4+1)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDecode_WeakTypes(t *testing.T) {
	s, err := Decode(map[string]any{
		"goal":       map[string]any{"start": "a", "target": "d"},
		"actions":    []any{"a->b", "b->d"},
		"hypotheses": "never c",
		"mass":       "0.1",
		"params": map[string]any{
			"p_sanction": json.Number("0.3"),
			"p_detect":   "0.6",
		},
		"traces": []any{"a b d !"},
		"top":    "2",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"never c"}, s.Hypotheses)
	assert.Equal(t, 0.1, s.Mass)
	assert.Equal(t, 0.3, s.Params.Sanction)
	assert.Equal(t, 0.6, s.Params.Detect)
	assert.Equal(t, 0.01, s.Params.Random)
	assert.Equal(t, 2, s.Top)

	m, err := s.Model()
	require.NoError(t, err)
	assert.Equal(t, 0.1, m.Prior[domain.Unconditional(domain.ModalityNever, "c")])
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		mut  func(s *Scenario)
	}{
		{"Bad Action", func(s *Scenario) { s.Actions = append(s.Actions, "x") }},
		{"No Goal", func(s *Scenario) { s.Goal = domain.Goal{} }},
		{"Bad Hypothesis", func(s *Scenario) { s.Hypotheses = []string{"maybe c"} }},
		{"Bad Prior", func(s *Scenario) { s.Prior = map[string]float64{"c next": 1} }},
		{"Bad Params", func(s *Scenario) { s.Params.Random = 1.5 }},
		{"Bad Trace", func(s *Scenario) { s.Traces = []string{"! a"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(exampleYAML), "yaml")
			require.NoError(t, err)
			tt.mut(s)
			assert.Error(t, s.Validate())
		})
	}
}
