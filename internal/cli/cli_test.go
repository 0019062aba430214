package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/internal/testutils"
	"github.com/aretw0/normsuite/pkg/domain"
)

const corridorYAML = `name: corridor
goal: {start: a, target: d}
actions: [a->b, b->e, b->c, b->d, a->f, a->c->e, e->d]
hypotheses: [never c, never b]
traces:
  - a c ! e d
  - a x d
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_File(t *testing.T) {
	path := writeScenario(t, "corridor.yaml", corridorYAML)

	sc, err := LoadScenario(context.Background(), "", path)
	require.NoError(t, err)
	assert.Equal(t, "corridor", sc.Name)
	assert.Len(t, sc.Traces, 2)
}

func TestLoadScenario_Repository(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, map[string]string{
		"corridor.md": "---\n" + corridorYAML + "---\n- a b d\n",
	})

	sc, err := LoadScenario(context.Background(), dir, "corridor")
	require.NoError(t, err)
	assert.Equal(t, []string{"a c ! e d", "a x d", "a b d"}, sc.Traces)

	_, err = LoadScenario(context.Background(), dir, "missing")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeScenario(t, "corridor.yaml", corridorYAML)
	sc, err := LoadScenario(context.Background(), "", path)
	require.NoError(t, err)

	res, err := Validate(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Plans)
	assert.Equal(t, 3, res.Hypotheses)
	assert.Equal(t, 2, res.Traces)
	assert.Equal(t, []string{"a x d"}, res.Unexplained)
	assert.False(t, res.Valid())

	var buf bytes.Buffer
	PrintValidation(&buf, res)
	assert.Contains(t, buf.String(), `trace "a x d" cannot be explained`)
}

func TestValidate_UnreachableGoal(t *testing.T) {
	path := writeScenario(t, "bad.yaml", "goal: {start: a, target: z}\nactions: [a->b]\n")
	sc, err := LoadScenario(context.Background(), "", path)
	require.NoError(t, err)

	_, err = Validate(context.Background(), sc)
	assert.ErrorIs(t, err, domain.ErrNoPlan)
}

func TestWriteReport(t *testing.T) {
	path := writeScenario(t, "corridor.yaml", corridorYAML)
	sc, err := LoadScenario(context.Background(), "", path)
	require.NoError(t, err)
	report, err := normsuite.Infer(context.Background(), sc)
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, report, FormatJSON))
		var decoded normsuite.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report.Top, decoded.Top)
	})

	t.Run("auto is text off a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, report, FormatAuto))
		assert.Contains(t, buf.String(), "goal: a -> d")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, report, FormatMarkdown))
		assert.Contains(t, buf.String(), "# corridor")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, WriteReport(&bytes.Buffer{}, report, "xml"))
	})
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("debug")
	assert.NoError(t, err)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
