package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/normsuite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlansCommand(t *testing.T) {
	out, err := run(t, "plans", "testdata/corridor.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a b d\na b e d\na c e d\n", out)
}

func TestInferCommand_JSON(t *testing.T) {
	out, err := run(t, "infer", "testdata/corridor.yaml", "--format", "json", "--top", "1", "--trace", "a b d")
	require.NoError(t, err)

	var report normsuite.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "corridor", report.Name)
	assert.Equal(t, 2, report.Observations)
	assert.Equal(t, 1, report.Requested)
}

func TestGraphCommand(t *testing.T) {
	out, err := run(t, "graph", "testdata/corridor.yaml", "--format", "dot", "--trace", "a c ! e d")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph actions {")
	assert.Contains(t, out, `"c" [shape=box, style=filled, fillcolor="#ffcdd2"];`)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "testdata/corridor.yaml", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "3 plan(s), 4 hypotheses, 1 trace(s)")
	assert.Contains(t, out, "Scenario is valid!")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "normsuite version "+strings.TrimSpace(normsuite.Version))
}
