package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fairalloc/config"
	"github.com/katalvlaran/fairalloc/instance"
	"github.com/katalvlaran/fairalloc/pareto"
)

const twoAgents = `name,a-valuation,b-valuation,c-valuation,d-valuation,a-allocation,b-allocation,c-allocation,d-allocation
agent1,10,100,80,-100,0,0.3,1,0
agent2,20,100,-40,10,1,0.7,0,1
`

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()

	return out.String(), err
}

func TestRun_CSVToText(t *testing.T) {
	out, err := execute(t, "", writeInput(t, "two.csv", twoAgents))
	require.NoError(t, err)
	assert.Equal(t, "agent1 gets {c} with value 80.\nagent2 gets {a, b, d} with value 130.\n", out)
}

func TestRun_StdinYAMLToFile(t *testing.T) {
	var src bytes.Buffer
	in, err := instance.ReadCSV(strings.NewReader(twoAgents))
	require.NoError(t, err)
	require.NoError(t, yaml.NewEncoder(&src).Encode(in))

	outPath := filepath.Join(t.TempDir(), "report.yaml")
	stdout, err := execute(t, src.String(), "--format", "yaml", "-o", outPath, "--output-format", "yaml")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var rep instance.Report
	require.NoError(t, yaml.Unmarshal(body, &rep))
	assert.True(t, rep.Complete)
	assert.InDelta(t, 210, rep.Welfare, 1e-9)
}

func TestRun_MetricsFile(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "run.prom")
	_, err := execute(t, "", writeInput(t, "two.csv", twoAgents), "--metrics-file", metricsPath)
	require.NoError(t, err)

	body, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fairalloc_pareto_probes_total")
	assert.Contains(t, string(body), `fairalloc_pareto_runs_total{outcome="done"} 1`)
}

func TestRun_ConfigFileAndEnvironment(t *testing.T) {
	input := writeInput(t, "two.csv", twoAgents)
	cfgPath := writeInput(t, "pareto.yaml", "io:\n  output_format: json\n")
	t.Setenv("PARETO_IO_INPUT", input)

	out, err := execute(t, "", "-c", cfgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n"), out)
	assert.Contains(t, out, `"complete": true`)
}

func TestRun_IterationLimitWritesPartialResult(t *testing.T) {
	out, err := execute(t, "", writeInput(t, "two.csv", twoAgents), "--max-iterations", "1")
	require.ErrorIs(t, err, pareto.ErrIterationLimit)
	assert.Equal(t, "agent1 gets {c} with value 80.\nagent2 gets {a, b, d} with value 130.\n", out)
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, "")
	assert.True(t, config.IsValidation(err), "stdin needs an explicit format: %v", err)

	_, err = execute(t, "", writeInput(t, "bad.csv", "name,a-value\nx,1\n"))
	assert.ErrorIs(t, err, instance.ErrMalformed)

	_, err = execute(t, "", writeInput(t, "two.csv", twoAgents), "--lp-tolerance", "-1")
	assert.True(t, config.IsValidation(err))

	_, err = execute(t, "", "a.csv", "b.csv")
	assert.Error(t, err)
}
