package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	envCfg := config.Env{DataDir: t.TempDir(), Steps: config.DefaultSteps, LogLevel: "error"}
	cmd := newRootCmd(envCfg)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// saveRun stores a constant-slope run in dir and returns its metadata.
func saveRun(t *testing.T, dir string) storage.RunMetadata {
	t.Helper()
	_, err := execute(t, "--data", dir, "euler", "constant", "--param", "c=2", "--tf", "1", "--steps", "11")
	require.NoError(t, err)

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return runs[0]
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestParseRows(t *testing.T) {
	rows, err := parseRows(" 1, 2 ; 3,4 ;")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, rows)

	for _, bad := range []string{"", ";", "1,x"} {
		_, err := parseRows(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestParseParams(t *testing.T) {
	p, err := parseParams(map[string]string{"k": "0.5"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, p["k"])

	_, err = parseParams(map[string]string{"k": "fast"})
	assert.Error(t, err)
}

func TestFormatState(t *testing.T) {
	assert.Equal(t, "-", formatState(nil))
	assert.Equal(t, "[1 0.5]", formatState([]float64{1, 0.5}))
}

func TestSingularCommand(t *testing.T) {
	out, err := execute(t, "singular", "--preset", "duplicate_rows")
	require.NoError(t, err)
	assert.Contains(t, out, "singular")
	assert.NotContains(t, out, "not singular")

	out, err = execute(t, "singular", "--rows", "2,0;0,3")
	require.NoError(t, err)
	assert.Contains(t, out, "not singular")
}

func TestSingularCommandTrace(t *testing.T) {
	out, err := execute(t, "singular", "--preset", "duplicate_rows", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "row 0")

	out, err = execute(t, "singular", "--rows", "2,0;0,3")
	require.NoError(t, err)
	assert.NotContains(t, out, "row 0", "trace must not carry over between invocations")
}

func TestSingularCommandConfig(t *testing.T) {
	path := writeFile(t, "matrix.yaml", `
matrix:
  rows:
    - [1, 2]
    - [2, 4]
  trace: true
`)

	out, err := execute(t, "singular", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "row 0", "trace enabled from the config file")
	assert.NotContains(t, out, "not singular")

	out, err = execute(t, "singular", "--config", path, "--trace=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "row 0", "flag overrides the config file")

	ragged := writeFile(t, "ragged.yaml", "matrix:\n  rows:\n    - [1, 2]\n    - [3]\n")
	_, err = execute(t, "singular", "--config", ragged)
	assert.ErrorIs(t, err, config.ErrRaggedRows)
}

func TestSingularCommandErrors(t *testing.T) {
	_, err := execute(t, "singular")
	assert.Error(t, err, "no matrix")

	_, err = execute(t, "singular", "--rows", "1,2,3;4,5,6")
	assert.Error(t, err, "non-square matrix")

	_, err = execute(t, "singular", "--preset", "nope")
	assert.Error(t, err, "unknown preset")
}

func TestEulerCommandSavesRun(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--data", dir, "euler", "constant", "--param", "c=2", "--tf", "1", "--steps", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "run id")
	assert.Contains(t, out, "◆", "metrics block is set off by a separator")

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "constant", run.Model)
	assert.Equal(t, 11, run.Steps)
	assert.Equal(t, 2.0, run.Params["c"])
	require.Len(t, run.Final, 1)
	assert.InDelta(t, 2, run.Final[0], 1e-9)
}

func TestEulerCommandConfigFile(t *testing.T) {
	path := writeFile(t, "ode.yaml", `
ode:
  model: decay
  tf: 2
  steps: 21
  params:
    k: 0.5
`)
	dir := t.TempDir()
	_, err := execute(t, "--data", dir, "euler", "--config", path, "--steps", "11")
	require.NoError(t, err)

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "decay", run.Model)
	assert.Equal(t, 2.0, run.Tf, "tf from the config file")
	assert.Equal(t, 11, run.Steps, "steps flag overrides the config file")
	assert.Equal(t, 0.5, run.Params["k"])
}

func TestEulerCommandPresetMergesParams(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--data", dir, "euler", "pendulum", "--preset", "damped", "--param", "length=2", "--steps", "101")
	require.NoError(t, err)

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, 20.0, run.Tf)
	assert.Equal(t, 101, run.Steps)
	assert.Equal(t, 0.5, run.Params["damping"], "preset params kept")
	assert.Equal(t, 2.0, run.Params["length"], "flag params merged")
	assert.Equal(t, []float64{1, 0}, run.Y0)

	_, err = execute(t, "euler", "pendulum", "--preset", "nope", "--no-save")
	assert.Error(t, err)
}

func TestEulerCommandDivergingPlot(t *testing.T) {
	var out string
	require.NotPanics(t, func() {
		var err error
		out, err = execute(t, "euler", "decay", "--param", "k=-1e200", "--steps", "5", "--plot", "--no-save")
		require.NoError(t, err)
	})
	assert.Contains(t, out, "non-finite")
}

func TestEulerCommandNonFiniteInitialState(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--data", dir, "euler", "decay", "--y0=+Inf", "--steps", "5")
	require.NoError(t, err)

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].Y0)
	assert.Equal(t, 1.0, runs[0].Params["k"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	out, err := execute(t, "--data", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)
}

func TestEulerCommandErrors(t *testing.T) {
	_, err := execute(t, "euler", "nope", "--no-save")
	assert.Error(t, err, "unknown model")

	_, err = execute(t, "euler", "decay", "--steps", "1", "--no-save")
	assert.Error(t, err, "steps < 2")

	_, err = execute(t, "euler", "decay", "--param", "x=1", "--no-save")
	assert.Error(t, err, "unknown param")
}

func TestConvergeCommand(t *testing.T) {
	out, err := execute(t, "converge", "decay", "--levels", "11,101")
	require.NoError(t, err)
	assert.Contains(t, out, "STEPS")
	assert.Contains(t, out, "101")

	_, err = execute(t, "converge", "decay", "--levels", "1")
	assert.Error(t, err, "steps < 2")
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--data", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no runs found")

	run := saveRun(t, dir)
	out, err = execute(t, "--data", dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "MODEL")
	assert.Contains(t, out, run.ID)
	assert.Contains(t, out, "constant")
}

func TestPlotCommand(t *testing.T) {
	dir := t.TempDir()
	run := saveRun(t, dir)

	out, err := execute(t, "--data", dir, "plot", run.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "run: "+run.ID)
	assert.Contains(t, out, "model: constant")
	assert.Contains(t, out, "samples: 11")

	_, err = execute(t, "--data", dir, "plot", "missing")
	assert.Error(t, err)
}

func TestExportCSVCommand(t *testing.T) {
	dir := t.TempDir()
	run := saveRun(t, dir)

	out, err := execute(t, "--data", dir, "export-csv", run.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "time,y0\n")
	assert.Contains(t, out, "1.000000,2.000000")

	_, err = execute(t, "--data", dir, "export-csv", "missing")
	assert.Error(t, err)
}

func TestExportJSONCommand(t *testing.T) {
	dir := t.TempDir()
	run := saveRun(t, dir)

	out, err := execute(t, "--data", dir, "export-json", run.ID)
	require.NoError(t, err)

	var data storage.ExportData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, run.ID, data.ID)
	assert.Len(t, data.Times, 11)

	path := filepath.Join(t.TempDir(), "run.json")
	out, err = execute(t, "--data", dir, "export-json", run.ID, "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))

	missing := filepath.Join(t.TempDir(), "missing.json")
	_, err = execute(t, "--data", dir, "export-json", "missing", "--out", missing)
	assert.Error(t, err)
	assert.NoFileExists(t, missing)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "pendulum")
	require.NoError(t, err)
	assert.Contains(t, out, "presets for pendulum")
	assert.Contains(t, out, "damped")

	out, err = execute(t, "presets", "matrix")
	require.NoError(t, err)
	assert.Contains(t, out, "duplicate_rows")

	out, err = execute(t, "presets", "lorenz")
	require.NoError(t, err)
	assert.Contains(t, out, "no presets for: lorenz")
}

func TestModelsCommand(t *testing.T) {
	out, err := execute(t, "models")
	require.NoError(t, err)
	assert.Contains(t, out, "pendulum")
	assert.Contains(t, out, "order 2")
	assert.Contains(t, out, "order 1")
	assert.Contains(t, out, "damping=")
}
