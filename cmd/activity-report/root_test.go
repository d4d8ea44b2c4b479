package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcli/internal/config"
	apperrors "fitcli/internal/errors"
)

const sampleFile = "../../internal/dataprocessing/testdata/dailyActivity_sample.csv"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FIT_LOGGING_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunReport(t *testing.T) {
	out := t.TempDir()

	stdout, _, err := execute(t, "--input", sampleFile, "--out", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Records:     7")
	assert.Contains(t, stdout, "Distinct id: 3")
	for _, name := range []string{
		config.AnalysisCSVFileName,
		config.WorkbookFileName,
		config.SummaryFileName,
		config.DiagnosticsFileName,
		config.MetricsFileName,
	} {
		assert.True(t, config.FileExists(filepath.Join(out, name)), name)
	}
}

func TestRunReportNoWorkbook(t *testing.T) {
	out := t.TempDir()

	stdout, _, err := execute(t, "--input", sampleFile, "--out", out, "--no-workbook")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "workbook:")
	assert.False(t, config.FileExists(filepath.Join(out, config.WorkbookFileName)))
	assert.True(t, config.FileExists(filepath.Join(out, config.AnalysisCSVFileName)))
}

func TestRunReportConfigFile(t *testing.T) {
	out := t.TempDir()
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	abs, err := filepath.Abs(sampleFile)
	require.NoError(t, err)
	content := "report:\n  input_file: " + abs + "\n  output_dir: " + out + "\n  workbook: false\ntelemetry:\n  enable_metrics: false\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0644))

	_, _, err = execute(t, "--config", cfgFile)
	require.NoError(t, err)

	assert.True(t, config.FileExists(filepath.Join(out, config.AnalysisCSVFileName)))
	assert.False(t, config.FileExists(filepath.Join(out, config.MetricsFileName)))
}

func TestRunReportSchemaMismatch(t *testing.T) {
	out := t.TempDir()
	input := filepath.Join(t.TempDir(), "dailyActivity_merged.csv")
	require.NoError(t, os.WriteFile(input, []byte("Id,ActivityDate\n1,4/12/2016\n"), 0644))

	_, stderr, err := execute(t, "--input", input, "--out", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchemaMismatch)
	assert.Contains(t, stderr, "schema mismatch")

	assert.False(t, config.FileExists(filepath.Join(out, config.AnalysisCSVFileName)))
	metrics, readErr := os.ReadFile(filepath.Join(out, config.MetricsFileName))
	require.NoError(t, readErr)
	assert.Contains(t, string(metrics), `kind="schema_mismatch"`)
}

func TestRunReportFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "input and dataset dir together", args: []string{"--input", "a.csv", "--dataset-dir", "data"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "unknown flag", args: []string{"--verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRunReportNoInput(t *testing.T) {
	t.Setenv("FIT_REPORT_INPUT_FILE", "")
	_, stderr, err := execute(t, "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "config validation failed")
}

func TestOptionsOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Report.InputFile = "from-file.csv"

	opts := &options{datasetDir: "fitabase", outDir: "out", noWorkbook: true}
	opts.overrides(cfg)

	assert.Empty(t, cfg.Report.InputFile)
	assert.Equal(t, "fitabase", cfg.Report.DatasetDir)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.False(t, cfg.Report.Workbook)
}
