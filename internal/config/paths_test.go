package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Report.OutputDir = dir

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, dir, paths.OutputDir)
	assert.Equal(t, filepath.Join(dir, AnalysisCSVFileName), paths.AnalysisCSV)
	assert.Equal(t, filepath.Join(dir, WorkbookFileName), paths.Workbook)
	assert.Equal(t, filepath.Join(dir, SummaryFileName), paths.Summary)
	assert.Equal(t, filepath.Join(dir, DiagnosticsFileName), paths.Diagnostics)
	assert.Equal(t, filepath.Join(dir, MetricsFileName), paths.MetricsFile)
}

func TestResolvePathsRelative(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := Default()

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(paths.OutputDir))
	assert.Equal(t, "reports", filepath.Base(paths.OutputDir))
}

func TestResolvePathsMetricsOverride(t *testing.T) {
	cfg := Default()
	cfg.Report.OutputDir = t.TempDir()
	cfg.Telemetry.MetricsFile = "/var/lib/node_exporter/activity.prom"

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/node_exporter/activity.prom", paths.MetricsFile)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Report.OutputDir = filepath.Join(root, "out", "nested")
	cfg.Telemetry.MetricsFile = filepath.Join(root, "metrics", "run.prom")

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.OutputDir, filepath.Join(root, "metrics")} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("Id\n"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}
