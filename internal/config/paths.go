package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains every file the report run writes.
// It is the single source of truth for output locations.
type Paths struct {
	OutputDir   string
	AnalysisCSV string
	Workbook    string
	Summary     string
	Diagnostics string
	MetricsFile string
}

// ResolvePaths derives output file locations from the report configuration.
// Relative output directories are resolved against the working directory.
func (c *Config) ResolvePaths() (*Paths, error) {
	outDir, err := filepath.Abs(c.Report.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %w", c.Report.OutputDir, err)
	}

	metrics := c.Telemetry.MetricsFile
	if metrics == "" {
		metrics = filepath.Join(outDir, MetricsFileName)
	}

	return &Paths{
		OutputDir:   outDir,
		AnalysisCSV: filepath.Join(outDir, AnalysisCSVFileName),
		Workbook:    filepath.Join(outDir, WorkbookFileName),
		Summary:     filepath.Join(outDir, SummaryFileName),
		Diagnostics: filepath.Join(outDir, DiagnosticsFileName),
		MetricsFile: metrics,
	}, nil
}

// EnsureDirectories creates the output directory and the metrics file's parent
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.OutputDir, filepath.Dir(p.MetricsFile)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
