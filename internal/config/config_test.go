package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// chdir switches the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultDatasetFile, cfg.Report.DatasetFile)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.True(t, cfg.Report.Workbook)
	assert.True(t, cfg.Report.CSVBOM)
	assert.Equal(t, 30, cfg.Report.ExpectedParticipants)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)

	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.True(t, cfg.Telemetry.EnableMetrics)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "input file from env only",
			env:  map[string]string{"FIT_REPORT_INPUT_FILE": "data.csv"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data.csv", cfg.Report.InputFile)
				assert.Equal(t, DefaultDatasetFile, cfg.Report.DatasetFile)
				assert.Equal(t, "reports", cfg.Report.OutputDir)
			},
		},
		{
			name: "yaml overlays defaults",
			file: `
report:
  dataset_dir: /data/fitabase
  output_dir: out
  workbook: false
logging:
  level: debug
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/fitabase", cfg.Report.DatasetDir)
				assert.Equal(t, "out", cfg.Report.OutputDir)
				assert.False(t, cfg.Report.Workbook)
				assert.True(t, cfg.Report.CSVBOM)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 30, cfg.Report.ExpectedParticipants)
			},
		},
		{
			name: "env wins over yaml",
			file: `
report:
  input_file: from-file.csv
  expected_participants: 33
`,
			env: map[string]string{
				"FIT_REPORT_INPUT_FILE":       "from-env.csv",
				"FIT_TELEMETRY_TRACE_EXPORTER": "stdout",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env.csv", cfg.Report.InputFile)
				assert.Equal(t, 33, cfg.Report.ExpectedParticipants)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name:    "no input source",
			wantErr: true,
		},
		{
			name: "unknown trace exporter",
			env: map[string]string{
				"FIT_REPORT_INPUT_FILE":        "data.csv",
				"FIT_TELEMETRY_TRACE_EXPORTER": "jaeger",
			},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "report: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// keep the working directory free of stray config.yaml files
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FIT_REPORT_OUTPUT_DIR", "from-env")

	cfg, err := Load("", func(c *Config) {
		c.Report.InputFile = "flag.csv"
		c.Report.OutputDir = "from-flag"
	})
	require.NoError(t, err)
	assert.Equal(t, "flag.csv", cfg.Report.InputFile)
	assert.Equal(t, "from-flag", cfg.Report.OutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetConfigFilePath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.Empty(t, getConfigFilePath())

	require.NoError(t, os.MkdirAll("configs", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "config.yaml"), []byte("{}"), 0644))
	assert.Equal(t, "configs/config.yaml", getConfigFilePath())

	require.NoError(t, os.WriteFile("config.yaml", []byte("{}"), 0644))
	assert.Equal(t, "config.yaml", getConfigFilePath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "dataset dir satisfies input requirement",
			mutate: func(c *Config) { c.Report.DatasetDir = "data" },
		},
		{
			name: "format is forced to json",
			mutate: func(c *Config) {
				c.Report.InputFile = "a.csv"
				c.Logging.Format = "text"
			},
		},
		{
			name: "file output needs a path",
			mutate: func(c *Config) {
				c.Report.InputFile = "a.csv"
				c.Logging.Output = "file"
				c.Logging.FilePath = ""
			},
			wantErr: true,
		},
		{
			name: "negative participants",
			mutate: func(c *Config) {
				c.Report.InputFile = "a.csv"
				c.Report.ExpectedParticipants = -1
			},
			wantErr: true,
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Report.InputFile = "a.csv"
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "json", cfg.Logging.Format)
		})
	}
}
