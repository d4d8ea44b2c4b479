package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ReportConfig selects the input file and where the report is written
type ReportConfig struct {
	// InputFile is read directly when set. Otherwise DatasetFile is looked up
	// inside DatasetDir.
	InputFile            string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required_without=DatasetDir"`
	DatasetDir           string `yaml:"dataset_dir" envconfig:"DATASET_DIR"`
	DatasetFile          string `yaml:"dataset_file" envconfig:"DATASET_FILE" validate:"required"`
	Sheet                string `yaml:"sheet" envconfig:"SHEET"`
	OutputDir            string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Workbook             bool   `yaml:"workbook" envconfig:"WORKBOOK"`
	CSVBOM               bool   `yaml:"csv_bom" envconfig:"CSV_BOM"`
	ExpectedParticipants int    `yaml:"expected_participants" envconfig:"EXPECTED_PARTICIPANTS" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment   string `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	// MetricsFile is the Prometheus textfile written after each run. Empty
	// means <output_dir>/activity_report.prom.
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
}

// Load builds the configuration from defaults, then the YAML file (when one
// is given or found in a well-known location), then FIT_* environment
// variables, then the overrides (command-line flags). Later sources win.
// Validation runs last.
func Load(configFile string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file on cfg. Keys absent from the file keep
// their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and normalises logging settings.
func (c *Config) Validate() error {
	if c.Logging.Format != "json" {
		// JSON is the only supported log format
		c.Logging.Format = "json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the first config file found in the usual places
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			DatasetFile:          DefaultDatasetFile,
			OutputDir:            "reports",
			Workbook:             true,
			CSVBOM:               true,
			ExpectedParticipants: DefaultExpectedParticipants,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/activity-report.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "fitcli-activity-report",
			Environment:   "development",
			TraceExporter: "none",
			EnableMetrics: true,
		},
	}
}
