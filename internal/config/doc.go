// Package config provides configuration management for the activity report.
// It loads settings from multiple sources, validates them, and resolves the
// output file locations every other package writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern FIT_<SECTION>_<FIELD>:
//
//	FIT_REPORT_INPUT_FILE=data/dailyActivity_merged.csv
//	FIT_REPORT_OUTPUT_DIR=reports
//	FIT_LOGGING_LEVEL=debug
//	FIT_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := cfg.ResolvePaths()
package config
