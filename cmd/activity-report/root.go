package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"fitcli/internal/config"
	apperrors "fitcli/internal/errors"
	"fitcli/internal/infrastructure"
	"fitcli/internal/services"
	"fitcli/pkg/contracts"
)

// options holds the command-line flags
type options struct {
	configFile string
	input      string
	datasetDir string
	outDir     string
	noWorkbook bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "activity-report",
		Short: "Build the daily activity analysis table and report",
		Long: `activity-report reads the Fitbit dailyActivity_merged export, cleans it into
the analysis table and writes the analysis CSV, an Excel report with charts
and a narrative summary.

Examples:
  # Read one file
  activity-report --input data/dailyActivity_merged.csv --out reports

  # Pick the file out of the unpacked dataset directory
  activity-report --dataset-dir "Fitabase Data 4.12.16-5.12.16"

  # Settings from a config file, CSV and summary only
  activity-report --config configs/config.yaml --no-workbook`,
		Version:       contracts.GetFullVersionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file (default: config.yaml or configs/config.yaml if present)")
	flags.StringVar(&opts.input, "input", "", "daily activity CSV or Excel file")
	flags.StringVar(&opts.datasetDir, "dataset-dir", "", "dataset directory holding dailyActivity_merged.csv")
	flags.StringVar(&opts.outDir, "out", "", "output directory")
	flags.BoolVar(&opts.noWorkbook, "no-workbook", false, "skip the Excel report workbook")
	cmd.MarkFlagsMutuallyExclusive("input", "dataset-dir")
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// overrides applies the flags that were set on top of file and env config
func (o *options) overrides(c *config.Config) {
	if o.input != "" {
		c.Report.InputFile = o.input
		c.Report.DatasetDir = ""
	}
	if o.datasetDir != "" {
		c.Report.DatasetDir = o.datasetDir
		c.Report.InputFile = ""
	}
	if o.outDir != "" {
		c.Report.OutputDir = o.outDir
	}
	if o.noWorkbook {
		c.Report.Workbook = false
	}
}

func runReport(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configFile, opts.overrides)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return apperrors.NewConfigError("failed to load configuration", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	defer infrastructure.CloseLogFile()

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("Failed to resolve output paths", slog.String("error", err.Error()))
		return err
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		return apperrors.NewTelemetryError("failed to initialize telemetry", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreateReportMetrics(providers.Meter)
	if err != nil {
		logger.Error("Failed to create metrics", slog.String("error", err.Error()))
		return apperrors.NewTelemetryError("failed to create metrics", err)
	}

	ctx := infrastructure.ContextWithTraceID(cmd.Context())
	svc := services.NewReportService(cfg, paths,
		services.WithLogger(logger),
		services.WithTracer(providers.Tracer),
		services.WithMetrics(metrics))

	result, runErr := svc.Run(ctx)

	// metrics are written for failed runs too; they carry the failure kind
	if cfg.Telemetry.EnableMetrics {
		if err := writeMetrics(providers, paths.MetricsFile); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", runErr)
		return runErr
	}

	printResult(cmd, result)
	return nil
}

func writeMetrics(providers *infrastructure.OTelProviders, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermissions); err != nil {
		return err
	}
	return providers.WriteMetrics(path)
}

func printResult(cmd *cobra.Command, result *services.RunResult) {
	out := cmd.OutOrStdout()
	diag := result.Diagnostics

	fmt.Fprintf(out, "Input:       %s\n", result.InputFile)
	fmt.Fprintf(out, "Records:     %d\n", result.Table.Len())
	fmt.Fprintf(out, "Missing:     %d\n", diag.TotalMissing())
	fmt.Fprintf(out, "Distinct id: %d\n", diag.DistinctIDs)

	kinds := make([]string, 0, len(result.Outputs))
	for kind := range result.Outputs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(out, "Wrote %-12s %s\n", kind+":", result.Outputs[kind])
	}
}
