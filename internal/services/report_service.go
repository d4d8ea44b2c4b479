package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fitcli/internal/analytics"
	"fitcli/internal/config"
	"fitcli/internal/dataprocessing"
	apperrors "fitcli/internal/errors"
	"fitcli/internal/exporter"
	"fitcli/internal/files"
	"fitcli/internal/infrastructure"
	"fitcli/internal/validation"
	"fitcli/pkg/contracts"
	"fitcli/pkg/contracts/domain"
)

// Stage names, used for spans and the stage duration metric
const (
	StageResolve = "resolve"
	StageLoad    = "load"
	StageBuild   = "build"
	StageAnalyze = "analyze"
	StageExport  = "export"
)

// Output kinds recorded per written file
const (
	OutputCSV         = "csv"
	OutputWorkbook    = "workbook"
	OutputSummary     = "summary"
	OutputDiagnostics = "diagnostics"
)

// RunResult is everything a successful run produced
type RunResult struct {
	TraceID     string
	InputFile   string
	Table       *domain.ActivityTable
	Diagnostics *domain.Diagnostics
	Report      *analytics.Report
	Outputs     map[string]string // kind -> path
	Duration    time.Duration
}

// ReportService runs the activity report end to end
type ReportService struct {
	config    *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.ReportMetrics
	validator *validation.FileValidator
	discovery *files.Discovery
	now       func() time.Time
}

// ReportOption configures a ReportService
type ReportOption func(*ReportService)

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) ReportOption {
	return func(s *ReportService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer sets the tracer used for run and stage spans
func WithTracer(tracer trace.Tracer) ReportOption {
	return func(s *ReportService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics sets the instruments the run records into
func WithMetrics(metrics *infrastructure.ReportMetrics) ReportOption {
	return func(s *ReportService) {
		s.metrics = metrics
	}
}

// WithClock overrides the time source of the summary timestamp
func WithClock(now func() time.Time) ReportOption {
	return func(s *ReportService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewReportService creates a report service
func NewReportService(cfg *config.Config, paths *config.Paths, opts ...ReportOption) *ReportService {
	s := &ReportService{
		config:    cfg,
		paths:     paths,
		logger:    slog.Default(),
		tracer:    otel.Tracer("fitcli/services"),
		discovery: files.NewDiscovery(""),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = infrastructure.WithComponent(s.logger, "report_service")
	s.validator = validation.NewFileValidator(s.logger)
	return s
}

// Run executes every stage once. Any error aborts the run; it is classified
// with errors.Kind for the failure metric.
func (s *ReportService) Run(ctx context.Context) (*RunResult, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	traceID := infrastructure.GetTraceID(ctx)

	ctx, span := s.tracer.Start(ctx, "report.Run", trace.WithAttributes(
		attribute.String("run.id", traceID),
	))
	defer span.End()

	start := time.Now()
	s.logger.InfoContext(ctx, "Report run started",
		slog.String("output_dir", s.paths.OutputDir),
		slog.Bool("workbook", s.config.Report.Workbook))

	result, err := s.run(ctx)
	s.metrics.RecordRun(ctx, err, apperrors.Kind(err))
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Report run failed",
			slog.String("kind", apperrors.Kind(err)))
		return nil, err
	}

	result.TraceID = traceID
	result.Duration = time.Since(start)
	s.logger.InfoContext(ctx, "Report run completed",
		slog.String("input", result.InputFile),
		slog.Int("records", result.Table.Len()),
		slog.Int("outputs", len(result.Outputs)),
		slog.Duration("duration", result.Duration))
	return result, nil
}

func (s *ReportService) run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{Outputs: make(map[string]string)}

	err := s.stage(ctx, StageResolve, func(ctx context.Context) error {
		input, err := s.ResolveInput(ctx)
		result.InputFile = input
		return err
	})
	if err != nil {
		return nil, err
	}

	var raw *domain.RawTable
	err = s.stage(ctx, StageLoad, func(ctx context.Context) error {
		var err error
		raw, err = s.load(result.InputFile)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.stage(ctx, StageBuild, func(ctx context.Context) error {
		table, diag, err := dataprocessing.BuildActivityTable(ctx, raw,
			dataprocessing.WithLogger(s.logger),
			dataprocessing.WithTracer(s.tracer))
		if err != nil {
			return err
		}
		s.metrics.RecordBuild(ctx, len(raw.Rows), table.Len(), *diag)
		result.Table, result.Diagnostics = table, diag
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.stage(ctx, StageAnalyze, func(ctx context.Context) error {
		result.Report = analytics.Analyze(result.Table)
		infrastructure.AddSpanEvent(ctx, "analysis", map[string]interface{}{
			"steps_calories_r": result.Report.Correlations.StepsCalories,
			"mean_steps":       result.Report.Averages.Steps,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.stage(ctx, StageExport, func(ctx context.Context) error {
		return s.export(ctx, result)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ResolveInput returns the file the run reads: the configured input file,
// or the dataset file found inside the dataset directory.
func (s *ReportService) ResolveInput(ctx context.Context) (string, error) {
	rc := s.config.Report
	if rc.InputFile != "" {
		return rc.InputFile, nil
	}
	if rc.DatasetDir == "" {
		return "", apperrors.NewAppError(apperrors.ErrTypeConfig, "cannot resolve input", ErrNoInput)
	}

	if err := s.validator.ValidateInputDirectory(rc.DatasetDir); err != nil {
		return "", err
	}
	found, others, err := s.discovery.FindDatasetFile(rc.DatasetDir, rc.DatasetFile)
	if err != nil {
		return "", err
	}

	for _, f := range others {
		s.logger.DebugContext(ctx, "Dataset file not used",
			slog.String("file", f.Name),
			slog.Int64("size", f.Size))
	}
	s.logger.InfoContext(ctx, "Dataset file selected",
		slog.String("file", found.Path),
		slog.Int("other_files", len(others)))
	return found.Path, nil
}

func (s *ReportService) load(path string) (*domain.RawTable, error) {
	if err := s.validator.ValidateInputFile(path); err != nil {
		return nil, err
	}
	raw, err := dataprocessing.ReadFile(path, dataprocessing.ReadOptions{Sheet: s.config.Report.Sheet})
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRawTable(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// export writes the output files concurrently. Each writer only reads the
// finished table and report.
func (s *ReportService) export(ctx context.Context, result *RunResult) error {
	if err := s.validator.ValidateOutputDirectory(s.paths.OutputDir); err != nil {
		return err
	}

	rc := s.config.Report
	meta := exporter.SummaryMeta{
		Source:               result.InputFile,
		TraceID:              infrastructure.GetTraceID(ctx),
		GeneratedAt:          s.now(),
		Generator:            contracts.GetVersionString(),
		ExpectedParticipants: rc.ExpectedParticipants,
	}

	type job struct {
		kind string
		path string
		fn   func(context.Context) error
	}
	jobs := []job{
		{OutputCSV, s.paths.AnalysisCSV, func(ctx context.Context) error {
			return exporter.NewCSVWriter(s.paths, s.logger).
				WriteActivityTable(ctx, s.paths.AnalysisCSV, result.Table, rc.CSVBOM)
		}},
		{OutputDiagnostics, s.paths.Diagnostics, func(ctx context.Context) error {
			return exporter.NewCSVWriter(s.paths, s.logger).
				WriteDiagnostics(ctx, s.paths.Diagnostics, result.Diagnostics, rc.CSVBOM)
		}},
		{OutputSummary, s.paths.Summary, func(ctx context.Context) error {
			return exporter.NewSummaryWriter(s.paths, s.logger).
				Export(ctx, s.paths.Summary, meta, result.Diagnostics, result.Report)
		}},
	}
	if rc.Workbook {
		jobs = append(jobs, job{OutputWorkbook, s.paths.Workbook, func(ctx context.Context) error {
			return exporter.NewWorkbookExporter(s.paths, s.logger).
				Export(ctx, s.paths.Workbook, result.Table, result.Report)
		}})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := j.fn(gctx); err != nil {
				return fmt.Errorf("%s output: %w", j.kind, err)
			}
			s.metrics.RecordFile(gctx, j.kind)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, j := range jobs {
		result.Outputs[j.kind] = j.path
	}
	return nil
}

// stage runs fn inside a span and records its duration
func (s *ReportService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "report."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.RecordStage(ctx, name, time.Since(start), err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.Kind(err))
		return err
	}

	s.logger.DebugContext(ctx, "Stage completed",
		slog.String("stage", name),
		slog.Duration("duration", time.Since(start)))
	return nil
}
