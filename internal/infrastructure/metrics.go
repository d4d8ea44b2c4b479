package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fitcli/pkg/contracts/domain"
)

// ReportMetrics holds the instruments recorded by one report run
type ReportMetrics struct {
	RowsRead      metric.Int64Counter
	RecordsBuilt  metric.Int64Counter
	MissingCells  metric.Int64Counter
	DistinctIDs   metric.Int64Gauge
	StageDuration metric.Float64Histogram
	RunsTotal     metric.Int64Counter
	FailuresTotal metric.Int64Counter
	FilesWritten  metric.Int64Counter
}

// CreateReportMetrics creates the report instruments on the given meter
func CreateReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"activity_rows_read_total",
		metric.WithDescription("Total number of data rows read from the input file"),
	)
	if err != nil {
		return nil, err
	}

	recordsBuilt, err := meter.Int64Counter(
		"activity_records_built_total",
		metric.WithDescription("Total number of activity records in the cleaned table"),
	)
	if err != nil {
		return nil, err
	}

	missingCells, err := meter.Int64Counter(
		"activity_missing_cells_total",
		metric.WithDescription("Missing cells found by the null audit, per column"),
	)
	if err != nil {
		return nil, err
	}

	distinctIDs, err := meter.Int64Gauge(
		"activity_distinct_ids",
		metric.WithDescription("Number of distinct participant identifiers in the last run"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"activity_stage_duration_seconds",
		metric.WithDescription("Duration of each report stage in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	runsTotal, err := meter.Int64Counter(
		"activity_report_runs_total",
		metric.WithDescription("Total number of report runs by status"),
	)
	if err != nil {
		return nil, err
	}

	failuresTotal, err := meter.Int64Counter(
		"activity_report_failures_total",
		metric.WithDescription("Total number of failed runs by error kind"),
	)
	if err != nil {
		return nil, err
	}

	filesWritten, err := meter.Int64Counter(
		"activity_report_files_written_total",
		metric.WithDescription("Total number of output files written by kind"),
	)
	if err != nil {
		return nil, err
	}

	return &ReportMetrics{
		RowsRead:      rowsRead,
		RecordsBuilt:  recordsBuilt,
		MissingCells:  missingCells,
		DistinctIDs:   distinctIDs,
		StageDuration: stageDuration,
		RunsTotal:     runsTotal,
		FailuresTotal: failuresTotal,
		FilesWritten:  filesWritten,
	}, nil
}

// RecordBuild records the outcome of the cleaning stage
func (m *ReportMetrics) RecordBuild(ctx context.Context, rowsRead int, records int, diag domain.Diagnostics) {
	if m == nil {
		return
	}
	m.RowsRead.Add(ctx, int64(rowsRead))
	m.RecordsBuilt.Add(ctx, int64(records))
	m.DistinctIDs.Record(ctx, int64(diag.DistinctIDs))
	for _, mc := range diag.MissingValues {
		if mc.Count == 0 {
			continue
		}
		m.MissingCells.Add(ctx, int64(mc.Count), metric.WithAttributes(attribute.String("column", mc.Column)))
	}
}

// RecordStage records how long one stage took
func (m *ReportMetrics) RecordStage(ctx context.Context, stage string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.StageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("status", status),
	))
}

// RecordFile counts one written output file
func (m *ReportMetrics) RecordFile(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.FilesWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordRun counts a finished run. kind is the error classification and is
// ignored for successful runs.
func (m *ReportMetrics) RecordRun(ctx context.Context, err error, kind string) {
	if m == nil {
		return
	}
	if err == nil {
		m.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "success")))
		return
	}
	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "failure")))
	m.FailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
