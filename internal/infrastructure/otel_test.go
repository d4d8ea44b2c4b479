package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcli/internal/config"
	"fitcli/pkg/contracts/domain"
)

func initTestOTel(t *testing.T, cfg *OTelConfig) *OTelProviders {
	t.Helper()
	providers, err := InitializeOTel(cfg, NewLogger(io.Discard, "error"))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(ctx)
	})
	return providers
}

func TestOTelInitializationDefaults(t *testing.T) {
	providers := initTestOTel(t, nil)

	assert.Nil(t, providers.TracerProvider, "default trace exporter is none")
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)
}

func TestOTelMetricsDisabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableMetrics = false
	providers := initTestOTel(t, cfg)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.Registry)
	assert.NotNil(t, providers.Meter)

	// nothing to write, nothing created
	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, providers.WriteMetrics(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOTelUnsupportedExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "zipkin"
	_, err := InitializeOTel(cfg, NewLogger(io.Discard, "error"))
	assert.Error(t, err)
}

func TestOTelConfigFrom(t *testing.T) {
	tel := config.Default().Telemetry
	tel.TraceExporter = "stdout"
	tel.Environment = "test"
	tel.EnableMetrics = false

	cfg := OTelConfigFrom(tel)
	assert.Equal(t, "fitcli-activity-report", cfg.ServiceName)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.False(t, cfg.EnableMetrics)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestStdoutTracing(t *testing.T) {
	var spans bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.EnableMetrics = false
	cfg.TraceWriter = &spans

	providers, err := InitializeOTel(cfg, NewLogger(io.Discard, "error"))
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "activity.build")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	AddSpanEvent(ctx, "null_audit", map[string]interface{}{
		"columns": 15,
		"missing": int64(0),
		"source":  "dailyActivity_merged.csv",
	})
	RecordError(ctx, errors.New("schema mismatch"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	out := spans.String()
	assert.Contains(t, out, "activity.build")
	assert.Contains(t, out, "null_audit")
	assert.Contains(t, out, "schema mismatch")
}

func TestTraceIDFromContextWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}

func TestReportMetricsTextfile(t *testing.T) {
	providers := initTestOTel(t, nil)
	metrics, err := CreateReportMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordBuild(ctx, 940, 940, domain.Diagnostics{
		RowCount:    940,
		ColumnCount: 15,
		DistinctIDs: 33,
		MissingValues: []domain.MissingCount{
			{Column: "Id", Count: 0},
			{Column: "Calories", Count: 2},
		},
	})
	metrics.RecordStage(ctx, "build", 25*time.Millisecond, true)
	metrics.RecordFile(ctx, "csv")
	metrics.RecordRun(ctx, nil, "")
	metrics.RecordRun(ctx, errors.New("boom"), "schema_mismatch")

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, providers.WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "activity_rows_read_total")
	assert.Contains(t, text, "activity_records_built_total")
	assert.Contains(t, text, `column="Calories"`)
	assert.NotContains(t, text, `column="Id"`)
	assert.Contains(t, text, "activity_distinct_ids")
	assert.Contains(t, text, "activity_stage_duration_seconds")
	assert.Contains(t, text, `kind="schema_mismatch"`)
	assert.True(t, strings.Contains(text, `status="success"`) && strings.Contains(text, `status="failure"`))
}

func TestReportMetricsNilSafe(t *testing.T) {
	var metrics *ReportMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordBuild(ctx, 1, 1, domain.Diagnostics{})
		metrics.RecordStage(ctx, "build", time.Second, false)
		metrics.RecordFile(ctx, "csv")
		metrics.RecordRun(ctx, errors.New("x"), "unknown")
	})
}
