package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "fitcli/internal/errors"
	"fitcli/pkg/contracts/domain"
)

// ActivityDateLayout is the month/day/year layout of the source dates.
// Leading zeros are optional.
const ActivityDateLayout = "1/2/2006"

// OutputDateLayout is how dates are written to the analysis outputs.
const OutputDateLayout = "2006-01-02"

const tracerName = "fitcli/dataprocessing"

// ErrEmptyDate is the cause of a MalformedDateError for a blank activity date.
var ErrEmptyDate = errors.New("empty activity date")

var intFields = map[string]func(*domain.ActivityRecord) *int64{
	domain.RawTotalSteps:           func(r *domain.ActivityRecord) *int64 { return &r.TotalSteps },
	domain.RawVeryActiveMinutes:    func(r *domain.ActivityRecord) *int64 { return &r.VeryActiveMins },
	domain.RawFairlyActiveMinutes:  func(r *domain.ActivityRecord) *int64 { return &r.FairlyActiveMins },
	domain.RawLightlyActiveMinutes: func(r *domain.ActivityRecord) *int64 { return &r.LightlyActiveMins },
	domain.RawSedentaryMinutes:     func(r *domain.ActivityRecord) *int64 { return &r.SedentaryMins },
}

var floatFields = map[string]func(*domain.ActivityRecord) *float64{
	domain.RawTotalDistance:            func(r *domain.ActivityRecord) *float64 { return &r.TotalDist },
	domain.RawTrackerDistance:          func(r *domain.ActivityRecord) *float64 { return &r.TrackDist },
	domain.RawLoggedActivitiesDistance: func(r *domain.ActivityRecord) *float64 { return &r.LoggedDist },
	domain.RawVeryActiveDistance:       func(r *domain.ActivityRecord) *float64 { return &r.VeryActiveDist },
	domain.RawModeratelyActiveDistance: func(r *domain.ActivityRecord) *float64 { return &r.ModerateActiveDist },
	domain.RawLightActiveDistance:      func(r *domain.ActivityRecord) *float64 { return &r.LightActiveDist },
	domain.RawSedentaryActiveDistance:  func(r *domain.ActivityRecord) *float64 { return &r.SedentaryActiveDist },
	domain.RawCalories:                 func(r *domain.ActivityRecord) *float64 { return &r.Calories },
}

// Builder turns a raw daily activity table into the analysis table.
// It holds no state between runs.
type Builder struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// BuildOption configures a Builder.
type BuildOption func(*Builder)

// WithLogger sets the logger used for audit findings.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTracer sets the tracer used for the build span.
func WithTracer(tracer trace.Tracer) BuildOption {
	return func(b *Builder) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// NewBuilder creates a builder. Defaults are the process-wide slog logger
// and OpenTelemetry tracer.
func NewBuilder(opts ...BuildOption) *Builder {
	b := &Builder{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildActivityTable runs the cleaning pipeline over raw and returns the
// analysis table with the null and identity audits alongside. It fails with
// a *SchemaMismatchError, *MalformedDateError or *MalformedValueError and
// then returns no table and no diagnostics.
func BuildActivityTable(ctx context.Context, raw *domain.RawTable, opts ...BuildOption) (*domain.ActivityTable, *domain.Diagnostics, error) {
	return NewBuilder(opts...).Build(ctx, raw)
}

// Build is BuildActivityTable on a configured builder.
func (b *Builder) Build(ctx context.Context, raw *domain.RawTable) (*domain.ActivityTable, *domain.Diagnostics, error) {
	if raw == nil {
		return nil, nil, apperrors.NewAppValidationError("raw table is nil")
	}

	ctx, span := b.tracer.Start(ctx, "dataprocessing.BuildActivityTable",
		trace.WithAttributes(
			attribute.String("source", raw.Source),
			attribute.Int("rows", len(raw.Rows)),
			attribute.Int("columns", len(raw.Header)),
		))
	defer span.End()

	table, diag, err := b.build(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.Kind(err))
		b.logger.ErrorContext(ctx, "activity table build failed",
			slog.String("source", raw.Source),
			slog.String("kind", apperrors.Kind(err)),
			slog.String("error", err.Error()))
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("records", table.Len()),
		attribute.Int("missing_cells", diag.TotalMissing()),
		attribute.Int("distinct_ids", diag.DistinctIDs),
	)
	b.logger.InfoContext(ctx, "activity table built",
		slog.String("source", raw.Source),
		slog.Int("records", table.Len()),
		slog.Int("distinct_ids", diag.DistinctIDs))

	return table, diag, nil
}

func (b *Builder) build(ctx context.Context, raw *domain.RawTable) (*domain.ActivityTable, *domain.Diagnostics, error) {
	diag := &domain.Diagnostics{
		RowCount:      len(raw.Rows),
		ColumnCount:   len(raw.Header),
		MissingValues: AuditMissing(raw),
	}
	if diag.HasMissing() {
		// Reported, not repaired.
		for _, m := range diag.MissingValues {
			if m.Count > 0 {
				b.logger.WarnContext(ctx, "missing values passed through",
					slog.String("column", m.Column),
					slog.Int("count", m.Count))
			}
		}
	}

	index, err := resolveColumns(raw)
	if err != nil {
		return nil, nil, err
	}

	diag.DistinctIDs = CountDistinctIDs(raw)
	b.logger.DebugContext(ctx, "identity audit",
		slog.Int("distinct_ids", diag.DistinctIDs),
		slog.Int("rows", diag.RowCount))

	records := make([]domain.ActivityRecord, len(raw.Rows))
	for i := range raw.Rows {
		if err := buildRecord(&records[i], raw, index, i); err != nil {
			return nil, nil, err
		}
	}

	columns := make([]string, len(domain.AnalysisColumns))
	copy(columns, domain.AnalysisColumns)

	return &domain.ActivityTable{Columns: columns, Records: records}, diag, nil
}

// resolveColumns maps every required source column to its header position.
func resolveColumns(raw *domain.RawTable) (map[string]int, error) {
	index := make(map[string]int)
	for _, col := range domain.RequiredSourceColumns() {
		pos := raw.ColumnIndex(col)
		if pos < 0 {
			return nil, &apperrors.SchemaMismatchError{Column: col, Source: raw.Source}
		}
		index[col] = pos
	}
	return index, nil
}

func buildRecord(rec *domain.ActivityRecord, raw *domain.RawTable, index map[string]int, row int) error {
	for _, col := range domain.RequiredSourceColumns() {
		cell := strings.TrimSpace(raw.Cell(row, index[col]))
		switch col {
		case domain.RawID:
			if !IsMissing(cell) {
				rec.ID = cell
			}
		case domain.RawActivityDate:
			date, err := ParseActivityDate(cell)
			if err != nil {
				return &apperrors.MalformedDateError{Column: col, Row: row + 1, Value: cell, Cause: err}
			}
			rec.Date = date
		default:
			if field, ok := intFields[col]; ok {
				v, err := parseWhole(col, cell, row)
				if err != nil {
					return err
				}
				*field(rec) = v
				continue
			}
			if field, ok := floatFields[col]; ok {
				v, err := parseReal(col, cell, row)
				if err != nil {
					return err
				}
				*field(rec) = v
			}
		}
	}

	rec.DayOfTheWeek = DayOfWeek(rec.Date)
	rec.TotalMins = rec.VeryActiveMins + rec.FairlyActiveMins + rec.LightlyActiveMins + rec.SedentaryMins
	rec.TotalHours = TotalHours(rec.TotalMins)
	return nil
}

// ParseActivityDate parses a month/day/year date into UTC midnight.
func ParseActivityDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	return time.ParseInLocation(ActivityDateLayout, s, time.UTC)
}

// DayOfWeek returns the English weekday name of a date.
func DayOfWeek(date time.Time) string {
	return date.Weekday().String()
}

// TotalHours converts minutes to whole hours, rounding half to even:
// 90 minutes is 2 hours, 30 minutes is 0.
func TotalHours(totalMins int64) int64 {
	return int64(math.RoundToEven(float64(totalMins) / 60))
}

func parseReal(col, cell string, row int) (float64, error) {
	if IsMissing(cell) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &apperrors.MalformedValueError{Column: col, Row: row + 1, Value: cell, Reason: "not a number"}
	}
	return v, nil
}

func parseWhole(col, cell string, row int) (int64, error) {
	v, err := parseReal(col, cell, row)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, &apperrors.MalformedValueError{Column: col, Row: row + 1, Value: cell, Reason: "expected a whole number"}
	}
	if v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, &apperrors.MalformedValueError{Column: col, Row: row + 1, Value: cell, Reason: "out of range"}
	}
	return int64(v), nil
}
