package exporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fitcli/internal/analytics"
	"fitcli/internal/config"
	apperrors "fitcli/internal/errors"
	"fitcli/pkg/contracts/domain"
)

// RecommendedDailySteps is the CDC guideline the step average is judged against
const RecommendedDailySteps = 10000

// SummaryMeta describes the run a narrative summary belongs to
type SummaryMeta struct {
	Source               string
	TraceID              string
	GeneratedAt          time.Time
	Generator            string
	ExpectedParticipants int
}

// SummaryWriter renders the plain-text narrative report
type SummaryWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewSummaryWriter creates a summary writer
func NewSummaryWriter(paths *config.Paths, logger *slog.Logger) *SummaryWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryWriter{paths: paths, logger: logger}
}

// Export writes the narrative to filePath
func (s *SummaryWriter) Export(ctx context.Context, filePath string, meta SummaryMeta, diag *domain.Diagnostics, report *analytics.Report) error {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) && s.paths != nil {
		fullPath = filepath.Join(s.paths.OutputDir, filePath)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), config.DirPermissions); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError("failed to create summary file", err).WithContext("path", fullPath)
	}
	if err := s.Write(file, meta, diag, report); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close summary file", err)
	}

	s.logger.InfoContext(ctx, "Narrative summary written", slog.String("path", fullPath))
	return nil
}

// Write renders the narrative to w
func (s *SummaryWriter) Write(w io.Writer, meta SummaryMeta, diag *domain.Diagnostics, report *analytics.Report) error {
	if diag == nil || report == nil {
		return apperrors.NewAppValidationError("summary needs diagnostics and analysis")
	}

	b := bufio.NewWriter(w)

	heading(b, "Daily activity report")
	if meta.Source != "" {
		fmt.Fprintf(b, "Source:    %s\n", meta.Source)
	}
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(b, "Generated: %s\n", meta.GeneratedAt.UTC().Format(time.RFC3339))
	}
	if meta.TraceID != "" {
		fmt.Fprintf(b, "Run:       %s\n", meta.TraceID)
	}
	if meta.Generator != "" {
		fmt.Fprintf(b, "Tool:      %s\n", meta.Generator)
	}

	writeDataQuality(b, meta, diag)
	writeKeyStatistics(b, report.Summaries)
	writeWeekdayUsage(b, report.Weekdays)
	writeBandShares(b, report.Bands)
	writeFindings(b, report)

	if err := b.Flush(); err != nil {
		return apperrors.NewStorageError("failed to write summary", err)
	}
	return nil
}

func heading(w io.Writer, text string) {
	fmt.Fprintf(w, "\n%s\n%s\n", text, strings.Repeat("=", len(text)))
}

func writeDataQuality(w io.Writer, meta SummaryMeta, diag *domain.Diagnostics) {
	heading(w, "Data quality")
	fmt.Fprintf(w, "Rows: %d, source columns: %d\n", diag.RowCount, diag.ColumnCount)

	if !diag.HasMissing() {
		fmt.Fprintln(w, "Missing values: none")
	} else {
		fmt.Fprintf(w, "Missing values: %d\n", diag.TotalMissing())
		for _, mc := range diag.MissingValues {
			if mc.Count > 0 {
				fmt.Fprintf(w, "  %-28s %d\n", mc.Column, mc.Count)
			}
		}
	}

	fmt.Fprintf(w, "Distinct participant ids: %d", diag.DistinctIDs)
	if meta.ExpectedParticipants > 0 {
		fmt.Fprintf(w, " (expected %d)", meta.ExpectedParticipants)
		switch {
		case diag.DistinctIDs > meta.ExpectedParticipants:
			fmt.Fprint(w, ", more ids than consenting participants")
		case diag.DistinctIDs < meta.ExpectedParticipants:
			fmt.Fprint(w, ", fewer ids than consenting participants")
		}
	}
	fmt.Fprintln(w)
}

var keyColumns = []string{
	domain.ColTotalSteps,
	domain.ColTotalDist,
	domain.ColVeryActiveMins,
	domain.ColSedentaryMins,
	domain.ColTotalHours,
	domain.ColCalories,
}

func writeKeyStatistics(w io.Writer, summaries []analytics.ColumnSummary) {
	heading(w, "Key statistics")
	fmt.Fprintf(w, "%-22s %12s %12s %12s %12s\n", "column", "mean", "median", "min", "max")
	for _, col := range keyColumns {
		s, ok := analytics.Lookup(summaries, col)
		if !ok || s.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%-22s %12s %12s %12s %12s\n", col,
			formatFixed(s.Mean, 2), formatFixed(s.P50, 2), formatFixed(s.Min, 2), formatFixed(s.Max, 2))
	}
}

func writeWeekdayUsage(w io.Writer, weekdays []analytics.WeekdayCount) {
	heading(w, "App usage across the week")
	for i, wc := range analytics.RankWeekdays(weekdays) {
		fmt.Fprintf(w, "%d. %-10s %d\n", i+1, wc.Day, wc.Count)
	}
}

func writeBandShares(w io.Writer, bands []analytics.BandShare) {
	heading(w, "Activity minutes by intensity")
	for _, b := range bands {
		fmt.Fprintf(w, "%-24s %10d  %6s%%\n", b.Label, b.Minutes, formatFixed(b.Percent, 1))
	}
}

func writeFindings(w io.Writer, report *analytics.Report) {
	heading(w, "Findings")

	avg := report.Averages
	if steps, ok := analytics.Lookup(report.Summaries, domain.ColTotalSteps); ok && steps.Count > 0 {
		verdict := "below"
		if avg.Steps >= RecommendedDailySteps {
			verdict = "at or above"
		}
		fmt.Fprintf(w, "- Users average %s steps a day, %s the %d steps recommended by the CDC.\n",
			formatFixed(avg.Steps, 0), verdict, RecommendedDailySteps)
		fmt.Fprintf(w, "- Half of all logged days stay under %s steps.\n", formatFixed(report.MedianSteps, 0))
	}

	for _, b := range report.Bands {
		if b.Band == domain.BandSedentary && b.Minutes > 0 {
			fmt.Fprintf(w, "- Sedentary minutes make up %s%% of all logged minutes, about %s hours a day.\n",
				formatFixed(b.Percent, 1), formatFixed(avg.SedentaryHours, 1))
		}
	}

	c := report.Correlations
	fmt.Fprintf(w, "- Steps and calories show %s (r = %s)", DescribeCorrelation(c.StepsCalories), formatFixed(c.StepsCalories, 2))
	if c.StepsCalories >= 0.3 {
		fmt.Fprint(w, ": the more steps taken, the more calories burned")
	}
	fmt.Fprintln(w, ".")
	fmt.Fprintf(w, "- Hours logged and calories show %s (r = %s).\n",
		DescribeCorrelation(c.HoursCalories), formatFixed(c.HoursCalories, 2))

	if ranked := analytics.RankWeekdays(report.Weekdays); len(ranked) > 0 && ranked[0].Count > 0 {
		last := ranked[len(ranked)-1]
		fmt.Fprintf(w, "- The app is used most on %s and least on %s.\n", ranked[0].Day, last.Day)
	}
}

// DescribeCorrelation names the strength and direction of a Pearson r
func DescribeCorrelation(r float64) string {
	if math.IsNaN(r) {
		return "no measurable correlation"
	}
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	switch a := math.Abs(r); {
	case a < 0.1:
		return "no meaningful correlation"
	case a < 0.3:
		return "a weak " + direction + " correlation"
	case a < 0.5:
		return "a moderate " + direction + " correlation"
	default:
		return "a strong " + direction + " correlation"
	}
}
