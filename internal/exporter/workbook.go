package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fitcli/internal/analytics"
	"fitcli/internal/config"
	apperrors "fitcli/internal/errors"
	"fitcli/pkg/contracts/domain"
)

// Sheet names of the report workbook
const (
	SheetAnalysis   = "analysis"
	SheetStatistics = "statistics"
	SheetChartData  = "chart_data"
	SheetCharts     = "charts"
)

// Chart titles
const (
	TitleWeekdayUsage   = "No. of times users logged in app across the week"
	TitleStepsCalories  = "Calories burned for every step taken"
	TitleHoursCalories  = "Calories burned for every hour logged"
	TitleActivityMinute = "Percentage of Activity in Minutes"
)

// WorkbookExporter renders the analysis table, its statistics and the four
// usage charts into one .xlsx report.
type WorkbookExporter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(paths *config.Paths, logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{paths: paths, logger: logger}
}

// Export builds the workbook and saves it to filePath
func (e *WorkbookExporter) Export(ctx context.Context, filePath string, table *domain.ActivityTable, report *analytics.Report) error {
	f, err := e.Build(table, report)
	if err != nil {
		return err
	}
	defer f.Close()

	fullPath := filePath
	if !filepath.IsAbs(fullPath) && e.paths != nil {
		fullPath = filepath.Join(e.paths.OutputDir, filePath)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), config.DirPermissions); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", fullPath)
	}

	e.logger.InfoContext(ctx, "Report workbook written",
		slog.String("path", fullPath),
		slog.Int("record_count", table.Len()))
	return nil
}

// Build renders the workbook in memory. The caller closes the file.
func (e *WorkbookExporter) Build(table *domain.ActivityTable, report *analytics.Report) (*excelize.File, error) {
	if table == nil || report == nil {
		return nil, apperrors.NewAppValidationError("workbook needs a table and its analysis")
	}

	f := excelize.NewFile()
	if err := e.render(f, table, report); err != nil {
		f.Close()
		return nil, apperrors.NewStorageError("failed to render workbook", err)
	}
	return f, nil
}

func (e *WorkbookExporter) render(f *excelize.File, table *domain.ActivityTable, report *analytics.Report) error {
	if err := f.SetSheetName("Sheet1", SheetAnalysis); err != nil {
		return err
	}
	for _, name := range []string{SheetStatistics, SheetChartData, SheetCharts} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := writeAnalysisSheet(f, table); err != nil {
		return fmt.Errorf("analysis sheet: %w", err)
	}
	if err := writeStatisticsSheet(f, report.Summaries); err != nil {
		return fmt.Errorf("statistics sheet: %w", err)
	}
	layout, err := writeChartData(f, table, report)
	if err != nil {
		return fmt.Errorf("chart data sheet: %w", err)
	}

	if table.Len() == 0 {
		e.logger.Warn("Empty activity table, charts skipped")
		return nil
	}
	return addCharts(f, table.Len(), layout)
}

func writeAnalysisSheet(f *excelize.File, table *domain.ActivityTable) error {
	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetAnalysis, "A1", &header); err != nil {
		return err
	}

	for i, rec := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := recordCells(rec)
		if err := f.SetSheetRow(SheetAnalysis, cell, &row); err != nil {
			return err
		}
	}
	return f.SetPanes(SheetAnalysis, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// recordCells keeps numbers numeric so charts can reference them
func recordCells(rec domain.ActivityRecord) []interface{} {
	return []interface{}{
		rec.ID,
		formatDate(rec.Date),
		rec.DayOfTheWeek,
		rec.TotalSteps,
		rec.TotalDist,
		rec.TrackDist,
		rec.LoggedDist,
		rec.VeryActiveDist,
		rec.ModerateActiveDist,
		rec.LightActiveDist,
		rec.SedentaryActiveDist,
		rec.VeryActiveMins,
		rec.FairlyActiveMins,
		rec.LightlyActiveMins,
		rec.SedentaryMins,
		rec.TotalMins,
		rec.TotalHours,
		rec.Calories,
	}
}

func writeStatisticsSheet(f *excelize.File, summaries []analytics.ColumnSummary) error {
	header := make([]interface{}, len(analytics.SummaryHeader))
	for i, h := range analytics.SummaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetStatistics, "A1", &header); err != nil {
		return err
	}

	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			s.Column, s.Count,
			statCell(s.Mean), statCell(s.Std), statCell(s.Min),
			statCell(s.P25), statCell(s.P50), statCell(s.P75), statCell(s.Max),
		}
		if err := f.SetSheetRow(SheetStatistics, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// statCell leaves undefined statistics blank
func statCell(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return v
}

// chartLayout records where each chart's series live on the chart_data sheet
type chartLayout struct {
	weekdayRows int
	bandRows    int
}

// Reference line points, two rows per line starting at row 2 of columns H:J
var referenceLines = []string{
	"mean calories (steps chart)",
	"mean steps",
	"mean calories (hours chart)",
	"mean total hours",
	"mean sedentary hours",
}

func writeChartData(f *excelize.File, table *domain.ActivityTable, report *analytics.Report) (chartLayout, error) {
	rows := [][]interface{}{
		{"day_of_the_week", "count"},
	}
	for _, wc := range report.Weekdays {
		rows = append(rows, []interface{}{wc.Day, wc.Count})
	}
	if err := setRows(f, SheetChartData, 1, 1, rows); err != nil {
		return chartLayout{}, err
	}

	rows = [][]interface{}{
		{"band", "minutes", "percent"},
	}
	for _, b := range report.Bands {
		rows = append(rows, []interface{}{b.Label, b.Minutes, b.Percent})
	}
	if err := setRows(f, SheetChartData, 4, 1, rows); err != nil {
		return chartLayout{}, err
	}

	steps, _ := analytics.Values(table, domain.ColTotalSteps)
	calories, _ := analytics.Values(table, domain.ColCalories)
	hours, _ := analytics.Values(table, domain.ColTotalHours)
	minSteps, maxSteps := bounds(steps)
	minCal, maxCal := bounds(calories)
	minHours, maxHours := bounds(hours)
	avg := report.Averages

	points := [][2][2]float64{
		{{minSteps, avg.Calories}, {maxSteps, avg.Calories}},
		{{avg.Steps, minCal}, {avg.Steps, maxCal}},
		{{minHours, avg.Calories}, {maxHours, avg.Calories}},
		{{avg.TotalHours, minCal}, {avg.TotalHours, maxCal}},
		{{avg.SedentaryHours, minCal}, {avg.SedentaryHours, maxCal}},
	}
	rows = [][]interface{}{
		{"reference", "x", "y"},
	}
	for i, line := range points {
		for _, p := range line {
			rows = append(rows, []interface{}{referenceLines[i], statCell(p[0]), statCell(p[1])})
		}
	}
	if err := setRows(f, SheetChartData, 8, 1, rows); err != nil {
		return chartLayout{}, err
	}

	return chartLayout{weekdayRows: len(report.Weekdays), bandRows: len(report.Bands)}, nil
}

func setRows(f *excelize.File, sheet string, col, row int, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func bounds(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// columnRange returns an absolute reference to rows first..last of a column
func columnRange(sheet, column string, first, last int) string {
	col := 0
	for i, c := range domain.AnalysisColumns {
		if c == column {
			col = i + 1
			break
		}
	}
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, name, first, name, last)
}

func rangeRef(sheet, col string, first, last int) string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", sheet, col, first, col, last)
}

func title(text string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: text}}
}

func referenceSeries(name string, line int) excelize.ChartSeries {
	first := 2 + line*2
	return excelize.ChartSeries{
		Name:       name,
		Categories: rangeRef(SheetChartData, "I", first, first+1),
		Values:     rangeRef(SheetChartData, "J", first, first+1),
		Line:       excelize.ChartLine{Type: excelize.ChartLineSolid, Width: 1.5},
		Marker:     excelize.ChartMarker{Symbol: "none"},
	}
}

func pointSeries(name, xCol, yCol string, records int) excelize.ChartSeries {
	return excelize.ChartSeries{
		Name:       name,
		Categories: columnRange(SheetAnalysis, xCol, 2, records+1),
		Values:     columnRange(SheetAnalysis, yCol, 2, records+1),
		Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
		Marker:     excelize.ChartMarker{Symbol: "circle", Size: 4},
	}
}

func addCharts(f *excelize.File, records int, layout chartLayout) error {
	dim := excelize.ChartDimension{Width: 640, Height: 360}

	charts := []struct {
		cell  string
		chart *excelize.Chart
	}{
		{"A1", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       "Frequency",
				Categories: rangeRef(SheetChartData, "A", 2, layout.weekdayRows+1),
				Values:     rangeRef(SheetChartData, "B", 2, layout.weekdayRows+1),
			}},
			Title:     title(TitleWeekdayUsage),
			Legend:    excelize.ChartLegend{Position: "none"},
			XAxis:     excelize.ChartAxis{Title: title("Day of the week")},
			YAxis:     excelize.ChartAxis{Title: title("Frequency"), MajorGridLines: true},
			Dimension: dim,
		}},
		{"L1", &excelize.Chart{
			Type: excelize.Scatter,
			Series: []excelize.ChartSeries{
				pointSeries("Daily records", domain.ColTotalSteps, domain.ColCalories, records),
				referenceSeries("Mean calories", 0),
				referenceSeries("Mean steps", 1),
			},
			Title:     title(TitleStepsCalories),
			Legend:    excelize.ChartLegend{Position: "bottom"},
			XAxis:     excelize.ChartAxis{Title: title("Steps taken")},
			YAxis:     excelize.ChartAxis{Title: title("Calories burned"), MajorGridLines: true},
			Dimension: dim,
		}},
		{"A21", &excelize.Chart{
			Type: excelize.Scatter,
			Series: []excelize.ChartSeries{
				pointSeries("Daily records", domain.ColTotalHours, domain.ColCalories, records),
				referenceSeries("Mean calories", 2),
				referenceSeries("Mean total hours", 3),
				referenceSeries("Mean sedentary hours", 4),
			},
			Title:     title(TitleHoursCalories),
			Legend:    excelize.ChartLegend{Position: "bottom"},
			XAxis:     excelize.ChartAxis{Title: title("Hours logged")},
			YAxis:     excelize.ChartAxis{Title: title("Calories burned"), MajorGridLines: true},
			Dimension: dim,
		}},
		{"L21", &excelize.Chart{
			Type: excelize.Pie,
			Series: []excelize.ChartSeries{{
				Name:       "Minutes",
				Categories: rangeRef(SheetChartData, "D", 2, layout.bandRows+1),
				Values:     rangeRef(SheetChartData, "E", 2, layout.bandRows+1),
			}},
			Title:     title(TitleActivityMinute),
			Legend:    excelize.ChartLegend{Position: "right"},
			PlotArea:  excelize.ChartPlotArea{ShowPercent: true},
			Dimension: dim,
		}},
	}

	for _, c := range charts {
		if err := f.AddChart(SheetCharts, c.cell, c.chart); err != nil {
			return fmt.Errorf("chart %q: %w", c.chart.Title[0].Text, err)
		}
	}
	return nil
}
