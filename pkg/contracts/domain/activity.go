package domain

import (
	"time"
)

// RawTable is the source file as delivered: a header row and text cells.
// Coercion is left to the activity table builder so the null audit sees
// the original cells.
type RawTable struct {
	Source string     `json:"source"`
	Header []string   `json:"header" validate:"required,min=1"`
	Rows   [][]string `json:"rows"`
}

// ColumnIndex returns the position of a header column, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at row/col, or "" when the row is short.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ActivityRecord is one cleaned, derived, canonically named row of the
// analysis table. One record per raw row, same order.
type ActivityRecord struct {
	ID           string    `json:"id" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	DayOfTheWeek string    `json:"day_of_the_week" validate:"required"`

	TotalSteps int64 `json:"total_steps" validate:"min=0"`

	TotalDist           float64 `json:"total_dist" validate:"min=0"`
	TrackDist           float64 `json:"track_dist" validate:"min=0"`
	LoggedDist          float64 `json:"logged_dist" validate:"min=0"`
	VeryActiveDist      float64 `json:"very_active_dist" validate:"min=0"`
	ModerateActiveDist  float64 `json:"moderate_active_dist" validate:"min=0"`
	LightActiveDist     float64 `json:"light_active_dist" validate:"min=0"`
	SedentaryActiveDist float64 `json:"sedentary_active_dist" validate:"min=0"`

	VeryActiveMins    int64 `json:"very_active_mins" validate:"min=0"`
	FairlyActiveMins  int64 `json:"fairly_active_mins" validate:"min=0"`
	LightlyActiveMins int64 `json:"lightly_active_mins" validate:"min=0"`
	SedentaryMins     int64 `json:"sedentary_mins" validate:"min=0"`

	TotalMins  int64 `json:"total_mins" validate:"min=0"`
	TotalHours int64 `json:"total_hours" validate:"min=0"`

	Calories float64 `json:"calories" validate:"min=0"`
}

// ActivityTable is the analysis-ready table. Columns always equals
// AnalysisColumns.
type ActivityTable struct {
	Columns []string         `json:"columns"`
	Records []ActivityRecord `json:"records"`
}

// Len returns the number of records.
func (t *ActivityTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
