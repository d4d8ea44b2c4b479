package analytics

import (
	"fmt"

	"fitcli/pkg/contracts/domain"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// SummaryHeader is the column layout of a rendered summary row.
var SummaryHeader = []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// NumericColumns are the summarised columns, in table order. The identifier
// is a label, not a measure, and is left out.
var NumericColumns = []string{
	domain.ColTotalSteps,
	domain.ColTotalDist, domain.ColTrackDist, domain.ColLoggedDist,
	domain.ColVeryActiveDist, domain.ColModerateActiveDist, domain.ColLightActiveDist, domain.ColSedentaryActiveDist,
	domain.ColVeryActiveMins, domain.ColFairlyActiveMins, domain.ColLightlyActiveMins, domain.ColSedentaryMins,
	domain.ColTotalMins, domain.ColTotalHours, domain.ColCalories,
}

var extractors = map[string]func(domain.ActivityRecord) float64{
	domain.ColTotalSteps:          func(r domain.ActivityRecord) float64 { return float64(r.TotalSteps) },
	domain.ColTotalDist:           func(r domain.ActivityRecord) float64 { return r.TotalDist },
	domain.ColTrackDist:           func(r domain.ActivityRecord) float64 { return r.TrackDist },
	domain.ColLoggedDist:          func(r domain.ActivityRecord) float64 { return r.LoggedDist },
	domain.ColVeryActiveDist:      func(r domain.ActivityRecord) float64 { return r.VeryActiveDist },
	domain.ColModerateActiveDist:  func(r domain.ActivityRecord) float64 { return r.ModerateActiveDist },
	domain.ColLightActiveDist:     func(r domain.ActivityRecord) float64 { return r.LightActiveDist },
	domain.ColSedentaryActiveDist: func(r domain.ActivityRecord) float64 { return r.SedentaryActiveDist },
	domain.ColVeryActiveMins:      func(r domain.ActivityRecord) float64 { return float64(r.VeryActiveMins) },
	domain.ColFairlyActiveMins:    func(r domain.ActivityRecord) float64 { return float64(r.FairlyActiveMins) },
	domain.ColLightlyActiveMins:   func(r domain.ActivityRecord) float64 { return float64(r.LightlyActiveMins) },
	domain.ColSedentaryMins:       func(r domain.ActivityRecord) float64 { return float64(r.SedentaryMins) },
	domain.ColTotalMins:           func(r domain.ActivityRecord) float64 { return float64(r.TotalMins) },
	domain.ColTotalHours:          func(r domain.ActivityRecord) float64 { return float64(r.TotalHours) },
	domain.ColCalories:            func(r domain.ActivityRecord) float64 { return r.Calories },
}

// Values returns one numeric column of the table.
func Values(table *domain.ActivityTable, column string) ([]float64, error) {
	extract, ok := extractors[column]
	if !ok {
		return nil, fmt.Errorf("column %q is not numeric", column)
	}
	out := make([]float64, table.Len())
	for i, rec := range table.Records {
		out[i] = extract(rec)
	}
	return out, nil
}

// Describe summarises every numeric column: count, mean, sample standard
// deviation, min, quartiles and max.
func Describe(table *domain.ActivityTable) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(NumericColumns))
	for _, col := range NumericColumns {
		values, _ := Values(table, col)
		summaries = append(summaries, summarize(col, values))
	}
	return summaries
}

// Lookup finds the summary of a column.
func Lookup(summaries []ColumnSummary, column string) (ColumnSummary, bool) {
	for _, s := range summaries {
		if s.Column == column {
			return s, true
		}
	}
	return ColumnSummary{}, false
}

func summarize(column string, values []float64) ColumnSummary {
	sorted := sortedCopy(values)
	s := ColumnSummary{
		Column: column,
		Count:  len(values),
		Mean:   Mean(values),
		Std:    StdDev(values),
		P25:    Quantile(sorted, 0.25),
		P50:    Quantile(sorted, 0.50),
		P75:    Quantile(sorted, 0.75),
	}
	if len(sorted) > 0 {
		s.Min = sorted[0]
		s.Max = sorted[len(sorted)-1]
	} else {
		s.Min = Quantile(sorted, 0)
		s.Max = Quantile(sorted, 1)
	}
	return s
}
