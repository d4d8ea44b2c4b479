package exporter

import (
	"strconv"
	"time"

	"fitcli/internal/dataprocessing"
	"fitcli/pkg/contracts/domain"
)

// FormatRecord renders one record in AnalysisColumns order
func FormatRecord(rec domain.ActivityRecord) []string {
	return []string{
		rec.ID,
		formatDate(rec.Date),
		rec.DayOfTheWeek,
		formatInt(rec.TotalSteps),
		formatFloat(rec.TotalDist),
		formatFloat(rec.TrackDist),
		formatFloat(rec.LoggedDist),
		formatFloat(rec.VeryActiveDist),
		formatFloat(rec.ModerateActiveDist),
		formatFloat(rec.LightActiveDist),
		formatFloat(rec.SedentaryActiveDist),
		formatInt(rec.VeryActiveMins),
		formatInt(rec.FairlyActiveMins),
		formatInt(rec.LightlyActiveMins),
		formatInt(rec.SedentaryMins),
		formatInt(rec.TotalMins),
		formatInt(rec.TotalHours),
		formatFloat(rec.Calories),
	}
}

// formatFloat uses the shortest representation that round-trips
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatFixed formats a statistic with a fixed number of decimals
func formatFixed(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatDate(t time.Time) string {
	return t.Format(dataprocessing.OutputDateLayout)
}
