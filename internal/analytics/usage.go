package analytics

import (
	"sort"
	"time"

	"fitcli/pkg/contracts/domain"
)

// WeekOrder lists weekdays Monday first, the order of the usage histogram.
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// WeekdayCount is how many records were logged on one weekday.
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// WeekdayFrequency counts records per day of the week. All seven days are
// present, Monday first.
func WeekdayFrequency(table *domain.ActivityTable) []WeekdayCount {
	counts := make(map[string]int, 7)
	for _, rec := range table.Records {
		counts[rec.DayOfTheWeek]++
	}
	out := make([]WeekdayCount, len(WeekOrder))
	for i, day := range WeekOrder {
		out[i] = WeekdayCount{Day: day.String(), Count: counts[day.String()]}
	}
	return out
}

// RankWeekdays returns the counts busiest first. Ties keep week order.
func RankWeekdays(counts []WeekdayCount) []WeekdayCount {
	ranked := make([]WeekdayCount, len(counts))
	copy(ranked, counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// BandShare is the total minutes of one intensity band and its share of all
// logged minutes.
type BandShare struct {
	Band    domain.Band `json:"band"`
	Label   string      `json:"label"`
	Minutes int64       `json:"minutes"`
	Percent float64     `json:"percent"`
}

// MinuteBandShare sums minutes per intensity band over the table.
func MinuteBandShare(table *domain.ActivityTable) []BandShare {
	out := make([]BandShare, len(domain.Bands))
	var total int64
	for i, band := range domain.Bands {
		out[i] = BandShare{Band: band, Label: band.Label()}
		for _, rec := range table.Records {
			out[i].Minutes += rec.Minutes(band)
		}
		total += out[i].Minutes
	}
	if total > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Minutes) / float64(total) * 100
		}
	}
	return out
}

// ReferenceLines are the averages drawn across the scatter charts.
type ReferenceLines struct {
	Steps          float64 `json:"steps"`
	Calories       float64 `json:"calories"`
	TotalHours     float64 `json:"total_hours"`
	SedentaryHours float64 `json:"sedentary_hours"`
}

// Averages computes the scatter chart reference lines from the table.
func Averages(table *domain.ActivityTable) ReferenceLines {
	steps, _ := Values(table, domain.ColTotalSteps)
	calories, _ := Values(table, domain.ColCalories)
	hours, _ := Values(table, domain.ColTotalHours)
	sedentary, _ := Values(table, domain.ColSedentaryMins)
	return ReferenceLines{
		Steps:          Mean(steps),
		Calories:       Mean(calories),
		TotalHours:     Mean(hours),
		SedentaryHours: Mean(sedentary) / 60,
	}
}

// Correlations holds the Pearson coefficients behind the two scatter charts.
type Correlations struct {
	StepsCalories float64 `json:"steps_calories"`
	HoursCalories float64 `json:"hours_calories"`
}

// Correlate computes the scatter chart correlations.
func Correlate(table *domain.ActivityTable) Correlations {
	steps, _ := Values(table, domain.ColTotalSteps)
	calories, _ := Values(table, domain.ColCalories)
	hours, _ := Values(table, domain.ColTotalHours)
	return Correlations{
		StepsCalories: Pearson(steps, calories),
		HoursCalories: Pearson(hours, calories),
	}
}

// Report bundles everything the exporters render.
type Report struct {
	Summaries    []ColumnSummary `json:"summaries"`
	Weekdays     []WeekdayCount  `json:"weekdays"`
	Bands        []BandShare     `json:"bands"`
	Averages     ReferenceLines  `json:"averages"`
	MedianSteps  float64         `json:"median_steps"`
	Correlations Correlations    `json:"correlations"`
}

// Analyze runs every statistic over the table.
func Analyze(table *domain.ActivityTable) *Report {
	steps, _ := Values(table, domain.ColTotalSteps)
	return &Report{
		Summaries:    Describe(table),
		Weekdays:     WeekdayFrequency(table),
		Bands:        MinuteBandShare(table),
		Averages:     Averages(table),
		MedianSteps:  Median(steps),
		Correlations: Correlate(table),
	}
}
