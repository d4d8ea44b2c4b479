package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcli/pkg/contracts/domain"
)

func record(day time.Time, steps int64, calories float64, very, fairly, lightly, sedentary int64) domain.ActivityRecord {
	total := very + fairly + lightly + sedentary
	return domain.ActivityRecord{
		ID:                "1503960366",
		Date:              day,
		DayOfTheWeek:      day.Weekday().String(),
		TotalSteps:        steps,
		VeryActiveMins:    very,
		FairlyActiveMins:  fairly,
		LightlyActiveMins: lightly,
		SedentaryMins:     sedentary,
		TotalMins:         total,
		TotalHours:        int64(math.RoundToEven(float64(total) / 60)),
		Calories:          calories,
	}
}

func sampleTable() *domain.ActivityTable {
	tue := time.Date(2016, 4, 12, 0, 0, 0, 0, time.UTC)
	return &domain.ActivityTable{
		Columns: domain.AnalysisColumns,
		Records: []domain.ActivityRecord{
			record(tue, 100, 1000, 10, 0, 50, 540),
			record(tue.AddDate(0, 0, 1), 200, 2000, 20, 10, 60, 510),
			record(tue.AddDate(0, 0, 7), 300, 3000, 30, 20, 70, 480),
		},
	}
}

func TestDescribe(t *testing.T) {
	summaries := Describe(sampleTable())
	require.Len(t, summaries, len(NumericColumns))

	cols := make([]string, len(summaries))
	for i, s := range summaries {
		cols[i] = s.Column
	}
	assert.Equal(t, NumericColumns, cols)
	assert.NotContains(t, cols, domain.ColID)

	steps, ok := Lookup(summaries, domain.ColTotalSteps)
	require.True(t, ok)
	assert.Equal(t, 3, steps.Count)
	assert.Equal(t, 200.0, steps.Mean)
	assert.InDelta(t, 100.0, steps.Std, 1e-9)
	assert.Equal(t, 100.0, steps.Min)
	assert.Equal(t, 150.0, steps.P25)
	assert.Equal(t, 200.0, steps.P50)
	assert.Equal(t, 250.0, steps.P75)
	assert.Equal(t, 300.0, steps.Max)

	hours, ok := Lookup(summaries, domain.ColTotalHours)
	require.True(t, ok)
	assert.Equal(t, 10.0, hours.Mean)

	_, ok = Lookup(summaries, "nope")
	assert.False(t, ok)
}

func TestDescribe_EmptyTable(t *testing.T) {
	summaries := Describe(&domain.ActivityTable{Columns: domain.AnalysisColumns})
	require.Len(t, summaries, len(NumericColumns))
	assert.Equal(t, 0, summaries[0].Count)
	assert.True(t, math.IsNaN(summaries[0].Mean))
}

func TestValues_UnknownColumn(t *testing.T) {
	_, err := Values(sampleTable(), domain.ColDayOfTheWeek)
	assert.Error(t, err)
}

func TestWeekdayFrequency(t *testing.T) {
	got := WeekdayFrequency(sampleTable())

	assert.Equal(t, []WeekdayCount{
		{Day: "Monday", Count: 0},
		{Day: "Tuesday", Count: 2},
		{Day: "Wednesday", Count: 1},
		{Day: "Thursday", Count: 0},
		{Day: "Friday", Count: 0},
		{Day: "Saturday", Count: 0},
		{Day: "Sunday", Count: 0},
	}, got)

	ranked := RankWeekdays(got)
	assert.Equal(t, "Tuesday", ranked[0].Day)
	assert.Equal(t, "Wednesday", ranked[1].Day)
	assert.Equal(t, "Monday", ranked[2].Day)
	assert.Equal(t, "Monday", got[0].Day, "ranking must not reorder its input")
}

func TestMinuteBandShare(t *testing.T) {
	got := MinuteBandShare(sampleTable())
	require.Len(t, got, 4)

	assert.Equal(t, domain.BandVeryActive, got[0].Band)
	assert.Equal(t, "Very active minutes", got[0].Label)
	assert.Equal(t, int64(60), got[0].Minutes)
	assert.Equal(t, int64(30), got[1].Minutes)
	assert.Equal(t, int64(180), got[2].Minutes)
	assert.Equal(t, int64(1530), got[3].Minutes)

	total := 0.0
	for _, b := range got {
		total += b.Percent
	}
	assert.InDelta(t, 100.0, total, 1e-9)
	assert.InDelta(t, 85.0, got[3].Percent, 1e-9)
}

func TestMinuteBandShare_NoMinutes(t *testing.T) {
	got := MinuteBandShare(&domain.ActivityTable{})
	for _, b := range got {
		assert.Equal(t, 0.0, b.Percent)
	}
}

func TestAveragesAndCorrelations(t *testing.T) {
	table := sampleTable()

	avg := Averages(table)
	assert.Equal(t, 200.0, avg.Steps)
	assert.Equal(t, 2000.0, avg.Calories)
	assert.Equal(t, 10.0, avg.TotalHours)
	assert.InDelta(t, 510.0/60, avg.SedentaryHours, 1e-9)

	corr := Correlate(table)
	assert.InDelta(t, 1.0, corr.StepsCalories, 1e-12)
	assert.True(t, math.IsNaN(corr.HoursCalories), "constant hours have no correlation")

	report := Analyze(table)
	assert.Len(t, report.Summaries, len(NumericColumns))
	assert.Len(t, report.Weekdays, 7)
	assert.Len(t, report.Bands, 4)
	assert.Equal(t, avg, report.Averages)
	assert.Equal(t, 200.0, report.MedianSteps)
}
