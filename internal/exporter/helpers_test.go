package exporter

import (
	"io"
	"log/slog"
	"time"

	"fitcli/internal/config"
	"fitcli/pkg/contracts/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testPaths(dir string) *config.Paths {
	cfg := config.Default()
	cfg.Report.OutputDir = dir
	paths, err := cfg.ResolvePaths()
	if err != nil {
		panic(err)
	}
	return paths
}

func record(id string, day int, steps int64, dist, calories float64, sedentary, total int64) domain.ActivityRecord {
	date := time.Date(2016, time.April, day, 0, 0, 0, 0, time.UTC)
	return domain.ActivityRecord{
		ID:                id,
		Date:              date,
		DayOfTheWeek:      date.Weekday().String(),
		TotalSteps:        steps,
		TotalDist:         dist,
		TrackDist:         dist,
		VeryActiveDist:    1.88,
		LightActiveDist:   dist - 1.88,
		VeryActiveMins:    25,
		FairlyActiveMins:  13,
		LightlyActiveMins: total - sedentary - 38,
		SedentaryMins:     sedentary,
		TotalMins:         total,
		TotalHours:        (total + 30) / 60,
		Calories:          calories,
	}
}

func testTable() *domain.ActivityTable {
	columns := make([]string, len(domain.AnalysisColumns))
	copy(columns, domain.AnalysisColumns)
	return &domain.ActivityTable{
		Columns: columns,
		Records: []domain.ActivityRecord{
			record("1503960366", 12, 13162, 8.5, 1985, 728, 1094),
			record("1503960366", 13, 10735, 6.97, 1797, 776, 1033),
			record("1624580081", 14, 1510, 0.98, 1432, 1208, 1440),
			record("1624580081", 15, 4000, 2.5, 1500, 1100, 1440),
		},
	}
}
