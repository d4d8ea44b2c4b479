package domain

// Source column names of the daily activity file (case-sensitive).
const (
	RawID                       = "Id"
	RawActivityDate             = "ActivityDate"
	RawDayOfTheWeek             = "DayOfTheWeek"
	RawTotalSteps               = "TotalSteps"
	RawTotalDistance            = "TotalDistance"
	RawTrackerDistance          = "TrackerDistance"
	RawLoggedActivitiesDistance = "LoggedActivitiesDistance"
	RawVeryActiveDistance       = "VeryActiveDistance"
	RawModeratelyActiveDistance = "ModeratelyActiveDistance"
	RawLightActiveDistance      = "LightActiveDistance"
	RawSedentaryActiveDistance  = "SedentaryActiveDistance"
	RawVeryActiveMinutes        = "VeryActiveMinutes"
	RawFairlyActiveMinutes      = "FairlyActiveMinutes"
	RawLightlyActiveMinutes     = "LightlyActiveMinutes"
	RawSedentaryMinutes         = "SedentaryMinutes"
	RawTotalExerciseMinutes     = "TotalExerciseMinutes"
	RawTotalExerciseHours       = "TotalExerciseHours"
	RawCalories                 = "Calories"
)

// Canonical analysis column names.
const (
	ColID                  = "id"
	ColDate                = "date"
	ColDayOfTheWeek        = "day_of_the_week"
	ColTotalSteps          = "total_steps"
	ColTotalDist           = "total_dist"
	ColTrackDist           = "track_dist"
	ColLoggedDist          = "logged_dist"
	ColVeryActiveDist      = "very_active_dist"
	ColModerateActiveDist  = "moderate_active_dist"
	ColLightActiveDist     = "light_active_dist"
	ColSedentaryActiveDist = "sedentary_active_dist"
	ColVeryActiveMins      = "very_active_mins"
	ColFairlyActiveMins    = "fairly_active_mins"
	ColLightlyActiveMins   = "lightly_active_mins"
	ColSedentaryMins       = "sedentary_mins"
	ColTotalMins           = "total_mins"
	ColTotalHours          = "total_hours"
	ColCalories            = "calories"
)

// ProjectedColumns is the ordered projection in source naming. Day of the
// week and the two totals are derived; every other entry must be present in
// the raw header.
var ProjectedColumns = []string{
	RawID, RawActivityDate, RawDayOfTheWeek, RawTotalSteps,
	RawTotalDistance, RawTrackerDistance, RawLoggedActivitiesDistance,
	RawVeryActiveDistance, RawModeratelyActiveDistance, RawLightActiveDistance, RawSedentaryActiveDistance,
	RawVeryActiveMinutes, RawFairlyActiveMinutes, RawLightlyActiveMinutes, RawSedentaryMinutes,
	RawTotalExerciseMinutes, RawTotalExerciseHours, RawCalories,
}

// DerivedColumns are projected columns computed by the builder rather than
// read from the source.
var DerivedColumns = map[string]bool{
	RawDayOfTheWeek:         true,
	RawTotalExerciseMinutes: true,
	RawTotalExerciseHours:   true,
}

// AnalysisColumns is the fixed output column order.
var AnalysisColumns = []string{
	ColID, ColDate, ColDayOfTheWeek, ColTotalSteps,
	ColTotalDist, ColTrackDist, ColLoggedDist,
	ColVeryActiveDist, ColModerateActiveDist, ColLightActiveDist, ColSedentaryActiveDist,
	ColVeryActiveMins, ColFairlyActiveMins, ColLightlyActiveMins, ColSedentaryMins,
	ColTotalMins, ColTotalHours, ColCalories,
}

// CanonicalNames maps source naming to canonical naming. One to one.
var CanonicalNames = map[string]string{
	RawID:                       ColID,
	RawActivityDate:             ColDate,
	RawDayOfTheWeek:             ColDayOfTheWeek,
	RawTotalSteps:               ColTotalSteps,
	RawTotalDistance:            ColTotalDist,
	RawTrackerDistance:          ColTrackDist,
	RawLoggedActivitiesDistance: ColLoggedDist,
	RawVeryActiveDistance:       ColVeryActiveDist,
	RawModeratelyActiveDistance: ColModerateActiveDist,
	RawLightActiveDistance:      ColLightActiveDist,
	RawSedentaryActiveDistance:  ColSedentaryActiveDist,
	RawVeryActiveMinutes:        ColVeryActiveMins,
	RawFairlyActiveMinutes:      ColFairlyActiveMins,
	RawLightlyActiveMinutes:     ColLightlyActiveMins,
	RawSedentaryMinutes:         ColSedentaryMins,
	RawTotalExerciseMinutes:     ColTotalMins,
	RawTotalExerciseHours:       ColTotalHours,
	RawCalories:                 ColCalories,
}

// RequiredSourceColumns returns the projected columns that must be read
// from the source file, in projection order.
func RequiredSourceColumns() []string {
	cols := make([]string, 0, len(ProjectedColumns))
	for _, c := range ProjectedColumns {
		if !DerivedColumns[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// Band is an activity-intensity category.
type Band string

const (
	BandVeryActive    Band = "very_active"
	BandFairlyActive  Band = "fairly_active"
	BandLightlyActive Band = "lightly_active"
	BandSedentary     Band = "sedentary"
)

// Bands lists the intensity bands from most to least intense.
var Bands = []Band{BandVeryActive, BandFairlyActive, BandLightlyActive, BandSedentary}

// Label returns the display label used in charts and reports.
func (b Band) Label() string {
	switch b {
	case BandVeryActive:
		return "Very active minutes"
	case BandFairlyActive:
		return "Fairly active minutes"
	case BandLightlyActive:
		return "Lightly active minutes"
	case BandSedentary:
		return "Sedentary minutes"
	default:
		return string(b)
	}
}

// Minutes returns the record's minutes for the band.
func (r ActivityRecord) Minutes(b Band) int64 {
	switch b {
	case BandVeryActive:
		return r.VeryActiveMins
	case BandFairlyActive:
		return r.FairlyActiveMins
	case BandLightlyActive:
		return r.LightlyActiveMins
	case BandSedentary:
		return r.SedentaryMins
	default:
		return 0
	}
}
