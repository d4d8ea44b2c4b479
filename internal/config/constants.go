package config

// Application constants
const (
	AppName = "fitcli activity report"

	// EnvPrefix namespaces every environment variable, e.g. FIT_REPORT_INPUT_FILE.
	EnvPrefix = "FIT"

	// DefaultDatasetFile is the one file of the 18-file Fitbit export the
	// report reads.
	DefaultDatasetFile = "dailyActivity_merged.csv"

	// DefaultExpectedParticipants is the number of consenting tracker users
	// the dataset claims to contain.
	DefaultExpectedParticipants = 30

	// Output file names inside the output directory
	AnalysisCSVFileName = "daily_activity_analysis.csv"
	WorkbookFileName    = "daily_activity_report.xlsx"
	SummaryFileName     = "daily_activity_summary.txt"
	DiagnosticsFileName = "daily_activity_diagnostics.csv"
	MetricsFileName     = "activity_report.prom"

	// File Permissions
	DirPermissions  = 0755
	FilePermissions = 0644
)
