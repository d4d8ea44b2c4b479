// Package files locates input files inside a Fitbit dataset directory.
//
// The public Fitbit export ships eighteen CSV files; the report reads one of
// them. Discovery finds that file by name, case-insensitively, and reports
// the rest so a run log shows what else was available.
//
//	discovery := files.NewDiscovery("")
//	input, others, err := discovery.FindDatasetFile("Fitabase Data 4.12.16-5.12.16", "dailyActivity_merged.csv")
package files
