// Package services implements the report run: it locates the input file,
// loads and cleans it into the activity table, computes the usage
// statistics and writes every output artifact.
//
// # Stages
//
// A run is a fixed sequence of stages, each traced as its own span and timed
// into the stage duration histogram:
//
//	resolve  pick the input file (explicit path or dataset directory lookup)
//	load     validate and read the CSV or Excel file
//	build    clean, rename and derive the activity table
//	analyze  descriptive statistics, weekday usage, band shares, correlations
//	export   analysis CSV, report workbook and narrative summary
//
// The export writers only read the finished table, so they run concurrently
// under an errgroup. A failure in any stage before export leaves no output
// files behind.
//
// # Usage
//
//	svc := services.NewReportService(cfg, paths,
//	    services.WithLogger(logger),
//	    services.WithTracer(providers.Tracer),
//	    services.WithMetrics(metrics))
//	result, err := svc.Run(ctx)
package services
