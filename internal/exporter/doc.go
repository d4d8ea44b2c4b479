// Package exporter renders a cleaned activity table.
//
// CSVWriter writes the analysis table in canonical column order, with an
// optional UTF-8 BOM for Excel. WorkbookExporter builds an .xlsx report
// holding the table, its descriptive statistics and four native charts.
// SummaryWriter produces the plain-text narrative.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(paths, logger)
//	err := csvWriter.WriteActivityTable(ctx, paths.AnalysisCSV, table, true)
//
//	report := analytics.Analyze(table)
//	err = exporter.NewWorkbookExporter(paths, logger).Export(ctx, paths.Workbook, table, report)
package exporter
