// Package dataprocessing turns a raw daily activity file into the
// analysis-ready activity table.
//
// # Pipeline
//
//	file (.csv / .xlsx) → ReadFile → RawTable → BuildActivityTable → ActivityTable + Diagnostics
//
// BuildActivityTable runs, in order: the null audit, schema resolution of
// the required source columns, the identity audit, date coercion from
// month/day/year, projection and rename to the canonical columns, and the
// derived day of week, total minutes and total hours.
//
// # Error Handling
//
// Only three conditions abort a build, and all of them abort the whole run:
//
//	- *errors.SchemaMismatchError: a required source column is absent
//	- *errors.MalformedDateError: an activity date is not month/day/year
//	- *errors.MalformedValueError: a numeric cell holds non-numeric text
//
// Missing cells and the number of distinct identifiers are reported in
// Diagnostics and never change the table. A missing numeric cell is read as
// zero and stays visible through the null audit.
//
// # Rounding
//
// Total hours are total minutes / 60 rounded half to even, so 90 minutes is
// 2 hours and 30 minutes is 0.
package dataprocessing
