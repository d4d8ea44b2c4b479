// Package analytics computes the read-only statistics the activity report
// is built from: per-column descriptive summaries, weekday usage counts,
// intensity band shares, reference lines and correlations.
//
// Nothing here mutates the activity table.
package analytics
