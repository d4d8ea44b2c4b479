package dataprocessing

import (
	"strings"

	"fitcli/pkg/contracts/domain"
)

// nullTokens are the cell texts read as missing, in addition to blanks.
// These are the default NA strings of common dataframe CSV readers.
var nullTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(cell string) bool {
	s := strings.TrimSpace(cell)
	return s == "" || nullTokens[s]
}

// AuditMissing counts missing cells per raw column, in header order. The
// table is not modified.
func AuditMissing(raw *domain.RawTable) []domain.MissingCount {
	counts := make([]domain.MissingCount, len(raw.Header))
	for i, h := range raw.Header {
		counts[i].Column = h
	}
	for r := range raw.Rows {
		for c := range raw.Header {
			if IsMissing(raw.Cell(r, c)) {
				counts[c].Count++
			}
		}
	}
	return counts
}

// CountDistinctIDs returns the number of distinct user identifiers. A
// missing identifier counts once, as a single unknown user. Returns
// 0 when the identifier column is absent.
func CountDistinctIDs(raw *domain.RawTable) int {
	idx := raw.ColumnIndex(domain.RawID)
	if idx < 0 {
		return 0
	}
	seen := make(map[string]struct{})
	for r := range raw.Rows {
		id := strings.TrimSpace(raw.Cell(r, idx))
		if IsMissing(id) {
			id = ""
		}
		seen[id] = struct{}{}
	}
	return len(seen)
}
