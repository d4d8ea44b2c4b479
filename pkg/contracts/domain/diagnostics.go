package domain

// MissingCount is the number of missing cells in one raw column.
type MissingCount struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// Diagnostics is the side-channel returned next to the analysis table.
// Nothing in it alters the table; it exists for human review.
type Diagnostics struct {
	RowCount      int            `json:"row_count"`
	ColumnCount   int            `json:"column_count"`
	MissingValues []MissingCount `json:"missing_values"`
	DistinctIDs   int            `json:"distinct_ids"`
}

// TotalMissing sums missing cells over all columns.
func (d *Diagnostics) TotalMissing() int {
	total := 0
	for _, m := range d.MissingValues {
		total += m.Count
	}
	return total
}

// HasMissing reports whether any column had a missing cell.
func (d *Diagnostics) HasMissing() bool {
	return d.TotalMissing() > 0
}

// MissingFor returns the missing count of a column, 0 when unknown.
func (d *Diagnostics) MissingFor(column string) int {
	for _, m := range d.MissingValues {
		if m.Column == column {
			return m.Count
		}
	}
	return 0
}

// MissingByColumn returns the null audit as a column → count map.
func (d *Diagnostics) MissingByColumn() map[string]int {
	m := make(map[string]int, len(d.MissingValues))
	for _, mc := range d.MissingValues {
		m[mc.Column] = mc.Count
	}
	return m
}
