package docmodel

// Cell holds the text of a single table cell. Cells may embed nested tables
// (tables within table cells), so the model is a tree rather than a flat
// grid. Nesting depth is unbounded but shallow in practice.
type Cell struct {
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Table is tabular data in its most raw form. It can be irregular, that is,
// a varying amount of cells in each row. No cross-row schema is assumed.
type Table struct {
	TableNr int   `json:"table_nr"`
	Rows    []Row `json:"rows"`
}

// RowLengths returns the distinct cell counts across rows, in first-seen
// order. A regular table yields exactly one length.
func (t *Table) RowLengths() []int {
	seen := make(map[int]bool)
	var lengths []int
	for _, row := range t.Rows {
		n := len(row.Cells)
		if !seen[n] {
			seen[n] = true
			lengths = append(lengths, n)
		}
	}
	return lengths
}

// IsRegular reports whether every row has the same number of cells.
func (t *Table) IsRegular() bool {
	return len(t.RowLengths()) <= 1
}
