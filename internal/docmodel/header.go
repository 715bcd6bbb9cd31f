package docmodel

import (
	"strings"

	"github.com/kholst/figgrid/internal/errors"
)

// validHeaderNames are the column names a header table may use. What a
// column actually contains needs further processing downstream.
var validHeaderNames = map[string]bool{
	"Bits":        true,
	"Bytes":       true,
	"Description": true,
	"Definition":  true,
	"Value":       true,
}

// HeaderTable is a table that names its columns from the valid set. The
// header row is the first or second row; tables may or may not lead with a
// single-cell caption row.
type HeaderTable struct {
	Table
	NCells    int      `json:"ncells"`
	HeaderRow int      `json:"header_row"`
	Headers   []string `json:"headers"`
}

// HeaderTableFrom inspects a raw table for the header-table shape. It
// returns nil with a non-fatal error when the table is irregular, too
// short, or has no header row within its first two rows.
func HeaderTableFrom(table *Table) (*HeaderTable, *errors.FigureError) {
	lengths := table.RowLengths()
	switch {
	case len(lengths) == 1:
	case len(lengths) == 2 && len(table.Rows[0].Cells) == 1:
		// Single-cell caption row, then regular rows.
	default:
		return nil, errors.NewIrregularTable(lengths)
	}
	if len(table.Rows) < 2 {
		caption := ""
		if len(table.Rows) == 1 && len(table.Rows[0].Cells) > 0 {
			caption = table.Rows[0].Cells[0].Text
		}
		return nil, errors.NewTableCaption(caption, "insufficient number of rows")
	}

	var lastNames []string
	for i := 0; i < 2; i++ {
		names, ok := headerNames(table.Rows[i])
		if ok {
			return &HeaderTable{
				Table:     *table,
				NCells:    lengths[len(lengths)-1],
				HeaderRow: i,
				Headers:   names,
			}, nil
		}
		lastNames = names
	}

	caption := ""
	if len(table.Rows[0].Cells) > 0 {
		caption = table.Rows[0].Cells[0].Text
	}
	return nil, errors.NewTableHeader(caption, lastNames)
}

// headerNames collects the row's non-empty cell texts, reporting whether
// they all come from the valid header set.
func headerNames(row Row) ([]string, bool) {
	var names []string
	ok := true
	for _, cell := range row.Cells {
		name := strings.TrimSpace(cell.Text)
		if name == "" {
			continue
		}
		names = append(names, name)
		if !validHeaderNames[name] {
			ok = false
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	return names, ok
}
