package docmodel

import (
	"encoding/json"
	"sort"

	"github.com/kholst/figgrid/internal/errors"
)

// TableDocument is the rawest extraction stage: the tables pulled from a
// source document, before figures are identified.
type TableDocument struct {
	Meta   DocumentMeta `json:"meta"`
	Tables []Table      `json:"tables"`
}

// LoadTables parses a table document from JSON bytes. The fatal conditions
// match Load.
func LoadTables(data []byte) (*TableDocument, error) {
	if len(data) == 0 {
		return nil, errors.NewDocumentInvalid("empty input document")
	}

	var doc TableDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewDocumentInvalid("cannot parse document: " + err.Error())
	}
	if doc.Meta.Version == "" {
		return nil, errors.NewDocumentInvalid("document meta is missing version")
	}

	return &doc, nil
}

// ExtractFigures identifies the figures of a table document. Table-of-figures
// entries become figure stubs carrying caption and page number; captioned
// tables become figures owning their table; the two are merged by figure
// number, ordered ascending.
//
// Tables without a parsable caption and duplicate figure numbers are reported
// as non-fatal errors alongside the document.
func ExtractFigures(doc *TableDocument) (*FigureDocument, []*errors.FigureError) {
	out := &FigureDocument{Meta: doc.Meta}
	byNr := make(map[int]*Figure)
	var numbers []int
	var errs []*errors.FigureError

	for i := range doc.Tables {
		table := &doc.Tables[i]

		if stubs := tableOfFigures(table); stubs != nil {
			for _, stub := range stubs {
				existing := byNr[stub.FigureNr]
				if existing == nil {
					byNr[stub.FigureNr] = stub
					numbers = append(numbers, stub.FigureNr)
					continue
				}
				if existing.PageNr == nil {
					existing.PageNr = stub.PageNr
				}
			}
			continue
		}

		fig, err := captionFigure(table)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		existing := byNr[fig.FigureNr]
		if existing == nil {
			byNr[fig.FigureNr] = fig
			numbers = append(numbers, fig.FigureNr)
			continue
		}
		if existing.Table != nil {
			errs = append(errs, errors.NewTableCaption(fig.Caption, "duplicate figure number"))
			continue
		}
		existing.Caption = fig.Caption
		existing.Description = fig.Description
		existing.Table = fig.Table
	}

	sort.Ints(numbers)
	for _, nr := range numbers {
		out.Figures = append(out.Figures, *byNr[nr])
	}
	return out, errs
}

// tableOfFigures recognizes a single-column table of table-of-figures
// entries. Rows that do not parse (headings) are skipped; at least one entry
// must carry a page number for the table to qualify, since page numbers are
// what sets these entries apart from plain captions.
func tableOfFigures(table *Table) []*Figure {
	var stubs []*Figure
	withPage := false
	for _, row := range table.Rows {
		if len(row.Cells) != 1 {
			return nil
		}
		fig := FigureFromTableOfFigures(row.Cells[0].Text)
		if fig == nil {
			continue
		}
		if fig.PageNr != nil {
			withPage = true
		}
		stubs = append(stubs, fig)
	}
	if !withPage {
		return nil
	}
	return stubs
}

// captionFigure builds a figure from a captioned table. The first cell of
// the first row must hold the caption.
func captionFigure(table *Table) (*Figure, *errors.FigureError) {
	if len(table.Rows) == 0 || len(table.Rows[0].Cells) == 0 {
		return nil, errors.NewTableCaption("", "table has no caption row")
	}
	text := table.Rows[0].Cells[0].Text
	fig := FigureFromCaption(text)
	if fig == nil {
		return nil, errors.NewTableCaption(text, "caption does not match figure conventions")
	}
	fig.Table = table
	return fig, nil
}
