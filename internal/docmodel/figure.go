// Package docmodel defines the as-extracted representation of a figure
// document: captioned figures and their raw, possibly irregular tables.
// The types carry data only; interpretation happens downstream.
package docmodel

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kholst/figgrid/internal/errors"
)

// FormatVersion is the figure document format version figgrid emits.
const FormatVersion = "0.3.0"

// Figure is a captioned table as referenced from a table of figures in the
// source document.
//
// This is a minimally enriched representation: instances are constructed by
// matching the caption conventions ("Figure N: description") found in table
// first-rows and table-of-figures entries. The page number is only
// retrievable from table-of-figures captions and thus optional. A Figure
// without a table is non-tabular.
type Figure struct {
	// FigureNr is the figure number as stated in the source document.
	// Unique and positive; ordering follows document order.
	FigureNr    int    `json:"figure_nr"`
	Caption     string `json:"caption"`
	Description string `json:"description"`

	PageNr *int   `json:"page_nr,omitempty"`
	Table  *Table `json:"table,omitempty"`
}

// DocumentMeta identifies a document: format version plus the stem of the
// source filename.
type DocumentMeta struct {
	Version string `json:"version"`
	Stem    string `json:"stem"`
}

// FigureDocument is the input contract of the categorization pipeline: an
// ordered sequence of figures as extracted from one source document.
// Immutable after extraction.
type FigureDocument struct {
	Meta    DocumentMeta `json:"meta"`
	Figures []Figure     `json:"figures"`
}

// Caption conventions. A table-of-figures entry trails with a page number,
// a table first-row caption does not.
var (
	reTableOfFigures = regexp.MustCompile(`^(Figure\s+(\d+)\s*:\s*(.*?))\s*(\d+)?$`)
	reTableRow       = regexp.MustCompile(`^(Figure\s+(\d+)\s*:\s*(.*?))$`)
)

// FigureFromCaption parses a table first-row caption into a Figure.
// Returns nil if the text does not match the caption convention.
func FigureFromCaption(text string) *Figure {
	m := reTableRow.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	nr, err := strconv.Atoi(m[2])
	if err != nil || nr <= 0 {
		return nil
	}
	return &Figure{
		FigureNr:    nr,
		Caption:     strings.TrimSpace(m[1]),
		Description: strings.TrimSpace(m[3]),
	}
}

// FigureFromTableOfFigures parses a table-of-figures entry into a Figure,
// including the trailing page number when present.
func FigureFromTableOfFigures(text string) *Figure {
	m := reTableOfFigures.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil
	}
	nr, err := strconv.Atoi(m[2])
	if err != nil || nr <= 0 {
		return nil
	}
	fig := &Figure{
		FigureNr:    nr,
		Caption:     strings.TrimSpace(m[1]),
		Description: strings.TrimSpace(m[3]),
	}
	if m[4] != "" {
		if page, err := strconv.Atoi(m[4]); err == nil {
			fig.PageNr = &page
		}
	}
	return fig
}

// Load parses a figure document from JSON bytes.
//
// A document that is empty, null, or missing its meta block is the one fatal
// condition in the pipeline and returns DOCUMENT_INVALID.
func Load(data []byte) (*FigureDocument, error) {
	if len(data) == 0 {
		return nil, errors.NewDocumentInvalid("empty input document")
	}

	var doc FigureDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewDocumentInvalid("cannot parse document: " + err.Error())
	}
	if doc.Meta.Version == "" {
		return nil, errors.NewDocumentInvalid("document meta is missing version")
	}

	return &doc, nil
}
