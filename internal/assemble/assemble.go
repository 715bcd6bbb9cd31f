// Package assemble merges classification and grid extraction into the
// categorized figure document, the externally persisted artifact.
//
// Assembly is figure-isolated: any failure while processing one figure is
// recorded against that figure's number and processing continues, so a
// single malformed figure never costs the rest of the document.
package assemble

import (
	"strconv"

	"github.com/kholst/figgrid/internal/classify"
	"github.com/kholst/figgrid/internal/docmodel"
	"github.com/kholst/figgrid/internal/errors"
	"github.com/kholst/figgrid/internal/grid"
)

// DataPointer figures describe the DPTR field, which spans command words 6
// through 9.
const (
	dataPointerLower = 6
	dataPointerUpper = 9
)

// CategorizedFigure is a figure enriched with its rule captures and, for
// grid-bearing categories, the extracted bit-field grids. Sqe and Cqe are
// two independent grids per command; Offsets holds the grid of byte-offset
// tables.
type CategorizedFigure struct {
	docmodel.Figure

	CommandName       string `json:"command_name,omitempty"`
	CommandSetName    string `json:"command_set_name,omitempty"`
	CommandSpan       string `json:"command_span,omitempty"`
	CommandDword      string `json:"command_dword,omitempty"`
	CommandDwordLower string `json:"command_dword_lower,omitempty"`
	CommandDwordUpper string `json:"command_dword_upper,omitempty"`

	Sqe     []grid.LayoutRow `json:"sqe,omitempty"`
	Cqe     []grid.LayoutRow `json:"cqe,omitempty"`
	Offsets []grid.LayoutRow `json:"offsets,omitempty"`
}

// CategorizedDocumentMeta extends the document meta with the figure numbers
// that categorized as tabular, in document order.
type CategorizedDocumentMeta struct {
	Version string `json:"version"`
	Stem    string `json:"stem"`
	Tabular []int  `json:"tabular"`
}

// CategorizedFigureDocument partitions a document's figures by category.
// Figures retain document order within their bucket. Errors maps figure
// numbers (as decimal strings) to human-readable messages; every figure of
// the input appears in exactly one bucket regardless of errors.
type CategorizedFigureDocument struct {
	Meta CategorizedDocumentMeta `json:"meta"`

	Acronyms                      []CategorizedFigure `json:"acronyms,omitempty"`
	IoControllerCommandSetSupport []CategorizedFigure `json:"io_controller_command_set_support,omitempty"`
	CommandSetOpcodes             []CategorizedFigure `json:"command_set_opcodes,omitempty"`
	CommandSupportRequirements    []CategorizedFigure `json:"command_support_requirements,omitempty"`
	CommandSqeDword               []CategorizedFigure `json:"command_sqe_dword,omitempty"`
	CommandSqeDwords              []CategorizedFigure `json:"command_sqe_dwords,omitempty"`
	CommandSqeDataPointer         []CategorizedFigure `json:"command_sqe_data_pointer,omitempty"`
	CommandCqeDword               []CategorizedFigure `json:"command_cqe_dword,omitempty"`
	CnsValues                     []CategorizedFigure `json:"cns_values,omitempty"`
	GeneralCommandStatusValues    []CategorizedFigure `json:"general_command_status_values,omitempty"`
	CommandSpecificStatusValues   []CategorizedFigure `json:"command_specific_status_values,omitempty"`
	FeatureIdentifiers            []CategorizedFigure `json:"feature_identifiers,omitempty"`
	FeatureSupport                []CategorizedFigure `json:"feature_support,omitempty"`
	LogPageIdentifiers            []CategorizedFigure `json:"log_page_identifiers,omitempty"`
	Offset                        []CategorizedFigure `json:"offset,omitempty"`
	PropertyDefinition            []CategorizedFigure `json:"property_definition,omitempty"`
	Uncategorized                 []CategorizedFigure `json:"uncategorized,omitempty"`
	Nontabular                    []CategorizedFigure `json:"nontabular,omitempty"`

	Errors map[string][]string `json:"errors"`
}

// Assemble classifies every figure of the document and extracts grids for
// the grid-bearing categories. The only fatal condition is a nil document;
// everything else is recorded in the returned document's error map.
func Assemble(doc *docmodel.FigureDocument) (*CategorizedFigureDocument, error) {
	if doc == nil {
		return nil, errors.NewDocumentInvalid("nil figure document")
	}
	if doc.Meta.Version == "" {
		return nil, errors.NewDocumentInvalid("document meta is missing version")
	}

	out := &CategorizedFigureDocument{
		Meta: CategorizedDocumentMeta{
			Version: doc.Meta.Version,
			Stem:    doc.Meta.Stem,
		},
		Errors: make(map[string][]string),
	}

	for i := range doc.Figures {
		figure := &doc.Figures[i]
		category, cf, errs := processFigure(figure)
		for _, e := range errs {
			out.Record(figure.FigureNr, e)
		}
		out.add(category, cf)
	}

	return out, nil
}

// processFigure classifies and, when applicable, grid-extracts one figure.
// Panics are contained here so one malformed figure cannot abort assembly.
func processFigure(figure *docmodel.Figure) (category classify.Category, cf CategorizedFigure, errs []*errors.FigureError) {
	defer func() {
		if r := recover(); r != nil {
			category = classify.Uncategorized
			if figure.Table == nil {
				category = classify.Nontabular
			}
			cf = CategorizedFigure{Figure: *figure}
			errs = []*errors.FigureError{errors.NewFigureProcessing(figure.FigureNr, r)}
		}
	}()

	category, captures := classify.Classify(figure)
	cf = CategorizedFigure{
		Figure:            *figure,
		CommandName:       captures["command_name"],
		CommandSetName:    captures["command_set_name"],
		CommandSpan:       captures["command_span"],
		CommandDword:      captures["command_dword"],
		CommandDwordLower: captures["command_dword_lower"],
		CommandDwordUpper: captures["command_dword_upper"],
	}

	if category.GridBearing() && figure.Table != nil {
		errs = extractGrids(category, &cf)
	}

	return category, cf, errs
}

// extractGrids runs normalize, build and validate for one grid-bearing
// figure, populating its Sqe/Cqe/Offsets slices.
func extractGrids(category classify.Category, cf *CategorizedFigure) []*errors.FigureError {
	var errs []*errors.FigureError

	// Grid figures conventionally carry a Bits/Description header row.
	// Unexpected column names are worth a finding; irregular shapes are
	// common (caption rows, spanner cells) and left to Normalize.
	if _, hdrErr := docmodel.HeaderTableFrom(cf.Table); hdrErr != nil && hdrErr.Code == errors.ErrTableHeader {
		errs = append(errs, hdrErr)
	}

	candidates, normErrs := grid.Normalize(cf.Table)
	errs = append(errs, normErrs...)
	alias := AliasFromName(cf.CommandName)

	switch category {
	case classify.CommandSqeDword:
		word, err := atoiCapture(cf.CommandDword)
		if err != nil {
			return append(errs, err)
		}
		row, rowErrs := grid.BuildWordRow(alias, word, word, candidates)
		errs = append(errs, rowErrs...)
		if row != nil {
			cf.Sqe = append(cf.Sqe, *row)
		}

	case classify.CommandSqeDwords:
		lower, err := atoiCapture(cf.CommandDwordLower)
		if err != nil {
			return append(errs, err)
		}
		upper, err := atoiCapture(cf.CommandDwordUpper)
		if err != nil {
			return append(errs, err)
		}
		row, rowErrs := grid.BuildWordRow(alias, lower, upper, candidates)
		errs = append(errs, rowErrs...)
		if row != nil {
			cf.Sqe = append(cf.Sqe, *row)
		}

	case classify.CommandSqeDataPointer:
		row, rowErrs := grid.BuildWordRow(alias, dataPointerLower, dataPointerUpper, candidates)
		errs = append(errs, rowErrs...)
		if row != nil {
			cf.Sqe = append(cf.Sqe, *row)
		}

	case classify.CommandCqeDword:
		word, err := atoiCapture(cf.CommandDword)
		if err != nil {
			return append(errs, err)
		}
		row, rowErrs := grid.BuildWordRow(alias, word, word, candidates)
		errs = append(errs, rowErrs...)
		if row != nil {
			cf.Cqe = append(cf.Cqe, *row)
		}

	case classify.Offset:
		g, buildErrs := grid.Build(candidates)
		errs = append(errs, buildErrs...)
		cf.Offsets = g.Rows
		errs = append(errs, grid.Validate(g)...)
		return errs
	}

	if len(cf.Sqe) > 0 {
		errs = append(errs, grid.Validate(&grid.Grid{Rows: cf.Sqe})...)
	}
	if len(cf.Cqe) > 0 {
		errs = append(errs, grid.Validate(&grid.Grid{Rows: cf.Cqe})...)
	}

	return errs
}

// Record attaches an error message to the figure's error list. Figure
// number 0 holds document-level findings, such as figure extraction errors
// raised before any figure number is known.
func (d *CategorizedFigureDocument) Record(figureNr int, err *errors.FigureError) {
	key := strconv.Itoa(figureNr)
	d.Errors[key] = append(d.Errors[key], err.Error())
}

// add appends the figure to its category bucket, preserving document order.
func (d *CategorizedFigureDocument) add(category classify.Category, cf CategorizedFigure) {
	if category != classify.Uncategorized && category != classify.Nontabular {
		d.Meta.Tabular = append(d.Meta.Tabular, cf.FigureNr)
	}

	switch category {
	case classify.Acronyms:
		d.Acronyms = append(d.Acronyms, cf)
	case classify.IoControllerCommandSetSupport:
		d.IoControllerCommandSetSupport = append(d.IoControllerCommandSetSupport, cf)
	case classify.CommandSetOpcodes:
		d.CommandSetOpcodes = append(d.CommandSetOpcodes, cf)
	case classify.CommandSupportRequirements:
		d.CommandSupportRequirements = append(d.CommandSupportRequirements, cf)
	case classify.CommandSqeDword:
		d.CommandSqeDword = append(d.CommandSqeDword, cf)
	case classify.CommandSqeDwords:
		d.CommandSqeDwords = append(d.CommandSqeDwords, cf)
	case classify.CommandSqeDataPointer:
		d.CommandSqeDataPointer = append(d.CommandSqeDataPointer, cf)
	case classify.CommandCqeDword:
		d.CommandCqeDword = append(d.CommandCqeDword, cf)
	case classify.CnsValues:
		d.CnsValues = append(d.CnsValues, cf)
	case classify.GeneralCommandStatusValues:
		d.GeneralCommandStatusValues = append(d.GeneralCommandStatusValues, cf)
	case classify.CommandSpecificStatusValues:
		d.CommandSpecificStatusValues = append(d.CommandSpecificStatusValues, cf)
	case classify.FeatureIdentifiers:
		d.FeatureIdentifiers = append(d.FeatureIdentifiers, cf)
	case classify.FeatureSupport:
		d.FeatureSupport = append(d.FeatureSupport, cf)
	case classify.LogPageIdentifiers:
		d.LogPageIdentifiers = append(d.LogPageIdentifiers, cf)
	case classify.Offset:
		d.Offset = append(d.Offset, cf)
	case classify.PropertyDefinition:
		d.PropertyDefinition = append(d.PropertyDefinition, cf)
	case classify.Uncategorized:
		d.Uncategorized = append(d.Uncategorized, cf)
	case classify.Nontabular:
		d.Nontabular = append(d.Nontabular, cf)
	}
}

// atoiCapture converts a numeric rule capture, reporting decode failures in
// the figure's error list rather than failing assembly.
func atoiCapture(s string) (int, *errors.FigureError) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewRowDecode(0, "cannot decode word number "+strconv.Quote(s))
	}
	return n, nil
}
