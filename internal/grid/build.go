package grid

import (
	"fmt"
	"strings"

	"github.com/kholst/figgrid/internal/errors"
)

// WordBytes is the width of the addressing unit used by command layout
// figures: offsets like "Command Dword 10" count 4-byte words.
const WordBytes = 4

// Build converts byte-offset layout-row candidates into a Grid. Each
// candidate becomes one layout row whose fields are parsed from its
// description cells; rows that cannot be decoded are dropped and reported.
func Build(candidates []RowCandidate) (*Grid, []*errors.FigureError) {
	g := &Grid{}
	var errs []*errors.FigureError

	for _, cand := range candidates {
		row, rowErrs := buildRow(cand)
		errs = append(errs, rowErrs...)
		if row != nil {
			g.Rows = append(g.Rows, *row)
		}
	}

	return g, errs
}

// BuildWordRow converts a word-addressed figure table into a single layout
// row spanning words [lower, upper]. The candidates are the table's bit
// rows: each carries a bit range in its leading cell and the field name and
// description in the remaining cells.
func BuildWordRow(alias string, lower, upper int, candidates []RowCandidate) (*LayoutRow, []*errors.FigureError) {
	row := &LayoutRow{
		CommandAlias: alias,
		NBytes:       (upper - lower + 1) * WordBytes,
		Lower:        lower,
		Upper:        upper,
	}

	var errs []*errors.FigureError
	var specs []fieldSpec

	for _, cand := range candidates {
		spec, ok := parseCells(cand.Descriptions)
		if !ok {
			errs = append(errs, errors.NewFieldDecode(cand.Index, firstNonEmpty(cand.Descriptions)))
			continue
		}
		spec.HasRange = true
		spec.Lower = cand.Lower
		spec.Upper = cand.Upper
		specs = append(specs, spec)
	}

	fields, fillErrs, ok := fill(row.TotalBits(), specs)
	errs = append(errs, fillErrs...)
	if !ok {
		errs = append(errs, errors.NewRowDecode(0, "explicit fields are not in descending bit order"))
		return nil, errs
	}
	row.Fields = fields

	return row, errs
}

// buildRow converts one byte-offset candidate into a layout row.
func buildRow(cand RowCandidate) (*LayoutRow, []*errors.FigureError) {
	row := &LayoutRow{
		NBytes: cand.Upper - cand.Lower + 1,
		Lower:  cand.Lower,
		Upper:  cand.Upper,
	}

	var errs []*errors.FigureError
	var specs []fieldSpec
	var failed []string
	explicit := false

	for _, text := range cand.Descriptions {
		for _, line := range splitLines(text) {
			spec, ok := parseFieldLine(line)
			if !ok {
				failed = append(failed, line)
				continue
			}
			if spec.HasRange {
				explicit = true
			}
			specs = append(specs, spec)
		}
	}

	if !explicit {
		// No bit sub-ranges stated anywhere: the row holds exactly one
		// implicit field spanning the whole byte range. The first parsed
		// cell names it; a trailing cell becomes its description.
		spec, ok := parseCells(cand.Descriptions)
		if !ok {
			errs = append(errs, errors.NewFieldDecode(cand.Index, firstNonEmpty(cand.Descriptions)))
			return nil, errs
		}
		row.Fields = []Field{spec.field(0, row.TotalBits()-1)}
		if spec.StatedBits != nil && *spec.StatedBits != row.TotalBits() {
			errs = append(errs, widthMismatch(spec.Name, *spec.StatedBits, row.TotalBits()))
		}
		return row, errs
	}

	// Explicit mode: every line must decode as a field. Lines without a
	// bit range have no defined position next to explicit sub-ranges.
	for _, line := range failed {
		errs = append(errs, errors.NewFieldDecode(cand.Index, line))
	}
	for _, spec := range specs {
		if !spec.HasRange {
			errs = append(errs, errors.NewFieldDecode(cand.Index, spec.Name))
		}
	}
	specs = keepExplicit(specs)

	fields, fillErrs, ok := fill(row.TotalBits(), specs)
	errs = append(errs, fillErrs...)
	if !ok {
		errs = append(errs, errors.NewRowDecode(cand.Index, "explicit fields are not in descending bit order"))
		return nil, errs
	}
	row.Fields = fields

	return row, errs
}

// fill walks the full bit range top-down, materializing explicit fields and
// synthesizing Reserved fields wherever an explicit field does not begin
// exactly where the previous one ended. This reproduces the document
// convention of only calling out named bits and leaving the rest implicit.
//
// The specs must already be in descending bit order as stated in the source;
// out-of-order input returns ok=false rather than guessing intent.
func fill(totalBits int, specs []fieldSpec) ([]Field, []*errors.FigureError, bool) {
	var errs []*errors.FigureError

	for i := 1; i < len(specs); i++ {
		if specs[i].Upper >= specs[i-1].Upper {
			return nil, errs, false
		}
	}

	var fields []Field
	expected := totalBits - 1

	for _, spec := range specs {
		if spec.Upper < expected {
			fields = append(fields, reserved(spec.Upper+1, expected))
		}
		f := spec.field(spec.Lower, spec.Upper)
		if spec.StatedBits != nil && *spec.StatedBits != f.NBits {
			errs = append(errs, widthMismatch(f.Name, *spec.StatedBits, f.NBits))
		}
		fields = append(fields, f)
		expected = spec.Lower - 1
	}

	if expected >= 0 {
		fields = append(fields, reserved(0, expected))
	}

	return fields, errs, true
}

// parseCells parses the implicit single-field form spread across cells: the
// first parseable cell supplies name and acronym, a later non-empty cell the
// long description.
func parseCells(cells []string) (fieldSpec, bool) {
	for i, text := range cells {
		spec, ok := parseFieldLine(text)
		if !ok {
			continue
		}
		if spec.Description == nil {
			for _, rest := range cells[i+1:] {
				if trimmed := strings.TrimSpace(rest); trimmed != "" {
					spec.Description = &trimmed
					break
				}
			}
		}
		return spec, true
	}
	return fieldSpec{}, false
}

func widthMismatch(name string, stated, computed int) *errors.FigureError {
	return errors.NewValidation(
		fmt.Sprintf("field %q states %d bits but range computes to %d", name, stated, computed))
}

func keepExplicit(specs []fieldSpec) []fieldSpec {
	kept := specs[:0]
	for _, spec := range specs {
		if spec.HasRange {
			kept = append(kept, spec)
		}
	}
	return kept
}

func firstNonEmpty(cells []string) string {
	for _, text := range cells {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// splitLines splits a description cell into candidate field lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
