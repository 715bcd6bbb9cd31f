package grid

import (
	"fmt"

	"github.com/kholst/figgrid/internal/errors"
)

// Validate checks the grid's bit-range invariants. It is pure: violations
// are returned for the caller to attach to the figure's error list, never
// raised, and the grid is not mutated.
//
// Per layout row: fields must be sorted by descending upper bit, pairwise
// disjoint, each with lower <= upper, and their union must cover exactly
// [0, total_bits-1]. Across rows: byte ranges must be contiguous and
// non-overlapping; gaps and overlaps are warning-level, since documented
// layouts do contain irregularities downstream consumers must tolerate.
func Validate(g *Grid) []*errors.FigureError {
	var errs []*errors.FigureError

	for i := range g.Rows {
		errs = append(errs, validateRow(&g.Rows[i])...)
	}

	for i := 1; i < len(g.Rows); i++ {
		prev, cur := &g.Rows[i-1], &g.Rows[i]
		switch {
		case prev.Upper+1 < cur.Lower:
			errs = append(errs, errors.NewValidation(fmt.Sprintf(
				"warning: gap between rows %d..%d and %d..%d",
				prev.Lower, prev.Upper, cur.Lower, cur.Upper)))
		case prev.Upper+1 > cur.Lower:
			errs = append(errs, errors.NewValidation(fmt.Sprintf(
				"warning: overlap between rows %d..%d and %d..%d",
				prev.Lower, prev.Upper, cur.Lower, cur.Upper)))
		}
	}

	return errs
}

func validateRow(row *LayoutRow) []*errors.FigureError {
	var errs []*errors.FigureError

	if row.Lower > row.Upper {
		errs = append(errs, errors.NewValidation(fmt.Sprintf(
			"row %d..%d has inverted offset range", row.Lower, row.Upper)))
	}

	total := row.TotalBits()
	covered := 0
	expected := total - 1

	for i, f := range row.Fields {
		if f.Lower > f.Upper {
			errs = append(errs, errors.NewValidation(fmt.Sprintf(
				"field %q has inverted bit range %d..%d", f.Name, f.Lower, f.Upper)))
			continue
		}
		if f.NBits != f.Upper-f.Lower+1 {
			errs = append(errs, errors.NewValidation(fmt.Sprintf(
				"field %q width %d does not match range %d..%d",
				f.Name, f.NBits, f.Lower, f.Upper)))
		}

		if i > 0 {
			prev := row.Fields[i-1]
			if f.Upper >= prev.Upper {
				errs = append(errs, errors.NewValidation(fmt.Sprintf(
					"field %q is not in descending bit order", f.Name)))
			}
			if f.Upper >= prev.Lower {
				errs = append(errs, errors.NewValidation(fmt.Sprintf(
					"field %q bits %d..%d overlap %q bits %d..%d",
					f.Name, f.Lower, f.Upper, prev.Name, prev.Lower, prev.Upper)))
			}
		} else if f.Upper != expected {
			errs = append(errs, errors.NewValidation(fmt.Sprintf(
				"row %d..%d coverage starts at bit %d, expected %d",
				row.Lower, row.Upper, f.Upper, expected)))
		}

		covered += f.Upper - f.Lower + 1
	}

	if len(row.Fields) > 0 {
		last := row.Fields[len(row.Fields)-1]
		if last.Lower != 0 {
			errs = append(errs, errors.NewValidation(fmt.Sprintf(
				"row %d..%d coverage ends at bit %d, expected 0",
				row.Lower, row.Upper, last.Lower)))
		}
	}
	if covered != total && len(row.Fields) > 0 {
		errs = append(errs, errors.NewValidation(fmt.Sprintf(
			"row %d..%d covers %d of %d bits", row.Lower, row.Upper, covered, total)))
	}

	return errs
}
