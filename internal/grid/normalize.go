package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kholst/figgrid/internal/docmodel"
	"github.com/kholst/figgrid/internal/errors"
)

// RowCandidate is a table row whose leading cell decoded as an offset range.
// Descriptions holds the text of the remaining cells, in order.
type RowCandidate struct {
	// Index is the row's position in the source table, 0-based.
	Index int

	// Lower and Upper are the inclusive offset range decoded from the
	// leading cell. The documents write ranges most-significant first
	// ("07:04"); a single number is a one-unit range.
	Lower int
	Upper int

	Descriptions []string
}

// reRange matches the offset conventions: "07:04", "31 : 16", "10". An
// optional leading "Bits"/"Bytes"/"Bit"/"Byte" label is tolerated since some
// extractors fold the column label into the cell.
var reRange = regexp.MustCompile(`^(?i:bits?|bytes?)?\s*(\d+)\s*(?::\s*(\d+))?$`)

// DecodeRange decodes an offset-range cell. The boolean result is false when
// the text does not look like a range at all (a header or caption cell); a
// non-nil error means the text looked numeric but is malformed.
func DecodeRange(text string) (lower, upper int, ok bool, err error) {
	trimmed := strings.TrimSpace(text)
	m := reRange.FindStringSubmatch(trimmed)
	if m == nil {
		// Cells with no digits are expected failures (headers, captions).
		// Digits mixed into something unparsable is a decode error.
		if strings.ContainsAny(trimmed, "0123456789") && looksLikeRange(trimmed) {
			return 0, 0, false, fmt.Errorf("malformed offset range %q", trimmed)
		}
		return 0, 0, false, nil
	}

	first, _ := strconv.Atoi(m[1])
	if m[2] == "" {
		return first, first, true, nil
	}
	second, _ := strconv.Atoi(m[2])

	// Ranges are written upper:lower; an inverted pair is malformed.
	if second > first {
		return 0, 0, false, fmt.Errorf("inverted offset range %q", trimmed)
	}
	return second, first, true, nil
}

// looksLikeRange reports whether the text resembles an offset range closely
// enough that failing to decode it should be reported rather than skipped.
func looksLikeRange(text string) bool {
	matched, _ := regexp.MatchString(`^[\d\s:]+$`, text)
	return matched
}

// Normalize flattens an irregular table into layout-row candidates.
//
// A row qualifies when its first cell decodes as an offset range; the
// remaining cells become its field descriptions. Rows whose first cell is
// prose (captions, headers) are skipped silently. Rows whose first cell
// looks numeric but is malformed are dropped and reported. Original row
// order is preserved; no reordering.
func Normalize(table *docmodel.Table) ([]RowCandidate, []*errors.FigureError) {
	var candidates []RowCandidate
	var errs []*errors.FigureError

	for i, row := range table.Rows {
		if len(row.Cells) < 2 {
			continue
		}

		lower, upper, ok, err := DecodeRange(row.Cells[0].Text)
		if err != nil {
			errs = append(errs, errors.NewRowDecode(i, err.Error()))
			continue
		}
		if !ok {
			continue
		}

		descriptions := make([]string, 0, len(row.Cells)-1)
		for _, cell := range row.Cells[1:] {
			descriptions = append(descriptions, cell.Text)
		}

		candidates = append(candidates, RowCandidate{
			Index:        i,
			Lower:        lower,
			Upper:        upper,
			Descriptions: descriptions,
		})
	}

	return candidates, errs
}
