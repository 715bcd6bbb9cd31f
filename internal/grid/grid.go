// Package grid converts raw figure tables into regular bit-field grids.
//
// A grid is an ordered sequence of byte-aligned layout rows, each owning an
// ordered sequence of bit fields. The package normalizes irregular table
// rows into layout-row candidates, parses field descriptions into fields,
// synthesizes "Reserved" fields over implicit gaps, and validates the
// resulting bit coverage. All failures are accumulated as values; nothing
// here aborts processing.
package grid

// Field is a named bit range within a layout row. Positions are 0-based,
// inclusive on both ends and row-relative: bit 0 is the least-significant
// bit of the row's first byte.
type Field struct {
	NBits int `json:"nbits"`
	Lower int `json:"lower"`
	Upper int `json:"upper"`

	Name        string  `json:"name"`
	Acronym     *string `json:"acronym"`
	Description *string `json:"description"`
}

// LayoutRow is a byte-aligned row within a grid. Lower and Upper are the
// inclusive offset range the row covers in its parent structure; NBytes is
// the row's width in bytes, so the fields tile [0, NBytes*8-1].
type LayoutRow struct {
	CommandAlias string  `json:"command_alias,omitempty"`
	NBytes       int     `json:"nbytes"`
	Lower        int     `json:"lower"`
	Upper        int     `json:"upper"`
	Fields       []Field `json:"fields"`
}

// TotalBits returns the number of bits the row's fields must cover.
func (r *LayoutRow) TotalBits() int {
	return r.NBytes * 8
}

// Grid is the normalized bit-field layout derived from a figure's raw table.
type Grid struct {
	Rows []LayoutRow `json:"rows"`
}

// reservedName is the literal marker the documents use for bits that are
// called out but carry no meaning. Matched case-insensitively.
const reservedName = "Reserved"

// reserved synthesizes a placeholder field covering [lower, upper].
func reserved(lower, upper int) Field {
	return Field{
		NBits: upper - lower + 1,
		Lower: lower,
		Upper: upper,
		Name:  reservedName,
	}
}
