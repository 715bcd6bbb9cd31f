package grid

import (
	"regexp"
	"strconv"
	"strings"
)

// fieldSpec is one parsed field description before gap filling and width
// checks. HasRange distinguishes explicit bit sub-ranges from the implicit
// whole-row field.
type fieldSpec struct {
	HasRange bool
	Lower    int
	Upper    int

	// StatedBits is a width the description states explicitly, e.g.
	// "(16 bits)". Checked against the computed width, never trusted.
	StatedBits *int

	Name        string
	Acronym     *string
	Description *string
}

var (
	// reExplicit matches field descriptions that lead with a bit range:
	// "31:16 Reserved", "Bits 15:08 Command Identifier (CID)", "05 X: ...".
	reExplicit = regexp.MustCompile(`^(?i:bits?\s+)?(\d+)(?:\s*:\s*(\d+))?\s*[-:]?\s+(.+)$`)

	// reStatedBits matches an explicit width annotation such as "(8 bits)".
	reStatedBits = regexp.MustCompile(`\(\s*(\d+)\s*bits?\s*\)`)

	// reNameAcrDesc splits "Name (ACR): long description" into its parts;
	// acronym and description are both optional.
	reNameAcrDesc = regexp.MustCompile(`^([^(:]+?)(?:\s*\(\s*([A-Za-z][A-Za-z0-9]*)\s*\))?\s*(?::\s*(.+))?$`)
)

// parseFieldLine parses one line of field-description text. The boolean
// result is false when the line fits neither the explicit nor the implicit
// grammar.
func parseFieldLine(text string) (fieldSpec, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fieldSpec{}, false
	}

	var spec fieldSpec
	if m := reExplicit.FindStringSubmatch(trimmed); m != nil {
		spec.HasRange = true
		first, _ := strconv.Atoi(m[1])
		if m[2] == "" {
			spec.Lower, spec.Upper = first, first
		} else {
			second, _ := strconv.Atoi(m[2])
			// Bit ranges follow the upper:lower convention.
			spec.Lower, spec.Upper = second, first
		}
		trimmed = strings.TrimSpace(m[3])
	}

	if m := reStatedBits.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(m[1])
		spec.StatedBits = &n
		trimmed = strings.TrimSpace(strings.Replace(trimmed, m[0], "", 1))
	}

	m := reNameAcrDesc.FindStringSubmatch(trimmed)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return fieldSpec{}, false
	}

	spec.Name = strings.TrimSpace(m[1])
	if m[2] != "" {
		acronym := strings.ToLower(m[2])
		spec.Acronym = &acronym
	}
	if m[3] != "" {
		description := strings.TrimSpace(m[3])
		spec.Description = &description
	}

	return spec, true
}

// isReserved reports whether the name is the literal "Reserved" marker.
func isReserved(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), reservedName)
}

// field materializes the spec into a Field over [lower, upper]. Reserved
// fields drop acronym and description per the document convention.
func (s fieldSpec) field(lower, upper int) Field {
	f := Field{
		NBits:       upper - lower + 1,
		Lower:       lower,
		Upper:       upper,
		Name:        strings.TrimSpace(s.Name),
		Acronym:     s.Acronym,
		Description: s.Description,
	}
	if isReserved(f.Name) {
		f.Name = reservedName
		f.Acronym = nil
		f.Description = nil
	}
	return f
}
