package grid

import (
	"testing"

	"github.com/kholst/figgrid/internal/errors"
)

func TestBuild_ImplicitSingleField(t *testing.T) {
	candidates := []RowCandidate{
		{
			Index:        2,
			Lower:        0,
			Upper:        3,
			Descriptions: []string{"Command Identifier (CID)", "The command identifier assigned by host software."},
		},
	}

	g, errs := Build(candidates)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(g.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(g.Rows))
	}

	r := g.Rows[0]
	if r.NBytes != 4 || r.Lower != 0 || r.Upper != 3 {
		t.Fatalf("row = %+v, want nbytes 4 range 0..3", r)
	}
	if len(r.Fields) != 1 {
		t.Fatalf("fields = %d, want 1 (no Reserved synthesis for implicit field)", len(r.Fields))
	}

	f := r.Fields[0]
	if f.NBits != 32 || f.Lower != 0 || f.Upper != 31 {
		t.Errorf("field = %+v, want 32 bits spanning 0..31", f)
	}
	if f.Name != "Command Identifier" {
		t.Errorf("name = %q, want %q", f.Name, "Command Identifier")
	}
	if f.Acronym == nil || *f.Acronym != "cid" {
		t.Errorf("acronym = %v, want cid", f.Acronym)
	}
	if f.Description == nil || *f.Description == "" {
		t.Errorf("description should carry the trailing cell text")
	}
}

func TestBuild_ExplicitFieldsFullCoverage(t *testing.T) {
	candidates := []RowCandidate{
		{
			Index: 1,
			Lower: 0,
			Upper: 3,
			Descriptions: []string{
				"31:16 Number of Dwords (NUMD)\n15:08 Reserved\n07:00 Log Page Identifier (LID)",
			},
		},
	}

	g, errs := Build(candidates)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(g.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(g.Rows))
	}

	fields := g.Rows[0].Fields
	if len(fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(fields))
	}
	if fields[0].Upper != 31 || fields[0].Lower != 16 || fields[0].Name != "Number of Dwords" {
		t.Errorf("fields[0] = %+v", fields[0])
	}
	if fields[1].Name != "Reserved" || fields[1].Acronym != nil || fields[1].Description != nil {
		t.Errorf("fields[1] = %+v, want bare Reserved", fields[1])
	}
	if fields[2].Upper != 7 || fields[2].Lower != 0 {
		t.Errorf("fields[2] = %+v", fields[2])
	}

	if errs := Validate(g); len(errs) != 0 {
		t.Errorf("built grid should validate cleanly, got %v", errs)
	}
}

func TestBuild_ReservedGapSynthesis(t *testing.T) {
	candidates := []RowCandidate{
		{
			Index: 1,
			Lower: 0,
			Upper: 3,
			Descriptions: []string{
				"15:08 Foo\n03:00 Bar",
			},
		},
	}

	g, errs := Build(candidates)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	fields := g.Rows[0].Fields
	if len(fields) != 4 {
		t.Fatalf("fields = %d, want 4 (two named, two Reserved)", len(fields))
	}
	if fields[0].Name != "Reserved" || fields[0].Lower != 16 || fields[0].Upper != 31 {
		t.Errorf("fields[0] = %+v, want Reserved 16..31", fields[0])
	}
	if fields[1].Name != "Foo" {
		t.Errorf("fields[1] = %+v", fields[1])
	}
	if fields[2].Name != "Reserved" || fields[2].Lower != 4 || fields[2].Upper != 7 {
		t.Errorf("fields[2] = %+v, want Reserved 4..7", fields[2])
	}
	if fields[3].Name != "Bar" {
		t.Errorf("fields[3] = %+v", fields[3])
	}
}

func TestBuild_OutOfOrderExplicitFields(t *testing.T) {
	candidates := []RowCandidate{
		{
			Index: 3,
			Lower: 0,
			Upper: 3,
			Descriptions: []string{
				"07:00 Low First\n31:16 High Second",
			},
		},
	}

	g, errs := Build(candidates)
	if len(g.Rows) != 0 {
		t.Fatalf("out-of-order row must be dropped, got %d rows", len(g.Rows))
	}

	found := false
	for _, e := range errs {
		if e.Code == errors.ErrRowDecode {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %s error, got %v", errors.ErrRowDecode, errs)
	}
}

func TestBuild_StatedWidthMismatch(t *testing.T) {
	candidates := []RowCandidate{
		{
			Index:        1,
			Lower:        0,
			Upper:        3,
			Descriptions: []string{"Number of Dwords (16 bits)"},
		},
	}

	g, errs := Build(candidates)
	if len(g.Rows) != 1 || len(g.Rows[0].Fields) != 1 {
		t.Fatalf("row should still be emitted, got %+v", g.Rows)
	}

	// The computed width wins; the stated width only produces a finding.
	if g.Rows[0].Fields[0].NBits != 32 {
		t.Errorf("nbits = %d, want computed 32", g.Rows[0].Fields[0].NBits)
	}
	if len(errs) != 1 || errs[0].Code != errors.ErrValidation {
		t.Fatalf("errs = %v, want one VALIDATION finding", errs)
	}
}

func TestBuildWordRow_SingleWord(t *testing.T) {
	candidates := []RowCandidate{
		{Index: 1, Lower: 16, Upper: 31, Descriptions: []string{"Reserved"}},
		{Index: 2, Lower: 0, Upper: 15, Descriptions: []string{"Number of Logical Blocks (NLB)"}},
	}

	row, errs := BuildWordRow("write", 10, 10, candidates)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row == nil {
		t.Fatal("row = nil")
	}
	if row.CommandAlias != "write" {
		t.Errorf("alias = %q, want %q", row.CommandAlias, "write")
	}
	if row.NBytes != 4 || row.Lower != 10 || row.Upper != 10 {
		t.Errorf("row = %+v, want nbytes 4 word 10..10", row)
	}
	if len(row.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(row.Fields))
	}
	if row.Fields[0].Name != "Reserved" {
		t.Errorf("fields[0] = %+v", row.Fields[0])
	}
	if row.Fields[1].Acronym == nil || *row.Fields[1].Acronym != "nlb" {
		t.Errorf("fields[1] acronym = %v, want nlb", row.Fields[1].Acronym)
	}
}

func TestBuildWordRow_SpansWords(t *testing.T) {
	candidates := []RowCandidate{
		{Index: 1, Lower: 0, Upper: 63, Descriptions: []string{"Metadata Pointer (MPTR)"}},
	}

	row, errs := BuildWordRow("write", 4, 5, candidates)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.NBytes != 8 {
		t.Errorf("nbytes = %d, want 8 for a two-word span", row.NBytes)
	}
	if len(row.Fields) != 1 || row.Fields[0].Upper != 63 {
		t.Errorf("fields = %+v", row.Fields)
	}
}

func TestBuildWordRow_OutOfOrder(t *testing.T) {
	candidates := []RowCandidate{
		{Index: 1, Lower: 0, Upper: 15, Descriptions: []string{"Low"}},
		{Index: 2, Lower: 16, Upper: 31, Descriptions: []string{"High"}},
	}

	row, errs := BuildWordRow("write", 10, 10, candidates)
	if row != nil {
		t.Fatalf("out-of-order row must be dropped, got %+v", row)
	}
	if len(errs) == 0 || errs[len(errs)-1].Code != errors.ErrRowDecode {
		t.Fatalf("errs = %v, want trailing ROW_DECODE", errs)
	}
}
