package docmodel

import (
	"strings"
	"testing"

	"github.com/kholst/figgrid/internal/errors"
)

func tableDoc(tables ...*Table) *TableDocument {
	doc := &TableDocument{Meta: DocumentMeta{Version: FormatVersion, Stem: "base"}}
	for _, t := range tables {
		doc.Tables = append(doc.Tables, *t)
	}
	return doc
}

func TestExtractFigures_CaptionedTables(t *testing.T) {
	doc := tableDoc(
		headerTable(
			[]string{"Figure 5: Get Log Page - Command Dword 10"},
			[]string{"Bits", "Description"},
			[]string{"31:00", "Reserved"},
		),
		headerTable(
			[]string{"Figure 3: Opcodes for Admin Commands"},
			[]string{"Opcode", "Command"},
		),
	)

	fdoc, errs := ExtractFigures(doc)
	if len(errs) != 0 {
		t.Fatalf("ExtractFigures() errors = %v, want none", errs)
	}
	if len(fdoc.Figures) != 2 {
		t.Fatalf("figures = %d, want 2", len(fdoc.Figures))
	}
	if fdoc.Figures[0].FigureNr != 3 || fdoc.Figures[1].FigureNr != 5 {
		t.Errorf("figure order = [%d %d], want [3 5]",
			fdoc.Figures[0].FigureNr, fdoc.Figures[1].FigureNr)
	}
	if fdoc.Figures[1].Description != "Get Log Page - Command Dword 10" {
		t.Errorf("description = %q", fdoc.Figures[1].Description)
	}
	if fdoc.Figures[0].Table == nil || fdoc.Figures[1].Table == nil {
		t.Error("captioned figures must own their table")
	}
	if fdoc.Meta.Stem != "base" {
		t.Errorf("stem = %q, want base", fdoc.Meta.Stem)
	}
}

func TestExtractFigures_TableOfFigures(t *testing.T) {
	doc := tableDoc(
		headerTable(
			[]string{"Table of Figures"},
			[]string{"Figure 7: Queue Arbitration 354"},
			[]string{"Figure 8: Command Arbitration 355"},
		),
		headerTable(
			[]string{"Figure 7: Queue Arbitration"},
			[]string{"Value", "Definition"},
		),
	)

	fdoc, errs := ExtractFigures(doc)
	if len(errs) != 0 {
		t.Fatalf("ExtractFigures() errors = %v, want none", errs)
	}
	if len(fdoc.Figures) != 2 {
		t.Fatalf("figures = %d, want 2", len(fdoc.Figures))
	}

	fig7 := fdoc.Figures[0]
	if fig7.FigureNr != 7 || fig7.Table == nil {
		t.Errorf("figure 7 = %+v, want merged table", fig7)
	}
	if fig7.PageNr == nil || *fig7.PageNr != 354 {
		t.Errorf("figure 7 page = %v, want 354", fig7.PageNr)
	}
	if fig7.Description != "Queue Arbitration" {
		t.Errorf("figure 7 description = %q", fig7.Description)
	}

	fig8 := fdoc.Figures[1]
	if fig8.FigureNr != 8 || fig8.Table != nil {
		t.Errorf("figure 8 = %+v, want a tableless stub", fig8)
	}
	if fig8.PageNr == nil || *fig8.PageNr != 355 {
		t.Errorf("figure 8 page = %v, want 355", fig8.PageNr)
	}
}

func TestExtractFigures_TableOfFiguresAfterCaption(t *testing.T) {
	doc := tableDoc(
		headerTable(
			[]string{"Figure 7: Queue Arbitration"},
			[]string{"Value", "Definition"},
		),
		headerTable(
			[]string{"Figure 7: Queue Arbitration 354"},
		),
	)

	fdoc, errs := ExtractFigures(doc)
	if len(errs) != 0 {
		t.Fatalf("ExtractFigures() errors = %v, want none", errs)
	}
	if len(fdoc.Figures) != 1 {
		t.Fatalf("figures = %d, want 1", len(fdoc.Figures))
	}
	fig := fdoc.Figures[0]
	if fig.Table == nil {
		t.Error("figure must keep its table")
	}
	if fig.PageNr == nil || *fig.PageNr != 354 {
		t.Errorf("page = %v, want 354 from the table of figures", fig.PageNr)
	}
}

func TestExtractFigures_DuplicateFigureNumber(t *testing.T) {
	doc := tableDoc(
		headerTable(
			[]string{"Figure 5: First"},
			[]string{"Value", "Definition"},
		),
		headerTable(
			[]string{"Figure 5: Second"},
			[]string{"Value", "Definition"},
		),
	)

	fdoc, errs := ExtractFigures(doc)
	if len(fdoc.Figures) != 1 {
		t.Fatalf("figures = %d, want 1", len(fdoc.Figures))
	}
	if fdoc.Figures[0].Description != "First" {
		t.Errorf("description = %q, the first table wins", fdoc.Figures[0].Description)
	}
	if len(errs) != 1 || errs[0].Code != errors.ErrTableCaption {
		t.Fatalf("errors = %v, want one TABLE_CAPTION", errs)
	}
	if !strings.Contains(errs[0].Message, "duplicate figure number") {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestExtractFigures_UnparsableCaption(t *testing.T) {
	doc := tableDoc(headerTable(
		[]string{"Informative note without a figure caption"},
		[]string{"Value", "Definition"},
	))

	fdoc, errs := ExtractFigures(doc)
	if len(fdoc.Figures) != 0 {
		t.Fatalf("figures = %v, want none", fdoc.Figures)
	}
	if len(errs) != 1 || errs[0].Code != errors.ErrTableCaption {
		t.Fatalf("errors = %v, want one TABLE_CAPTION", errs)
	}
}

func TestLoadTables(t *testing.T) {
	doc, err := LoadTables([]byte(`{"meta": {"version": "0.3.0", "stem": "base"}, "tables": [{"rows": []}]}`))
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}
	if len(doc.Tables) != 1 {
		t.Errorf("tables = %d, want 1", len(doc.Tables))
	}

	for _, bad := range []string{"", "{nope", `{"tables": []}`} {
		if _, err := LoadTables([]byte(bad)); !errors.Is(err, errors.ErrDocumentInvalid) {
			t.Errorf("LoadTables(%q) err = %v, want DOCUMENT_INVALID", bad, err)
		}
	}
}
