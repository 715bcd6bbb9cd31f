package report

import (
	"strings"
	"testing"

	"github.com/kholst/figgrid/internal/assemble"
	"github.com/kholst/figgrid/internal/docmodel"
)

func testDocument(t *testing.T) *assemble.CategorizedFigureDocument {
	t.Helper()
	doc := &docmodel.FigureDocument{
		Meta: docmodel.DocumentMeta{Version: docmodel.FormatVersion, Stem: "base"},
		Figures: []docmodel.Figure{
			{
				FigureNr:    92,
				Caption:     "Figure 92: Write - Command Dword 10",
				Description: "Write - Command Dword 10",
				Table: &docmodel.Table{Rows: []docmodel.Row{
					{Cells: []docmodel.Cell{{Text: "Bits"}, {Text: "Description"}}},
					{Cells: []docmodel.Cell{{Text: "31:16"}, {Text: "Reserved"}}},
					{Cells: []docmodel.Cell{{Text: "15:00"}, {Text: "Number of Logical Blocks (NLB)"}}},
				}},
			},
			{
				FigureNr:    7,
				Caption:     "Figure 7: Acronym definitions",
				Description: "Acronym definitions",
				Table: &docmodel.Table{Rows: []docmodel.Row{
					{Cells: []docmodel.Cell{{Text: "Acronym"}, {Text: "Definition"}}},
				}},
			},
		},
	}

	categorized, err := assemble.Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return categorized
}

func TestRender(t *testing.T) {
	html, err := Render(testDocument(t), nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(html)
	for _, want := range []string{
		"<h1>base</h1>",
		"Submission Queue Entry Dwords",
		"Figure 92",
		"Acronyms",
		"Number of Logical Blocks",
		`class="reserved"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRender_DisabledCategories(t *testing.T) {
	html, err := Render(testDocument(t), []string{"acronyms"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(html)
	if strings.Contains(out, "Acronyms") {
		t.Error("disabled category still rendered")
	}
	if !strings.Contains(out, "Figure 92") {
		t.Error("enabled category missing")
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	doc := &assemble.CategorizedFigureDocument{
		Meta:   assemble.CategorizedDocumentMeta{Version: docmodel.FormatVersion, Stem: "empty"},
		Errors: map[string][]string{},
	}

	html, err := Render(doc, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(html), "<h1>empty</h1>") {
		t.Error("report missing document heading")
	}
}
