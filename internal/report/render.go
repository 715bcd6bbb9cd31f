// Package report renders a categorized figure document into a standalone
// HTML report.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/kholst/figgrid/internal/assemble"
	"github.com/kholst/figgrid/internal/classify"
	"github.com/kholst/figgrid/internal/grid"
)

//go:embed report.html
var templateFS embed.FS

// sectionTitles maps categories to human section headings, in report order.
var sectionTitles = []struct {
	Category classify.Category
	Title    string
}{
	{classify.CommandSetOpcodes, "Command Set Opcodes"},
	{classify.CommandSqeDword, "Submission Queue Entry Dwords"},
	{classify.CommandSqeDwords, "Submission Queue Entry Dword Spans"},
	{classify.CommandSqeDataPointer, "Data Pointers"},
	{classify.CommandCqeDword, "Completion Queue Entry Dwords"},
	{classify.CommandSupportRequirements, "Command Support Requirements"},
	{classify.CommandSpecificStatusValues, "Command Specific Status Values"},
	{classify.GeneralCommandStatusValues, "General Command Status Values"},
	{classify.CnsValues, "CNS Values"},
	{classify.FeatureIdentifiers, "Feature Identifiers"},
	{classify.FeatureSupport, "Feature Support"},
	{classify.LogPageIdentifiers, "Log Page Identifiers"},
	{classify.Offset, "Offset Tables"},
	{classify.PropertyDefinition, "Property Definitions"},
	{classify.IoControllerCommandSetSupport, "I/O Controller Command Set Support"},
	{classify.Acronyms, "Acronyms"},
	{classify.Uncategorized, "Uncategorized"},
	{classify.Nontabular, "Non-tabular"},
}

// gridView pairs a layout row with the grid it came from for the template.
type gridView struct {
	Kind string
	Row  grid.LayoutRow
}

// figureView is one figure prepared for rendering.
type figureView struct {
	FigureNr        int
	DescriptionHTML template.HTML
	Grids           []gridView
	Errors          []string
}

// sectionView is one category section of the report.
type sectionView struct {
	Title   string
	Figures []figureView
}

// reportData is the root template payload.
type reportData struct {
	Stem        string
	Version     string
	FigureCount int
	ErrorCount  int
	Sections    []sectionView
}

var reportTemplate = template.Must(
	template.New("report").Funcs(template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}).ParseFS(templateFS, "report.html"))

// Render produces the HTML report for a categorized document. Categories
// named in disabled are left out of the report; unknown names are ignored.
func Render(doc *assemble.CategorizedFigureDocument, disabled []string) ([]byte, error) {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	data := reportData{
		Stem:    doc.Meta.Stem,
		Version: doc.Meta.Version,
	}
	for _, msgs := range doc.Errors {
		data.ErrorCount += len(msgs)
	}

	md := goldmark.New()

	for _, entry := range sectionTitles {
		if skip[string(entry.Category)] {
			continue
		}
		figures := bucket(doc, entry.Category)
		if len(figures) == 0 {
			continue
		}
		section := sectionView{Title: entry.Title}
		for _, cf := range figures {
			view, err := figureFor(md, doc, cf)
			if err != nil {
				return nil, err
			}
			section.Figures = append(section.Figures, view)
			data.FigureCount++
		}
		data.Sections = append(data.Sections, section)
	}

	var buf bytes.Buffer
	if err := reportTemplate.ExecuteTemplate(&buf, "report", data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// figureFor prepares one figure for the template, rendering its description
// through goldmark.
func figureFor(md goldmark.Markdown, doc *assemble.CategorizedFigureDocument, cf assemble.CategorizedFigure) (figureView, error) {
	var rendered bytes.Buffer
	if err := md.Convert([]byte(cf.Caption), &rendered); err != nil {
		return figureView{}, fmt.Errorf("render figure %d description: %w", cf.FigureNr, err)
	}

	view := figureView{
		FigureNr:        cf.FigureNr,
		DescriptionHTML: template.HTML(rendered.String()),
		Errors:          doc.Errors[strconv.Itoa(cf.FigureNr)],
	}
	for _, row := range cf.Sqe {
		view.Grids = append(view.Grids, gridView{Kind: "sqe", Row: row})
	}
	for _, row := range cf.Cqe {
		view.Grids = append(view.Grids, gridView{Kind: "cqe", Row: row})
	}
	for _, row := range cf.Offsets {
		view.Grids = append(view.Grids, gridView{Kind: "offset", Row: row})
	}
	return view, nil
}

// bucket returns the figures of the given category.
func bucket(doc *assemble.CategorizedFigureDocument, category classify.Category) []assemble.CategorizedFigure {
	switch category {
	case classify.Acronyms:
		return doc.Acronyms
	case classify.IoControllerCommandSetSupport:
		return doc.IoControllerCommandSetSupport
	case classify.CommandSetOpcodes:
		return doc.CommandSetOpcodes
	case classify.CommandSupportRequirements:
		return doc.CommandSupportRequirements
	case classify.CommandSqeDword:
		return doc.CommandSqeDword
	case classify.CommandSqeDwords:
		return doc.CommandSqeDwords
	case classify.CommandSqeDataPointer:
		return doc.CommandSqeDataPointer
	case classify.CommandCqeDword:
		return doc.CommandCqeDword
	case classify.CnsValues:
		return doc.CnsValues
	case classify.GeneralCommandStatusValues:
		return doc.GeneralCommandStatusValues
	case classify.CommandSpecificStatusValues:
		return doc.CommandSpecificStatusValues
	case classify.FeatureIdentifiers:
		return doc.FeatureIdentifiers
	case classify.FeatureSupport:
		return doc.FeatureSupport
	case classify.LogPageIdentifiers:
		return doc.LogPageIdentifiers
	case classify.Offset:
		return doc.Offset
	case classify.PropertyDefinition:
		return doc.PropertyDefinition
	case classify.Uncategorized:
		return doc.Uncategorized
	case classify.Nontabular:
		return doc.Nontabular
	}
	return nil
}
