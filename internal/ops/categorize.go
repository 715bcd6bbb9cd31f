package ops

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kholst/figgrid/internal/assemble"
	"github.com/kholst/figgrid/internal/config"
	"github.com/kholst/figgrid/internal/docmodel"
	"github.com/kholst/figgrid/internal/errors"
	"github.com/kholst/figgrid/internal/index"
	"github.com/kholst/figgrid/internal/report"
	"github.com/kholst/figgrid/internal/schema"
)

// CategorizeInput contains parameters for the Categorize operation.
type CategorizeInput struct {
	Paths      []string // figure or table document files, required
	OutputDir  string   // default: config OutputDir, then cwd
	Report     bool     // also write an HTML report per document
	Model      bool     // also write the extracted command model per document
	Validate   bool     // validate output against the embedded schema
	RecordRuns bool     // record each run in the index (requires db)
}

// DocumentResult summarizes one categorized document.
type DocumentResult struct {
	Stem       string `json:"stem"`
	Path       string `json:"path"`
	ReportPath string `json:"report_path,omitempty"`
	ModelPath  string `json:"model_path,omitempty"`
	Figures    int    `json:"figures"`
	Tabular    int    `json:"tabular"`
	Findings   int    `json:"findings"`
	RunID      string `json:"run_id,omitempty"`
}

// CategorizeOutput contains the result of the Categorize operation.
type CategorizeOutput struct {
	Documents []DocumentResult `json:"documents"`
}

// Categorize loads each input document, assembles its categorized document,
// and writes the artifacts. Inputs may be figure documents or raw table
// documents; the latter go through figure extraction first. The database may
// be nil when runs are not recorded.
func Categorize(db *sql.DB, cfg *config.Config, input CategorizeInput) (*CategorizeOutput, error) {
	if len(input.Paths) == 0 {
		return nil, fmt.Errorf("at least one figure document is required")
	}

	outputDir := input.OutputDir
	if outputDir == "" && cfg != nil {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	out := &CategorizeOutput{}
	for _, path := range input.Paths {
		result, err := categorizeOne(db, cfg, input, outputDir, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out.Documents = append(out.Documents, *result)
	}
	return out, nil
}

func categorizeOne(db *sql.DB, cfg *config.Config, input CategorizeInput, outputDir, path string) (*DocumentResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, extractErrs, err := loadDocument(data)
	if err != nil {
		return nil, err
	}
	if doc.Meta.Stem == "" {
		doc.Meta.Stem = Stem(path)
	}

	categorized, err := assemble.Assemble(doc)
	if err != nil {
		return nil, err
	}
	for _, e := range extractErrs {
		categorized.Record(0, e)
	}

	serialized, err := json.MarshalIndent(categorized, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize categorized document: %w", err)
	}
	serialized = append(serialized, '\n')

	if input.Validate {
		if err := schema.Check(serialized); err != nil {
			return nil, err
		}
	}

	result := &DocumentResult{
		Stem:    categorized.Meta.Stem,
		Path:    filepath.Join(outputDir, categorized.Meta.Stem+CategorizedSuffix),
		Tabular: len(categorized.Meta.Tabular),
	}
	for _, msgs := range categorized.Errors {
		result.Findings += len(msgs)
	}
	result.Figures = len(doc.Figures)

	if err := os.WriteFile(result.Path, serialized, 0644); err != nil {
		return nil, fmt.Errorf("failed to write categorized document: %w", err)
	}

	if input.Report {
		var disabled []string
		if cfg != nil {
			disabled = cfg.DisabledCategories
		}
		html, err := report.Render(categorized, disabled)
		if err != nil {
			return nil, err
		}
		result.ReportPath = filepath.Join(outputDir, categorized.Meta.Stem+ReportSuffix)
		if err := os.WriteFile(result.ReportPath, html, 0644); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	if input.Model {
		model, modelErrs := assemble.ExtractModel(categorized)
		result.Findings += len(modelErrs)
		serializedModel, err := json.MarshalIndent(model, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize model document: %w", err)
		}
		serializedModel = append(serializedModel, '\n')
		result.ModelPath = filepath.Join(outputDir, categorized.Meta.Stem+ModelSuffix)
		if err := os.WriteFile(result.ModelPath, serializedModel, 0644); err != nil {
			return nil, fmt.Errorf("failed to write model document: %w", err)
		}
	}

	if input.RecordRuns && db != nil {
		run, err := index.RecordRun(db, categorized)
		if err != nil {
			return nil, err
		}
		result.RunID = run.ID
	}

	return result, nil
}

// loadDocument parses the input as a figure document, falling back to figure
// extraction when the file carries raw tables instead of figures.
func loadDocument(data []byte) (*docmodel.FigureDocument, []*errors.FigureError, error) {
	doc, err := docmodel.Load(data)
	if err != nil {
		return nil, nil, err
	}
	if len(doc.Figures) > 0 {
		return doc, nil, nil
	}

	tdoc, err := docmodel.LoadTables(data)
	if err != nil {
		return nil, nil, err
	}
	if len(tdoc.Tables) == 0 {
		return doc, nil, nil
	}
	fdoc, errs := docmodel.ExtractFigures(tdoc)
	return fdoc, errs, nil
}
