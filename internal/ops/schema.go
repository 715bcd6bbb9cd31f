package ops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kholst/figgrid/internal/schema"
)

// DumpSchemaInput contains parameters for the DumpSchema operation.
type DumpSchemaInput struct {
	OutputDir string // default: cwd
	Generated bool   // dump the reflected schema instead of the embedded one
}

// DumpSchemaOutput contains the result of the DumpSchema operation.
type DumpSchemaOutput struct {
	Path string `json:"path"`
}

// DumpSchema writes the categorized document JSON Schema to a file.
func DumpSchema(input DumpSchemaInput) (*DumpSchemaOutput, error) {
	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	data := schema.Categorized()
	if input.Generated {
		var err error
		data, err = schema.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema: %w", err)
		}
		data = append(data, '\n')
	}

	path := filepath.Join(outputDir, schema.Filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write schema: %w", err)
	}

	return &DumpSchemaOutput{Path: path}, nil
}
