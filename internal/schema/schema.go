// Package schema carries the authoritative JSON Schema for the categorized
// figure document and validates emitted documents against it.
//
// The schema shipped with the binary is the contract downstream consumers
// validate against; Generate derives a schema from the Go types for
// comparison and tooling, but the embedded file is authoritative.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/kholst/figgrid/internal/assemble"
)

//go:embed categorized.figure.document.schema.json
var categorizedSchema []byte

// Filename is the conventional name of the schema artifact.
const Filename = "categorized.figure.document.schema.json"

// Categorized returns the embedded JSON Schema bytes.
func Categorized() []byte {
	return categorizedSchema
}

// Generate reflects a JSON Schema from the categorized document types.
func Generate() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}
	s := reflector.Reflect(&assemble.CategorizedFigureDocument{})
	return json.MarshalIndent(s, "", "    ")
}

// Check validates a serialized categorized document against the embedded
// schema. It returns nil when the document validates, otherwise an error
// listing every violation.
func Check(document []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(categorizedSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("document does not validate against schema:")
	for _, desc := range result.Errors() {
		sb.WriteString("\n  - ")
		sb.WriteString(desc.String())
	}
	return fmt.Errorf("%s", sb.String())
}
