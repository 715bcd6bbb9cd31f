// Package ops implements the operations behind the CLI commands. Each
// operation takes an input struct, performs the work, and returns an output
// struct suitable for JSON serialization.
package ops

import (
	"path/filepath"
	"strings"
)

// Artifact filename suffixes.
const (
	CategorizedSuffix = ".categorized.figure.document.json"
	ModelSuffix       = ".model.document.json"
	ReportSuffix      = ".report.html"
)

// Stem derives the document stem from an input path: the base name with the
// figure-document suffixes and extension stripped.
func Stem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".figure.document.json")
	base = strings.TrimSuffix(base, ".json")
	return base
}
