// Package classify assigns each figure exactly one semantic category.
//
// Classification is a pure function of the figure caption/description and
// the shape of its table: an ordered rule table is matched first-to-last and
// the first match wins. Figures without a table are nontabular; figures no
// rule matches are uncategorized. Reclassification is idempotent.
package classify

import (
	"strings"

	"github.com/kholst/figgrid/internal/docmodel"
)

// Captures holds the category-specific attributes a rule extracted from the
// figure description, keyed by capture-group name (e.g. "command_name").
type Captures map[string]string

// asciiFolder rewrites the unicode punctuation that document extractors leak
// into captions so the rule patterns only deal with ASCII.
var asciiFolder = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"…", "...", // ellipsis
	"é", "e",
	"á", "a",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
	"ñ", "n",
	"ç", "c",
)

// Fold returns text with known unicode punctuation replaced by ASCII
// equivalents. Applied to descriptions before rule matching.
func Fold(text string) string {
	return asciiFolder.Replace(text)
}

// Classify assigns a category to the figure and returns any attributes the
// winning rule captured. The input figure is never mutated.
func Classify(figure *docmodel.Figure) (Category, Captures) {
	if figure.Table == nil {
		return Nontabular, nil
	}

	description := Fold(figure.Description)
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		return rule.Category, captures(rule, m)
	}

	return Uncategorized, nil
}

// captures maps the named groups of a match into Captures. Unnamed groups
// are ignored; nil is returned when the rule captures nothing.
func captures(rule Rule, m []string) Captures {
	names := rule.Pattern.SubexpNames()
	var caps Captures
	for i, name := range names {
		if name == "" || i >= len(m) {
			continue
		}
		if caps == nil {
			caps = make(Captures)
		}
		caps[name] = strings.TrimSpace(m[i])
	}
	return caps
}
