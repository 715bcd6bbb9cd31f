package assemble

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kholst/figgrid/internal/docmodel"
	"github.com/kholst/figgrid/internal/errors"
	"github.com/kholst/figgrid/internal/grid"
)

// Command captures one command of a command set: its opcode and the grids of
// its submission and completion queue entries.
type Command struct {
	Opcode int    `json:"opcode"`
	Alias  string `json:"alias"`
	Name   string `json:"name"`

	Sqe []grid.LayoutRow `json:"sqe"`
	Cqe []grid.LayoutRow `json:"cqe"`
}

// CommandSet is a collection of commands grouped under a named set.
type CommandSet struct {
	Alias    string              `json:"alias"`
	Name     string              `json:"name"`
	Commands map[string]*Command `json:"commands"`
}

// ModelDocument is the per-command view of a categorized document: opcode
// figures joined with the sqe/cqe grids of the commands they name.
type ModelDocument struct {
	Meta        CategorizedDocumentMeta `json:"meta"`
	CommandSets map[string]*CommandSet  `json:"command_sets"`
}

// AliasFromName derives a stable snake_case alias from a human command or
// command-set name.
func AliasFromName(name string) string {
	alias := strings.ToLower(strings.TrimSpace(name))
	alias = strings.ReplaceAll(alias, "/", "")
	return strings.ReplaceAll(alias, " ", "_")
}

// reOpcode matches opcode cells like "01h" or "0x81".
var reOpcode = regexp.MustCompile(`^(?:0x)?([0-9A-Fa-f]{1,2})h?$`)

// OpcodeFromHex decodes the document's opcode notation.
func OpcodeFromHex(text string) (int, bool) {
	m := reOpcode.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 16, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// ExtractModel merges opcode figures and command sqe/cqe figures into a
// per-command-set model. Opcode-table rows that do not decode as opcode
// entries (headers, notes) are skipped; grid figures naming commands no
// opcode table declares are skipped with a finding.
func ExtractModel(doc *CategorizedFigureDocument) (*ModelDocument, []*errors.FigureError) {
	model := &ModelDocument{
		Meta:        doc.Meta,
		CommandSets: make(map[string]*CommandSet),
	}

	var errs []*errors.FigureError

	for _, cf := range doc.CommandSetOpcodes {
		setAlias := AliasFromName(cf.CommandSetName)
		set := model.CommandSets[setAlias]
		if set == nil {
			set = &CommandSet{
				Alias:    setAlias,
				Name:     cf.CommandSetName,
				Commands: make(map[string]*Command),
			}
			model.CommandSets[setAlias] = set
		}

		if cf.Table == nil {
			continue
		}
		for _, row := range cf.Table.Rows {
			opcode, name, ok := opcodeRow(row.Cells)
			if !ok {
				continue
			}
			alias := AliasFromName(name)
			set.Commands[alias] = &Command{
				Opcode: opcode,
				Alias:  alias,
				Name:   name,
			}
		}
	}

	attach := func(figures []CategorizedFigure, cqe bool) {
		for _, cf := range figures {
			alias := AliasFromName(cf.CommandName)
			cmd := findCommand(model, alias)
			if cmd == nil {
				errs = append(errs, errors.NewValidation(fmt.Sprintf(
					"figure %d: no opcode entry for command %q", cf.FigureNr, cf.CommandName)))
				continue
			}
			if cqe {
				cmd.Cqe = append(cmd.Cqe, cf.Cqe...)
			} else {
				cmd.Sqe = append(cmd.Sqe, cf.Sqe...)
			}
		}
	}

	attach(doc.CommandSqeDword, false)
	attach(doc.CommandSqeDwords, false)
	attach(doc.CommandSqeDataPointer, false)
	attach(doc.CommandCqeDword, true)

	// Keep sqe/cqe rows ordered by word offset.
	for _, set := range model.CommandSets {
		for _, cmd := range set.Commands {
			sortRows(cmd.Sqe)
			sortRows(cmd.Cqe)
		}
	}

	return model, errs
}

// opcodeRow decodes one row of an opcode table: the first cell decoding as
// an opcode plus the last non-empty cell as the command name.
func opcodeRow(cells []docmodel.Cell) (int, string, bool) {
	if len(cells) < 2 {
		return 0, "", false
	}
	opcode, ok := OpcodeFromHex(cells[0].Text)
	if !ok {
		return 0, "", false
	}
	for i := len(cells) - 1; i >= 1; i-- {
		if name := strings.TrimSpace(cells[i].Text); name != "" {
			return opcode, name, true
		}
	}
	return 0, "", false
}

// findCommand locates a command by alias across all command sets.
func findCommand(model *ModelDocument, alias string) *Command {
	for _, set := range model.CommandSets {
		if cmd, ok := set.Commands[alias]; ok {
			return cmd
		}
	}
	return nil
}

func sortRows(rows []grid.LayoutRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Lower < rows[j].Lower
	})
}
