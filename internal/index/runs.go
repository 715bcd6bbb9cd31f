package index

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kholst/figgrid/internal/assemble"
)

// Run is one processing-run record.
type Run struct {
	ID        string `json:"id"`
	Stem      string `json:"stem"`
	Version   string `json:"version"`
	Figures   int    `json:"figures"`
	Tabular   int    `json:"tabular"`
	Findings  int    `json:"findings"`
	CreatedAt int64  `json:"created_at"`
}

// NewRunID generates a ULID for a processing run.
func NewRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// RecordRun inserts a run record summarizing a categorized document.
func RecordRun(db *sql.DB, doc *assemble.CategorizedFigureDocument) (*Run, error) {
	findings := 0
	for _, msgs := range doc.Errors {
		findings += len(msgs)
	}

	run := &Run{
		ID:        NewRunID(),
		Stem:      doc.Meta.Stem,
		Version:   doc.Meta.Version,
		Figures:   countFigures(doc),
		Tabular:   len(doc.Meta.Tabular),
		Findings:  findings,
		CreatedAt: time.Now().Unix(),
	}

	_, err := db.Exec(`
		INSERT INTO runs (id, stem, version, figures, tabular, findings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Stem, run.Version, run.Figures, run.Tabular, run.Findings, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first. A zero limit means
// the default of 20.
func ListRuns(db *sql.DB, stem string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, stem, version, figures, tabular, findings, created_at
		FROM runs
	`
	args := []any{}
	if stem != "" {
		query += " WHERE stem = ?"
		args = append(args, stem)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Stem, &r.Version, &r.Figures, &r.Tabular, &r.Findings, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// countFigures totals the figures across every category bucket.
func countFigures(doc *assemble.CategorizedFigureDocument) int {
	n := 0
	for _, bucket := range [][]assemble.CategorizedFigure{
		doc.Acronyms,
		doc.IoControllerCommandSetSupport,
		doc.CommandSetOpcodes,
		doc.CommandSupportRequirements,
		doc.CommandSqeDword,
		doc.CommandSqeDwords,
		doc.CommandSqeDataPointer,
		doc.CommandCqeDword,
		doc.CnsValues,
		doc.GeneralCommandStatusValues,
		doc.CommandSpecificStatusValues,
		doc.FeatureIdentifiers,
		doc.FeatureSupport,
		doc.LogPageIdentifiers,
		doc.Offset,
		doc.PropertyDefinition,
		doc.Uncategorized,
		doc.Nontabular,
	} {
		n += len(bucket)
	}
	return n
}
