package ops

import (
	"database/sql"

	"github.com/kholst/figgrid/internal/index"
)

// RunsInput contains parameters for the Runs operation.
type RunsInput struct {
	Stem  string // filter by document stem, empty for all
	Limit int    // maximum runs to return, 0 for default
}

// RunsOutput contains the result of the Runs operation.
type RunsOutput struct {
	Runs []index.Run `json:"runs"`
}

// Runs lists recorded processing runs, newest first.
func Runs(db *sql.DB, input RunsInput) (*RunsOutput, error) {
	runs, err := index.ListRuns(db, input.Stem, input.Limit)
	if err != nil {
		return nil, err
	}
	return &RunsOutput{Runs: runs}, nil
}
