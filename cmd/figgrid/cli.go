package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kholst/figgrid/internal/config"
	"github.com/kholst/figgrid/internal/errors"
	"github.com/kholst/figgrid/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "figgrid",
		Usage:   "Categorize figure documents and extract bit-field grids",
		Version: Version,
		Commands: []*cli.Command{
			categorizeCmd(db, cfg),
			schemaCmd(cfg),
			runsCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// categorizeCmd creates the categorize command.
func categorizeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "categorize",
		Usage:     "Categorize figure documents and write the result artifacts",
		ArgsUsage: "<figure-document.json> [...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory (default: config output_dir, then cwd)"},
			&cli.BoolFlag{Name: "report", Aliases: []string{"r"}, Usage: "Also write an HTML report per document"},
			&cli.BoolFlag{Name: "model", Aliases: []string{"m"}, Usage: "Also write the extracted command model per document"},
			&cli.BoolFlag{Name: "validate", Usage: "Validate output against the embedded schema"},
			&cli.BoolFlag{Name: "no-record", Usage: "Skip recording the run in the index"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(fmt.Errorf("at least one figure document is required"))
			}

			input := ops.CategorizeInput{
				Paths:      c.Args().Slice(),
				OutputDir:  c.String("output"),
				Report:     c.Bool("report"),
				Model:      c.Bool("model"),
				Validate:   c.Bool("validate"),
				RecordRuns: !c.Bool("no-record"),
			}
			if cfg != nil {
				input.Report = input.Report || cfg.WriteReport
				input.Validate = input.Validate || cfg.ValidateOutput
			}

			output, err := ops.Categorize(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// schemaCmd creates the schema command.
func schemaCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the categorized document JSON Schema to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory (default: cwd)"},
			&cli.BoolFlag{Name: "generated", Usage: "Dump the schema reflected from the Go types instead of the embedded one"},
		},
		Action: func(c *cli.Context) error {
			outputDir := c.String("output")
			if outputDir == "" && cfg != nil {
				outputDir = cfg.OutputDir
			}

			output, err := ops.DumpSchema(ops.DumpSchemaInput{
				OutputDir: outputDir,
				Generated: c.Bool("generated"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// runsCmd creates the runs command.
func runsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List recorded processing runs, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "stem", Aliases: []string{"s"}, Usage: "Filter by document stem"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum runs to return"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Runs(db, ops.RunsInput{
				Stem:  c.String("stem"),
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var figErr *errors.FigureError
	if stderrors.As(err, &figErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", figErr.Code, figErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
