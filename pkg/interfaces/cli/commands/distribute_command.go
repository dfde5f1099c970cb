package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"stockalloc/pkg/application/services/distribution"
	"stockalloc/pkg/application/services/report"
	"stockalloc/pkg/infrastructure/xlsx"
	"stockalloc/pkg/interfaces/cli/output"
)

// DistributeCommand runs the push distribution pass: units move from a pool
// column to stores with zero stock.
type DistributeCommand struct {
	config Config
}

// NewDistributeCommand creates a new distribution command
func NewDistributeCommand(config Config) *DistributeCommand {
	return &DistributeCommand{config: config}
}

// Execute runs the distribution command
func (c *DistributeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := validateCommon(c.config); err != nil {
		return err
	}
	source, err := distribution.ParseSource(c.config.Source)
	if err != nil {
		return err
	}

	log, err := newLogger(c.config)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if c.config.Verbose {
		c.printHeader(source)
	}

	cfg, err := loadAllocationConfig(c.config)
	if err != nil {
		return err
	}

	loader := xlsx.NewLoader(log)
	table, rows, err := loadRows(loader, c.config, cfg)
	if err != nil {
		return err
	}
	sales, err := loadSales(loader, c.config)
	if err != nil {
		return err
	}

	engine, err := distribution.NewEngine(cfg, sales)
	if err != nil {
		return err
	}
	previews, batches, err := engine.Execute(rows, source)
	if err != nil {
		return err
	}

	result := output.PassResult{
		RunID:    uuid.New(),
		Pass:     "distribution",
		Source:   source.String(),
		Previews: previews,
		Batches:  batches,
		Problems: report.Collect(previews),
	}

	if c.config.Execute {
		writer := xlsx.NewWriter(log)
		now := time.Now()

		files, err := writer.WriteBatches(c.config.OutputDir, batches, now)
		if err != nil {
			return err
		}
		result.Files = files

		if len(result.Problems) > 0 {
			path := filepath.Join(c.config.OutputDir, fmt.Sprintf("problems_%s.xlsx", now.Format("20060102_150405")))
			if err := writer.WriteProblemReport(path, result.Problems); err != nil {
				return err
			}
			result.Files = append(result.Files, path)
		}

		if c.config.UpdateWorkbook {
			updated := filepath.Join(c.config.OutputDir, "updated_"+filepath.Base(c.config.InputFile))
			warnings, err := writer.PatchWorkbook(
				c.config.InputFile, updated, previews, source.Column(cfg), table.HeaderRow)
			if err != nil {
				return err
			}
			result.Warnings = append(result.Warnings, warnings...)
			result.Files = append(result.Files, updated)
		}
	}

	return output.Render(os.Stdout, &result, output.Config{
		Format:  c.config.Format,
		Verbose: c.config.Verbose,
	})
}

// printHeader displays the command header
func (c *DistributeCommand) printHeader(source distribution.Source) {
	fmt.Println("📦 Stock Distribution")
	fmt.Println("=====================")
	fmt.Printf("Input: %s\n", c.config.InputFile)
	if c.config.SalesFile != "" {
		fmt.Printf("Sales report: %s\n", c.config.SalesFile)
	}
	fmt.Printf("Source pool: %s\n", source.SenderName())
	if c.config.Execute {
		fmt.Printf("Output: %s\n", c.config.OutputDir)
	} else {
		fmt.Println("Mode: preview only")
	}
	fmt.Println()
}

// showHelp displays detailed help information
func (c *DistributeCommand) showHelp() {
	fmt.Println(`📦 Stock Distribution Tool

USAGE:
    stockalloc distribute -input <file.xlsx> [OPTIONS]

DESCRIPTION:
    Distributes units from a source pool to stores that currently hold zero
    stock of a size, one unit per store, walking stores in priority order.
    When a sales report is given, the per-product priority follows units
    sold; products missing from the report fall back to the static order.

    Size families of 4 or more sizes follow the all-or-nothing rule: a store
    with at most one size already in stock either receives every sendable
    size (3 or more available) or nothing at all.

OPTIONS:
    -input <file>      Inventory export workbook (required)
    -sales <file>      Sales report workbook for dynamic priority
    -config <file>     JSON settings file (default: built-in settings)
    -source <pool>     Source pool: stock or photo (default: stock)
    -output <dir>      Output directory for transfer documents
    -execute           Write transfer documents (default: preview only)
    -update-workbook   Also write an updated copy of the inventory workbook
    -types <list>      Only process these article types (comma separated)
    -collections <list> Only process these collections (comma separated)
    -names <list>      Only process these additional names (comma separated)
    -format <fmt>      Output format: text or json (default: text)
    -verbose           Show skipped stores and progress detail

EXAMPLES:
    stockalloc distribute -input stock.xlsx
    stockalloc distribute -input stock.xlsx -sales sales.xlsx -source photo
    stockalloc distribute -input stock.xlsx -output out -execute -update-workbook`)
}
