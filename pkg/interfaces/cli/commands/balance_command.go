package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"stockalloc/pkg/application/services/balancing"
	"stockalloc/pkg/application/services/report"
	"stockalloc/pkg/application/services/snapshot"
	"stockalloc/pkg/infrastructure/xlsx"
	"stockalloc/pkg/interfaces/cli/output"
)

// BalanceCommand runs the rebalancing pass: surplus above the threshold moves
// to a paired partner or back to the central pool.
type BalanceCommand struct {
	config Config
}

// NewBalanceCommand creates a new balancing command
func NewBalanceCommand(config Config) *BalanceCommand {
	return &BalanceCommand{config: config}
}

// Execute runs the balancing command
func (c *BalanceCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := validateCommon(c.config); err != nil {
		return err
	}

	log, err := newLogger(c.config)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadAllocationConfig(c.config)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Println("⚖️  Inventory Balancing")
		fmt.Println("======================")
		fmt.Printf("Input: %s\n", c.config.InputFile)
		fmt.Printf("Threshold: %d\n", cfg.BalanceThreshold)
		if c.config.Execute {
			fmt.Printf("Output: %s\n", c.config.OutputDir)
		} else {
			fmt.Println("Mode: preview only")
		}
		fmt.Println()
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

	engine, err := balancing.NewEngine(cfg, sales)
	if err != nil {
		return err
	}
	previews, batches, err := engine.Execute(rows)
	if err != nil {
		return err
	}

	result := output.PassResult{
		RunID:    uuid.New(),
		Pass:     "balancing",
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
			// Rebalancing moves units between stores and the pool, so the
			// updated workbook comes from an applied snapshot rather than
			// a single-column patch.
			snap, err := snapshot.Apply(rows, previews)
			if err != nil {
				return err
			}
			result.Warnings = append(result.Warnings, snap.Warnings...)

			updated := filepath.Join(c.config.OutputDir, "updated_"+filepath.Base(c.config.InputFile))
			warnings, err := writer.WriteUpdatedInventory(
				c.config.InputFile, updated, snap.Rows, table.HeaderRow)
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

// showHelp displays detailed help information
func (c *BalanceCommand) showHelp() {
	fmt.Println(`⚖️  Inventory Balancing Tool

USAGE:
    stockalloc balance -input <file.xlsx> [OPTIONS]

DESCRIPTION:
    Finds stores holding more than the threshold of a size and moves the
    surplus away. Paired stores first send one unit to their partner when the
    partner holds zero; everything else goes back to the central pool as one
    batched line. Surplus never moves to non-partner stores.

OPTIONS:
    -input <file>      Inventory export workbook (required)
    -sales <file>      Sales report workbook for dynamic priority
    -config <file>     JSON settings file (default: built-in settings)
    -threshold <n>     Balance threshold override (default: from settings)
    -output <dir>      Output directory for transfer documents
    -execute           Write transfer documents (default: preview only)
    -update-workbook   Also write an updated copy of the inventory workbook
    -types <list>      Only process these article types (comma separated)
    -collections <list> Only process these collections (comma separated)
    -names <list>      Only process these additional names (comma separated)
    -format <fmt>      Output format: text or json (default: text)
    -verbose           Show skipped stores and progress detail

EXAMPLES:
    stockalloc balance -input stock.xlsx
    stockalloc balance -input stock.xlsx -threshold 3 -output out -execute`)
}
