// Package commands implements the CLI commands of the allocation tool.
package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"stockalloc/pkg/application/services/rowfilter"
	"stockalloc/pkg/domain/entities"
	"stockalloc/pkg/infrastructure/configstore"
	"stockalloc/pkg/infrastructure/logging"
	"stockalloc/pkg/infrastructure/xlsx"
)

// Config holds all command line configuration
type Config struct {
	InputFile  string
	SalesFile  string
	ConfigFile string
	OutputDir  string

	// Source selects the pool column for distribution: "stock" or "photo".
	Source string

	// Threshold overrides the configured balance threshold when >= 0.
	Threshold int

	// Facet filters, comma separated. Empty means no filtering.
	ArticleTypes string
	Collections  string
	ExtraNames   string

	Format         string
	Execute        bool
	UpdateWorkbook bool
	Verbose        bool
	Help           bool
}

// newLogger builds the command logger from the verbosity flag.
func newLogger(config Config) (*zap.Logger, error) {
	return logging.New(config.Verbose)
}

// loadAllocationConfig resolves the allocation settings: the config file when
// given, the built-in defaults otherwise, with the threshold flag applied on
// top.
func loadAllocationConfig(config Config) (*entities.AllocationConfig, error) {
	var (
		cfg *entities.AllocationConfig
		err error
	)
	if config.ConfigFile != "" {
		cfg, err = configstore.Load(config.ConfigFile)
	} else {
		cfg, err = DefaultAllocationConfig()
	}
	if err != nil {
		return nil, err
	}

	if config.Threshold >= 0 {
		cfg.BalanceThreshold = entities.Quantity(config.Threshold)
	}
	return cfg, nil
}

// loadRows reads the inventory workbook and applies the facet filters.
func loadRows(loader *xlsx.Loader, config Config, cfg *entities.AllocationConfig) (*xlsx.Table, []entities.ProductRow, error) {
	table, err := loader.Load(config.InputFile, cfg.Columns)
	if err != nil {
		return nil, nil, err
	}

	rows := rowfilter.Apply(table.Rows, rowfilter.Filter{
		ArticleTypes: splitList(config.ArticleTypes),
		Collections:  splitList(config.Collections),
		ExtraNames:   splitList(config.ExtraNames),
	})
	return table, rows, nil
}

// loadSales reads the optional sales report.
func loadSales(loader *xlsx.Loader, config Config) (*entities.SalesPriorityIndex, error) {
	if config.SalesFile == "" {
		return nil, nil
	}
	return loader.LoadSales(config.SalesFile)
}

// splitList parses a comma separated flag value into trimmed items.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// validateCommon checks the flags shared by the allocation commands.
func validateCommon(config Config) error {
	if config.InputFile == "" {
		return fmt.Errorf("input file is required (use -input)")
	}
	if config.Format != "text" && config.Format != "json" {
		return fmt.Errorf("invalid format: %s (expected 'text' or 'json')", config.Format)
	}
	if config.Execute && config.OutputDir == "" {
		return fmt.Errorf("output directory is required with -execute (use -output)")
	}
	return nil
}
