// Package configstore persists AllocationConfig as JSON so settings can be
// exported from and imported into the tool.
package configstore

import (
	"encoding/json"
	"fmt"
	"os"

	"stockalloc/pkg/domain/entities"
)

// fileConfig mirrors AllocationConfig with optional fields, so absent keys
// fall back to defaults instead of zero values.
type fileConfig struct {
	StorePriority    []string                 `json:"store_priority"`
	ExcludedStores   []string                 `json:"excluded_stores"`
	BalanceThreshold *entities.Quantity       `json:"balance_threshold"`
	StorePairs       []entities.StorePair     `json:"store_pairs"`
	Columns          *entities.ColumnBindings `json:"columns"`
}

// Load reads an AllocationConfig from a JSON file, applying defaults for
// absent fields, and validates the result.
func Load(path string) (*entities.AllocationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := &entities.AllocationConfig{
		StorePriority:    fc.StorePriority,
		ExcludedStores:   fc.ExcludedStores,
		BalanceThreshold: entities.DefaultBalanceThreshold,
		StorePairs:       fc.StorePairs,
		Columns:          entities.DefaultColumnBindings(),
	}
	if fc.BalanceThreshold != nil {
		cfg.BalanceThreshold = *fc.BalanceThreshold
	}
	if fc.Columns != nil {
		cfg.Columns = *fc.Columns
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes an AllocationConfig to a JSON file.
func Save(path string, cfg *entities.AllocationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
