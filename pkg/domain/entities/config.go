package entities

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default column bindings for the warehouse export format.
const (
	DefaultStockColumn       = "Сток"
	DefaultPhotoStockColumn  = "Фото склад"
	DefaultProductNameColumn = "Номенклатура"
	DefaultVariantColumn     = "Характеристика"
	DefaultCollectionColumn  = "Коллекция (сезон)"
	DefaultExtraNameColumn   = "Наименование_доп"
)

// DefaultBalanceThreshold is the surplus cutoff for rebalancing.
const DefaultBalanceThreshold Quantity = 2

// ColumnBindings names the columns of the input workbook the engines care
// about.
type ColumnBindings struct {
	Stock       string `json:"stock" validate:"required"`
	PhotoStock  string `json:"photo_stock" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Variant     string `json:"variant" validate:"required"`
	Collection  string `json:"collection"`
	ExtraName   string `json:"extra_name"`
}

// DefaultColumnBindings returns the bindings for the standard export format.
func DefaultColumnBindings() ColumnBindings {
	return ColumnBindings{
		Stock:       DefaultStockColumn,
		PhotoStock:  DefaultPhotoStockColumn,
		ProductName: DefaultProductNameColumn,
		Variant:     DefaultVariantColumn,
		Collection:  DefaultCollectionColumn,
		ExtraName:   DefaultExtraNameColumn,
	}
}

// StorePair is an unordered pair of stores configured to balance stock
// between themselves before sending excess to the pool.
type StorePair struct {
	A StoreCode `json:"a" validate:"required"`
	B StoreCode `json:"b" validate:"required,nefield=A"`
}

// AllocationConfig holds the static settings of one allocation request. It is
// immutable during a pass and safe to share between preview and execute.
type AllocationConfig struct {
	// StorePriority is the static store order, full labels, highest
	// priority first.
	StorePriority []string `json:"store_priority" validate:"required,min=1"`

	// ExcludedStores are labels that never receive and are never counted
	// as allocation targets.
	ExcludedStores []string `json:"excluded_stores"`

	// BalanceThreshold is the rebalancing surplus cutoff; stores above it
	// are donors.
	BalanceThreshold Quantity `json:"balance_threshold" validate:"gte=0"`

	// StorePairs are the configured balancing pairs, symmetric by
	// construction.
	StorePairs []StorePair `json:"store_pairs" validate:"dive"`

	Columns ColumnBindings `json:"columns"`
}

// NewAllocationConfig builds a config with defaults for threshold and column
// bindings and validates the result.
func NewAllocationConfig(priority []string, excluded []string, pairs []StorePair) (*AllocationConfig, error) {
	cfg := &AllocationConfig{
		StorePriority:    priority,
		ExcludedStores:   excluded,
		BalanceThreshold: DefaultBalanceThreshold,
		StorePairs:       pairs,
		Columns:          DefaultColumnBindings(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var configValidator = validator.New()

// Validate checks the structural invariants of the config.
func (c *AllocationConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid allocation config: %w", err)
	}
	for _, label := range c.StorePriority {
		if _, err := NewStoreIdentity(label); err != nil {
			return fmt.Errorf("invalid allocation config: %w", err)
		}
	}
	return nil
}

// ActiveStores returns the priority list with excluded stores removed.
func (c *AllocationConfig) ActiveStores() []string {
	active := make([]string, 0, len(c.StorePriority))
	for _, label := range c.StorePriority {
		if !c.IsExcluded(label) {
			active = append(active, label)
		}
	}
	return active
}

// IsExcluded reports whether the labeled store is on the exclusion list.
func (c *AllocationConfig) IsExcluded(label string) bool {
	for _, excluded := range c.ExcludedStores {
		if excluded == label {
			return true
		}
	}
	return false
}

// PartnerOf returns the configured balancing partner of a store. Pairing is
// symmetric: looking up either member returns the other.
func (c *AllocationConfig) PartnerOf(code StoreCode) (StoreCode, bool) {
	for _, pair := range c.StorePairs {
		if pair.A == code {
			return pair.B, true
		}
		if pair.B == code {
			return pair.A, true
		}
	}
	return 0, false
}

// PoolName returns the label used for the central pool as a transfer
// counterparty.
func (c *AllocationConfig) PoolName() string {
	return c.Columns.Stock
}
