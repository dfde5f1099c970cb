// Package testing holds shared fixtures for the allocation pass tests.
package testing

import (
	"stockalloc/pkg/domain/entities"
)

// Store labels shared across tests, in default priority order.
const (
	StoreMSK  = "125007 MSK-PC-Гагаринский"
	StoreSPB  = "125011 SPB-PC-Мега 2 Парнас"
	StoreEKT1 = "125004 EKT-PC-Гринвич"
	StoreEKT2 = "125005 EKT-PC-Мега"
	StoreKZN  = "125006 KZN-PC-Мега"
)

// DefaultPriority is the static store order of the test configuration.
var DefaultPriority = []string{StoreMSK, StoreSPB, StoreEKT1, StoreEKT2, StoreKZN}

// NewConfig builds a test configuration: five stores, no exclusions, the two
// Ekaterinburg stores paired.
func NewConfig() *entities.AllocationConfig {
	cfg, err := entities.NewAllocationConfig(
		DefaultPriority,
		nil,
		[]entities.StorePair{{A: 125004, B: 125005}},
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

// NewRow builds a product row with the given stock pool quantity and store
// quantities. Stores absent from the map hold zero.
func NewRow(rowNum int, product, variant string, stock entities.Quantity, stores map[string]entities.Quantity) entities.ProductRow {
	row := entities.ProductRow{
		Row:     rowNum,
		Product: product,
		Variant: variant,
		Pools:   map[string]entities.Quantity{entities.DefaultColumnBindings().Stock: stock},
		Stores:  make(map[string]entities.Quantity),
	}
	for _, label := range DefaultPriority {
		row.Stores[label] = 0
	}
	for label, qty := range stores {
		row.Stores[label] = qty
	}
	return row
}

// NewPhotoRow builds a product row drawing from the photo pool instead.
func NewPhotoRow(rowNum int, product, variant string, photo entities.Quantity, stores map[string]entities.Quantity) entities.ProductRow {
	row := NewRow(rowNum, product, variant, 0, stores)
	row.Pools[entities.DefaultColumnBindings().PhotoStock] = photo
	return row
}

// FamilyRows builds one row per size for a single product family, all with
// the same stock pool quantity and store quantities.
func FamilyRows(product string, sizes []string, stock entities.Quantity, stores map[string]entities.Quantity) []entities.ProductRow {
	rows := make([]entities.ProductRow, len(sizes))
	for i, size := range sizes {
		rows[i] = NewRow(i+8, product, size, stock, stores)
	}
	return rows
}
