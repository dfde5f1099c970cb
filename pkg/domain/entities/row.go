package entities

// ProductRow is one data row of the inventory export: a product in one
// size/variant, with quantities per named pool and per store.
//
// Rows are immutable during an allocation pass; engines work on their own
// copies of the quantities.
type ProductRow struct {
	// Row is the 1-based position of this row in the original workbook,
	// used for display and for patching cells on export.
	Row int

	Product string
	Variant string

	// Pools maps a pool column name (e.g. "Сток", "Фото склад") to the
	// quantity held there.
	Pools map[string]Quantity

	// Stores maps a full store label to the on-hand quantity at that store.
	Stores map[string]Quantity

	// Facet fields used only by the row filter layer.
	Collection string
	ExtraName  string
}

// PoolQty returns the quantity held in the named pool, zero if absent.
func (r *ProductRow) PoolQty(pool string) Quantity {
	return r.Pools[pool]
}

// StoreQty returns the on-hand quantity at the labeled store, zero if absent.
func (r *ProductRow) StoreQty(label string) Quantity {
	return r.Stores[label]
}
