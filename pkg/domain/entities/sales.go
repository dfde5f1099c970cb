package entities

import "sort"

// StoreSale is one store's sold quantity for a product, as parsed from the
// sales report.
type StoreSale struct {
	Code     StoreCode
	RawLabel string
	Quantity Quantity
}

// ProductSales holds the per-store sales of one product.
type ProductSales struct {
	Code          string
	RawName       string
	TotalQuantity Quantity
	Stores        []StoreSale
}

// PriorityOrder returns store labels ordered by units sold descending. Ties
// are broken by the store's position in the fallback (static) priority list.
// Sales entries whose code does not resolve through the store index are
// dropped; fallback stores absent from the sales ranking are appended in
// static order.
func (p *ProductSales) PriorityOrder(fallback []string, storeIndex map[StoreCode]string) []string {
	rank := make(map[string]int, len(fallback))
	for i, label := range fallback {
		rank[label] = i
	}

	type ranked struct {
		label string
		qty   Quantity
	}

	var sales []ranked
	seen := make(map[string]bool)
	for _, s := range p.Stores {
		label, ok := storeIndex[s.Code]
		if !ok || seen[label] {
			continue
		}
		seen[label] = true
		sales = append(sales, ranked{label: label, qty: s.Quantity})
	}

	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].qty != sales[j].qty {
			return sales[i].qty > sales[j].qty
		}
		return rank[sales[i].label] < rank[sales[j].label]
	})

	order := make([]string, 0, len(fallback))
	for _, s := range sales {
		order = append(order, s.label)
	}
	for _, label := range fallback {
		if !seen[label] {
			order = append(order, label)
		}
	}
	return order
}

// SalesPriorityIndex maps product codes to their per-store sales, built once
// from a sales report and queried per product during allocation.
type SalesPriorityIndex struct {
	Products map[string]*ProductSales
}

// NewSalesPriorityIndex creates an empty index.
func NewSalesPriorityIndex() *SalesPriorityIndex {
	return &SalesPriorityIndex{Products: make(map[string]*ProductSales)}
}

// Add registers a product's sales data, replacing any previous entry for the
// same code.
func (i *SalesPriorityIndex) Add(p *ProductSales) {
	i.Products[p.Code] = p
}

// Lookup returns the sales data for a product code.
func (i *SalesPriorityIndex) Lookup(code string) (*ProductSales, bool) {
	p, ok := i.Products[code]
	return p, ok
}

// Len returns the number of products in the index.
func (i *SalesPriorityIndex) Len() int {
	return len(i.Products)
}
