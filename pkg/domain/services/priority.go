package services

import (
	"stockalloc/pkg/domain/entities"
)

// ResolvePriority returns the ordered list of active candidate stores for one
// product, preferring sales-volume order over the static configuration order.
//
// available restricts candidates to stores actually present in the input
// table (full labels). The second return value reports that the sales index
// was consulted but could not rank this product, so the static order was
// used. A nil index is not a fallback; it is simply static ordering.
//
// The returned list contains every active available store exactly once.
func ResolvePriority(
	productName string,
	cfg *entities.AllocationConfig,
	index *entities.SalesPriorityIndex,
	available []string,
) (ordered []string, usedFallback bool) {
	availableSet := make(map[string]bool, len(available))
	for _, label := range available {
		availableSet[label] = true
	}

	fallback := make([]string, 0, len(available))
	for _, label := range cfg.ActiveStores() {
		if availableSet[label] {
			fallback = append(fallback, label)
		}
	}

	if index == nil {
		return fallback, false
	}

	code, ok := CodeFromProductName(productName)
	if !ok {
		return fallback, true
	}

	sales, ok := index.Lookup(code)
	if !ok {
		return fallback, true
	}

	storeIndex := entities.BuildStoreIndex(cfg.StorePriority)
	ranked := sales.PriorityOrder(cfg.ActiveStores(), storeIndex)

	// Keep sales order, restricted to stores that are active and present.
	activeSet := make(map[string]bool)
	for _, label := range fallback {
		activeSet[label] = true
	}

	ordered = make([]string, 0, len(fallback))
	used := make(map[string]bool)
	for _, label := range ranked {
		if activeSet[label] && !used[label] {
			ordered = append(ordered, label)
			used[label] = true
		}
	}
	for _, label := range fallback {
		if !used[label] {
			ordered = append(ordered, label)
		}
	}
	return ordered, false
}

// FullPriority returns every configured store present in the table, excluded
// ones included, in static order. Engines use it only to record skip entries
// for excluded stores.
func FullPriority(cfg *entities.AllocationConfig, available []string) []string {
	availableSet := make(map[string]bool, len(available))
	for _, label := range available {
		availableSet[label] = true
	}

	full := make([]string, 0, len(cfg.StorePriority))
	for _, label := range cfg.StorePriority {
		if availableSet[label] {
			full = append(full, label)
		}
	}
	return full
}
