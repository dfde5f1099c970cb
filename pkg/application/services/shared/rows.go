// Package shared holds small helpers used by both allocation engines.
package shared

import "stockalloc/pkg/domain/entities"

// PresentStores returns every store label that appears in the input table,
// first-seen order.
func PresentStores(rows []entities.ProductRow) []string {
	seen := make(map[string]bool)
	var labels []string
	for i := range rows {
		for label := range rows[i].Stores {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}
