// Package rowfilter narrows an inventory table by its facet fields before an
// allocation pass.
package rowfilter

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"stockalloc/pkg/domain/entities"
	"stockalloc/pkg/domain/services"
)

// Filter selects rows by facet values. An empty facet list, or a list
// covering every value present, leaves that facet unfiltered.
type Filter struct {
	ArticleTypes []string
	Collections  []string
	ExtraNames   []string
}

// FormatFacet normalizes a facet cell for display and matching: whole-number
// floats lose their decimal point ("2221.0" -> "2221"), everything else is
// trimmed.
func FormatFacet(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if d, err := decimal.NewFromString(s); err == nil && d.IsInteger() {
		return d.String()
	}
	return s
}

// ArticleTypes returns the sorted distinct article types of the table: the
// product-name part before the first underscore.
func ArticleTypes(rows []entities.ProductRow) []string {
	return distinct(rows, func(r *entities.ProductRow) string {
		return services.ArticleType(r.Product)
	})
}

// Collections returns the sorted distinct collection facet values.
func Collections(rows []entities.ProductRow) []string {
	return distinct(rows, func(r *entities.ProductRow) string {
		return FormatFacet(r.Collection)
	})
}

// ExtraNames returns the sorted distinct additional-name facet values.
func ExtraNames(rows []entities.ProductRow) []string {
	return distinct(rows, func(r *entities.ProductRow) string {
		return FormatFacet(r.ExtraName)
	})
}

// Apply returns the rows matching every active facet of the filter, in input
// order. The input slice is not modified.
func Apply(rows []entities.ProductRow, f Filter) []entities.ProductRow {
	articleTypes := activeSet(f.ArticleTypes, ArticleTypes(rows))
	collections := activeSet(f.Collections, Collections(rows))
	extraNames := activeSet(f.ExtraNames, ExtraNames(rows))

	out := make([]entities.ProductRow, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		if articleTypes != nil && !articleTypes[services.ArticleType(r.Product)] {
			continue
		}
		if collections != nil && !collections[FormatFacet(r.Collection)] {
			continue
		}
		if extraNames != nil && !extraNames[FormatFacet(r.ExtraName)] {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// activeSet turns a facet selection into a membership set, or nil when the
// selection is empty or covers every present value (no filtering needed).
func activeSet(selected, present []string) map[string]bool {
	if len(selected) == 0 {
		return nil
	}

	set := make(map[string]bool, len(selected))
	for _, v := range selected {
		set[v] = true
	}

	all := true
	for _, v := range present {
		if !set[v] {
			all = false
			break
		}
	}
	if all && len(set) >= len(present) {
		return nil
	}
	return set
}

func distinct(rows []entities.ProductRow, key func(*entities.ProductRow) string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range rows {
		v := key(&rows[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
