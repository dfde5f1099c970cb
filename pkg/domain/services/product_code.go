package services

import "strings"

// Product code extraction. The inventory export and the sales report encode
// the same product code with different separator conventions, so each dataset
// gets its own rule.

// CodeFromProductName extracts the product code from an inventory-export
// product name: everything after the FIRST underscore.
//
//	"Мужские шорты_C3 34770.4007/6214" -> "C3 34770.4007/6214"
func CodeFromProductName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	idx := strings.Index(name, "_")
	if idx < 0 || idx == len(name)-1 {
		return "", false
	}
	return name[idx+1:], true
}

// CodeFromSalesName extracts the product code from a sales-report product row:
// everything after the LAST underscore.
//
//	"_P1 60105_P1 60105"                  -> "P1 60105"
//	"Джемпер_C5 50706.5037/7015"          -> "C5 50706.5037/7015"
//
// Rows starting with a digit are store rows, not products, and return false.
func CodeFromSalesName(name string) (string, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "", false
	}
	idx := strings.LastIndex(s, "_")
	if idx < 0 || idx == len(s)-1 {
		return "", false
	}
	code := strings.TrimSpace(s[idx+1:])
	if code == "" {
		return "", false
	}
	return code, true
}

// ArticleType extracts the article name from a product name: the part before
// the first underscore. Used by the facet filter layer.
func ArticleType(name string) string {
	idx := strings.Index(name, "_")
	if idx < 0 {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(name[:idx])
}
