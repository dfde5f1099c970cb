package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity represents an integer quantity value for discrete inventory units
type Quantity int64

// PlaceholderCell is the sub-header label that appears in quantity columns of
// warehouse exports and must be treated as an empty cell.
const PlaceholderCell = "Остаток на складе"

// ParseCellQuantity converts a raw spreadsheet cell into a Quantity.
//
// Exports frequently carry whole quantities as floats ("3.0"), blanks, or the
// sub-header placeholder text. All of those normalize to a non-negative
// integer; anything unparseable is zero, never an error.
func ParseCellQuantity(raw string) Quantity {
	s := strings.TrimSpace(raw)
	if s == "" || s == PlaceholderCell {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}

	q := Quantity(d.IntPart())
	if q < 0 {
		return 0
	}
	return q
}
