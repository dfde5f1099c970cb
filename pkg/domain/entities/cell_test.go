package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCellQuantity(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want Quantity
	}{
		{"integer", "3", 3},
		{"whole float", "3.0", 3},
		{"fractional float truncates", "2.7", 2},
		{"whitespace", " 5 ", 5},
		{"empty", "", 0},
		{"placeholder", PlaceholderCell, 0},
		{"negative clamps", "-4", 0},
		{"junk", "abc", 0},
		{"zero", "0", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCellQuantity(tc.raw))
		})
	}
}
