// Package xlsx reads and writes the workbook formats surrounding an
// allocation pass: the inventory export, the hierarchical sales report,
// transfer documents and the updated-inventory workbook.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"stockalloc/pkg/domain/entities"
)

// DefaultHeaderSearchRows bounds the search for the header row at the top of
// an inventory export.
const DefaultHeaderSearchRows = 20

// Table is a loaded inventory export.
type Table struct {
	Rows []entities.ProductRow

	// HeaderRow is the 1-based sheet row holding the column names.
	HeaderRow int

	Sheet string
}

// Loader reads inventory exports into ProductRows.
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a workbook loader. A nil logger disables logging.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load reads the first sheet of an inventory export. The header row is found
// by searching the first DefaultHeaderSearchRows rows for the product-name
// column; the sub-header row immediately after it is skipped, as are rows
// with an empty product name. A missing product-name column is the one fatal
// condition; malformed quantity cells normalize to zero.
func (l *Loader) Load(path string, cols entities.ColumnBindings) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	headerIdx, err := findHeaderRow(raw, cols.ProductName)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int)
	for i, name := range raw[headerIdx] {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			columns[trimmed] = i
		}
	}

	productCol, ok := columns[cols.ProductName]
	if !ok {
		return nil, fmt.Errorf("required column %q not found", cols.ProductName)
	}

	table := &Table{HeaderRow: headerIdx + 1, Sheet: sheet}

	// Data starts two rows below the header: the row in between is the
	// sub-header carrying the per-column placeholder.
	for i := headerIdx + 2; i < len(raw); i++ {
		product := strings.TrimSpace(cell(raw[i], productCol))
		if product == "" {
			continue
		}

		row := entities.ProductRow{
			Row:     i + 1,
			Product: product,
			Pools:   make(map[string]entities.Quantity),
			Stores:  make(map[string]entities.Quantity),
		}
		if idx, ok := columns[cols.Variant]; ok {
			row.Variant = strings.TrimSpace(cell(raw[i], idx))
		}
		if idx, ok := columns[cols.Collection]; ok {
			row.Collection = strings.TrimSpace(cell(raw[i], idx))
		}
		if idx, ok := columns[cols.ExtraName]; ok {
			row.ExtraName = strings.TrimSpace(cell(raw[i], idx))
		}
		if idx, ok := columns[cols.Stock]; ok {
			row.Pools[cols.Stock] = entities.ParseCellQuantity(cell(raw[i], idx))
		}
		if idx, ok := columns[cols.PhotoStock]; ok {
			row.Pools[cols.PhotoStock] = entities.ParseCellQuantity(cell(raw[i], idx))
		}
		for name, idx := range columns {
			if _, ok := entities.ParseStoreCode(name); ok {
				row.Stores[name] = entities.ParseCellQuantity(cell(raw[i], idx))
			}
		}

		table.Rows = append(table.Rows, row)
	}

	l.log.Info("loaded inventory table",
		zap.String("file", path),
		zap.String("sheet", sheet),
		zap.Int("header_row", table.HeaderRow),
		zap.Int("rows", len(table.Rows)))

	return table, nil
}

// findHeaderRow returns the 0-based index of the row containing the
// product-name column.
func findHeaderRow(raw [][]string, productColumn string) (int, error) {
	limit := len(raw)
	if limit > DefaultHeaderSearchRows {
		limit = DefaultHeaderSearchRows
	}
	for i := 0; i < limit; i++ {
		for _, v := range raw[i] {
			if strings.TrimSpace(v) == productColumn {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("header row with %q not found in first %d rows", productColumn, limit)
}

// cell returns the value at idx, tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
