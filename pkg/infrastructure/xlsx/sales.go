package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"stockalloc/pkg/domain/entities"
	"stockalloc/pkg/domain/services"
)

// salesQuantityColumn is the 0-based column carrying quantities in the sales
// report.
const salesQuantityColumn = 3

// LoadSales parses the hierarchical sales report: product rows (underscore
// separated, code after the last underscore) followed by the store rows that
// sold them. Header labels and totals rows are skipped; rows before the
// first product row are ignored.
func (l *Loader) LoadSales(path string) (*entities.SalesPriorityIndex, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("sales workbook %s has no sheets", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	index := entities.NewSalesPriorityIndex()
	var current *entities.ProductSales

	for _, row := range raw {
		name := strings.TrimSpace(cell(row, 0))
		if name == "" || name == "Номенклатура" || name == "Склад" {
			continue
		}

		if code, ok := services.CodeFromSalesName(name); ok {
			current = &entities.ProductSales{
				Code:          code,
				RawName:       name,
				TotalQuantity: entities.ParseCellQuantity(cell(row, salesQuantityColumn)),
			}
			index.Add(current)
			continue
		}

		if storeCode, ok := entities.ParseStoreCode(name); ok && current != nil {
			current.Stores = append(current.Stores, entities.StoreSale{
				Code:     storeCode,
				RawLabel: name,
				Quantity: entities.ParseCellQuantity(cell(row, salesQuantityColumn)),
			})
		}
	}

	l.log.Info("loaded sales report",
		zap.String("file", path),
		zap.Int("products", index.Len()))

	return index, nil
}
