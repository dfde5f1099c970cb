package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stockalloc/pkg/domain/entities"
)

const (
	storeMSK = "125007 MSK-PC-Гагаринский"
	storeSPB = "125011 SPB-PC-Мега 2 Парнас"
)

// writeInventoryWorkbook builds a minimal inventory export: title rows, the
// header on row 7, the placeholder sub-header on row 8, data from row 9.
func writeInventoryWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	setRow := func(ref string, values []interface{}) {
		require.NoError(t, f.SetSheetRow(sheet, ref, &values))
	}

	setRow("A1", []interface{}{"Отчет по остаткам"})
	setRow("A7", []interface{}{
		"Номенклатура", "Характеристика", "Коллекция (сезон)", "Наименование_доп",
		"Сток", "Фото склад", storeMSK, storeSPB,
	})
	setRow("A8", []interface{}{
		"", "", "", "",
		entities.PlaceholderCell, entities.PlaceholderCell,
		entities.PlaceholderCell, entities.PlaceholderCell,
	})
	setRow("A9", []interface{}{
		"Джемпер_C5 50706", "M", "2221.0", "Базовая", "3", "1.0", "0", "2",
	})
	setRow("A10", []interface{}{""})
	setRow("A11", []interface{}{
		"Шорты_C3 34770", "S", "", "", "0", "0", "1", "",
	})

	path := filepath.Join(dir, "inventory.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeInventoryWorkbook(t, t.TempDir())

	table, err := NewLoader(nil).Load(path, entities.DefaultColumnBindings())
	require.NoError(t, err)

	assert.Equal(t, 7, table.HeaderRow)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	assert.Equal(t, 9, first.Row)
	assert.Equal(t, "Джемпер_C5 50706", first.Product)
	assert.Equal(t, "M", first.Variant)
	assert.Equal(t, "2221.0", first.Collection)
	assert.Equal(t, "Базовая", first.ExtraName)
	assert.Equal(t, entities.Quantity(3), first.PoolQty("Сток"))
	assert.Equal(t, entities.Quantity(1), first.PoolQty("Фото склад"))
	assert.Equal(t, entities.Quantity(0), first.StoreQty(storeMSK))
	assert.Equal(t, entities.Quantity(2), first.StoreQty(storeSPB))

	second := table.Rows[1]
	assert.Equal(t, 11, second.Row)
	assert.Equal(t, entities.Quantity(1), second.StoreQty(storeMSK))
	assert.Equal(t, entities.Quantity(0), second.StoreQty(storeSPB))
}

func TestLoader_Load_MissingHeader(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	values := []interface{}{"Just", "Some", "Columns"}
	require.NoError(t, f.SetSheetRow(f.GetSheetList()[0], "A1", &values))
	path := filepath.Join(dir, "noheader.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewLoader(nil).Load(path, entities.DefaultColumnBindings())
	assert.Error(t, err)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "absent.xlsx"), entities.DefaultColumnBindings())
	assert.Error(t, err)
}

func TestLoader_LoadSales(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	rows := [][]interface{}{
		{"Номенклатура", "", "", "Количество"},
		{"Джемпер_C5 50706", "", "", "12"},
		{storeMSK, "", "", "7"},
		{"0125011 SPB-PC-Мега 2 Парнас", "", "", "5"},
		{"Склад", "", "", ""},
		{"_P1 60105_P1 60105", "", "", "4"},
		{storeMSK, "", "", "4"},
	}
	for i := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, ref, &rows[i]))
	}
	path := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	index, err := NewLoader(nil).LoadSales(path)
	require.NoError(t, err)
	assert.Equal(t, 2, index.Len())

	jumper, ok := index.Lookup("C5 50706")
	require.True(t, ok)
	assert.Equal(t, entities.Quantity(12), jumper.TotalQuantity)
	require.Len(t, jumper.Stores, 2)
	assert.Equal(t, entities.StoreCode(125007), jumper.Stores[0].Code)
	assert.Equal(t, entities.Quantity(7), jumper.Stores[0].Quantity)
	assert.Equal(t, entities.StoreCode(125011), jumper.Stores[1].Code)

	doubled, ok := index.Lookup("P1 60105")
	require.True(t, ok)
	require.Len(t, doubled.Stores, 1)
	assert.Equal(t, entities.Quantity(4), doubled.Stores[0].Quantity)
}
