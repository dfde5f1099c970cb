package xlsx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stockalloc/pkg/application/services/report"
	"stockalloc/pkg/domain/entities"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	return rows
}

func TestWriter_WriteBatches(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 8, 23, 15, 4, 5, 0, time.UTC)

	batches := []entities.TransferBatch{
		{
			Sender:   "Сток",
			Receiver: "125007",
			Lines: []entities.BatchLine{
				{Product: "Джемпер_C5 50706", Variant: "M", Quantity: 1},
				{Product: "Джемпер_C5 50706", Variant: "L", Quantity: 2},
			},
		},
	}

	files, err := NewWriter(nil).WriteBatches(dir, batches, at)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "Сток_to_125007_20260823_150405.xlsx"), files[0])

	rows := readRows(t, files[0])
	require.Len(t, rows, 3)
	assert.Equal(t, "Артикул", rows[0][0])
	assert.Equal(t, "Количество", rows[0][8])
	assert.Equal(t, "Джемпер_C5 50706", rows[1][2])
	assert.Equal(t, "M", rows[1][3])
	assert.Equal(t, "1", rows[1][8])
	assert.Equal(t, "2", rows[2][8])
}

func TestWriter_WriteProblemReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.xlsx")

	problems := []report.Problem{
		{
			Row: 9, Product: "Джемпер_C5 50706", Variant: "M",
			Kind: report.ProblemInsufficientSizes, Store: "125007",
			Detail: "insufficient sizes, have 2, need >=3",
		},
	}

	require.NoError(t, NewWriter(nil).WriteProblemReport(path, problems))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "Строка", rows[0][0])
	assert.Equal(t, "9", rows[1][0])
	assert.Equal(t, "InsufficientSizes", rows[1][3])
	assert.Equal(t, "125007", rows[1][4])
}

func TestWriter_PatchWorkbook(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInventoryWorkbook(t, dir)
	outPath := filepath.Join(dir, "updated.xlsx")

	previews := []entities.RowPreview{
		{
			Row: 9,
			Transfers: []entities.TransferUnit{
				{Sender: "Сток", Receiver: storeMSK, Quantity: 1},
				{Sender: "Сток", Receiver: storeSPB, Quantity: 1},
			},
		},
	}

	warnings, err := NewWriter(nil).PatchWorkbook(inPath, outPath, previews, "Сток", 7)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	rows := readRows(t, outPath)
	data := rows[8] // sheet row 9
	assert.Equal(t, "1", data[4], "source pool decremented")
	assert.Equal(t, "1", data[6], "MSK incremented")
	assert.Equal(t, "3", data[7], "SPB incremented")
}

func TestWriter_PatchWorkbook_ClampsAndWarns(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInventoryWorkbook(t, dir)
	outPath := filepath.Join(dir, "updated.xlsx")

	previews := []entities.RowPreview{
		{
			Row: 9,
			Transfers: []entities.TransferUnit{
				{Sender: "Сток", Receiver: storeMSK, Quantity: 5},
			},
		},
	}

	warnings, err := NewWriter(nil).PatchWorkbook(inPath, outPath, previews, "Сток", 7)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "clamped to zero")

	rows := readRows(t, outPath)
	assert.Equal(t, "0", rows[8][4])
}

func TestWriter_WriteUpdatedInventory(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInventoryWorkbook(t, dir)
	outPath := filepath.Join(dir, "updated.xlsx")

	rows := []entities.ProductRow{
		{
			Row:     9,
			Product: "Джемпер_C5 50706",
			Variant: "M",
			Pools:   map[string]entities.Quantity{"Сток": 1, "Фото склад": 1},
			Stores:  map[string]entities.Quantity{storeMSK: 1, storeSPB: 3},
		},
	}

	warnings, err := NewWriter(nil).WriteUpdatedInventory(inPath, outPath, rows, 7)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	got := readRows(t, outPath)
	data := got[8] // sheet row 9
	assert.Equal(t, "1", data[4], "pool written")
	assert.Equal(t, "1", data[5], "photo pool written")
	assert.Equal(t, "1", data[6], "MSK written")
	assert.Equal(t, "3", data[7], "SPB written")
}

func TestWriter_WriteUpdatedInventory_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInventoryWorkbook(t, dir)
	outPath := filepath.Join(dir, "updated.xlsx")

	rows := []entities.ProductRow{
		{
			Row:    9,
			Pools:  map[string]entities.Quantity{"Сток": 2},
			Stores: map[string]entities.Quantity{"999999 Unknown Store": 1},
		},
	}

	warnings, err := NewWriter(nil).WriteUpdatedInventory(inPath, outPath, rows, 7)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not found")

	// The workbook is still written with the known cells updated.
	got := readRows(t, outPath)
	assert.Equal(t, "2", got[8][4])
}

func TestWriter_PatchWorkbook_MissingReceiverColumn(t *testing.T) {
	dir := t.TempDir()
	inPath := writeInventoryWorkbook(t, dir)
	outPath := filepath.Join(dir, "updated.xlsx")

	previews := []entities.RowPreview{
		{
			Row: 9,
			Transfers: []entities.TransferUnit{
				{Sender: "Сток", Receiver: "999999 Unknown Store", Quantity: 1},
			},
		},
	}

	warnings, err := NewWriter(nil).PatchWorkbook(inPath, outPath, previews, "Сток", 7)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "not found")

	// The workbook is still written, with the source decremented.
	rows := readRows(t, outPath)
	assert.Equal(t, "2", rows[8][4])
}
