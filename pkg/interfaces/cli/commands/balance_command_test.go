package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stockalloc/pkg/domain/entities"
)

// writeBalanceWorkbook builds a minimal inventory export where one paired
// store holds a surplus: header on row 1, placeholder sub-header on row 2,
// data from row 3.
func writeBalanceWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	setRow := func(ref string, values []interface{}) {
		require.NoError(t, f.SetSheetRow(sheet, ref, &values))
	}

	setRow("A1", []interface{}{
		"Номенклатура", "Характеристика", "Сток",
		"125004 EKT-PC-Гринвич", "125005 EKT-PC-Мега",
	})
	setRow("A2", []interface{}{
		"", "", entities.PlaceholderCell,
		entities.PlaceholderCell, entities.PlaceholderCell,
	})
	setRow("A3", []interface{}{
		"Джемпер_C5 50706", "M", "0", "5", "0",
	})

	path := filepath.Join(dir, "inventory.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestBalanceCommand_UpdateWorkbook(t *testing.T) {
	dir := t.TempDir()
	inPath := writeBalanceWorkbook(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := NewBalanceCommand(Config{
		InputFile:      inPath,
		OutputDir:      outDir,
		Threshold:      -1,
		Format:         "text",
		Execute:        true,
		UpdateWorkbook: true,
	})
	require.NoError(t, cmd.Execute(context.Background()))

	// At the default threshold of 2 the donor holds a surplus of 3: one
	// unit fills the empty partner, the remaining two return to the pool.
	f, err := excelize.OpenFile(filepath.Join(outDir, "updated_inventory.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)

	data := rows[2] // sheet row 3
	assert.Equal(t, "2", data[2], "pool credited with the remainder")
	assert.Equal(t, "2", data[3], "donor reduced to the threshold")
	assert.Equal(t, "1", data[4], "partner filled with one unit")
}
