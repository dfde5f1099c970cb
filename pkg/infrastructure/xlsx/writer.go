package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"stockalloc/pkg/application/services/report"
	"stockalloc/pkg/domain/entities"
)

// exportColumns is the fixed layout of a transfer document. The free-text
// fields are passed through blank.
var exportColumns = []string{
	"Артикул",
	"Код номенклатуры",
	"Номенклатура",
	"Характеристика",
	"Назначение",
	"Серия",
	"Код упаковки",
	"Упаковка",
	"Количество",
}

// Writer produces transfer documents and updated-inventory workbooks.
type Writer struct {
	log *zap.Logger
}

// NewWriter creates a workbook writer. A nil logger disables logging.
func NewWriter(log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{log: log}
}

// WriteBatches writes one transfer document per batch into dir, named
// "<sender>_to_<receiver>_<timestamp>.xlsx", and returns the created paths.
func (w *Writer) WriteBatches(dir string, batches []entities.TransferBatch, at time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	timestamp := at.Format("20060102_150405")
	var files []string

	for i := range batches {
		b := &batches[i]
		name := fmt.Sprintf("%s_to_%s_%s.xlsx", b.Sender, b.Receiver, timestamp)
		path := filepath.Join(dir, name)

		if err := writeBatchFile(path, b); err != nil {
			return files, err
		}

		w.log.Info("wrote transfer document",
			zap.String("file", name),
			zap.String("sender", b.Sender),
			zap.String("receiver", b.Receiver),
			zap.Int("lines", len(b.Lines)),
			zap.Int64("quantity", int64(b.TotalQuantity())))
		files = append(files, path)
	}
	return files, nil
}

func writeBatchFile(path string, b *entities.TransferBatch) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	header := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, line := range b.Lines {
		row := []interface{}{"", "", line.Product, line.Variant, "", "", "", "", int64(line.Quantity)}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// problemColumns is the layout of the problem report.
var problemColumns = []string{
	"Строка",
	"Артикул",
	"Характеристика",
	"Проблема",
	"Магазин",
	"Детали",
}

// WriteProblemReport writes the remark list of a pass to an xlsx file. An
// empty problem list still produces a file with the header row.
func (w *Writer) WriteProblemReport(path string, problems []report.Problem) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	header := make([]interface{}, len(problemColumns))
	for i, col := range problemColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range problems {
		row := []interface{}{p.Row, p.Product, p.Variant, p.Kind.String(), p.Store, p.Detail}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write problem %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	w.log.Info("wrote problem report",
		zap.String("file", path),
		zap.Int("problems", len(problems)))
	return nil
}

// PatchWorkbook applies a distribution pass to the original inventory
// workbook: the source column is decremented by each row's transferred
// total and receiver columns are incremented, preserving the rest of the
// workbook. The patched copy is saved to outPath.
//
// Problems (missing columns, quantities clamped at zero) are returned as
// warnings, never as errors; the workbook is always written.
func (w *Writer) PatchWorkbook(inPath, outPath string, previews []entities.RowPreview, sourceColumn string, headerRow int) ([]string, error) {
	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", inPath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", inPath)
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if headerRow < 1 || headerRow > len(raw) {
		return nil, fmt.Errorf("header row %d out of range", headerRow)
	}

	// 1-based column indexes by header name.
	columns := make(map[string]int)
	for i, name := range raw[headerRow-1] {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			columns[trimmed] = i + 1
		}
	}

	var warnings []string

	sourceCol, ok := columns[sourceColumn]
	if !ok {
		warnings = append(warnings, fmt.Sprintf("source column %q not found", sourceColumn))
		if err := f.SaveAs(outPath); err != nil {
			return warnings, fmt.Errorf("failed to save %s: %w", outPath, err)
		}
		return warnings, nil
	}

	for i := range previews {
		p := &previews[i]
		if !p.HasTransfers() {
			continue
		}

		current := entities.ParseCellQuantity(cell(raw[p.Row-1], sourceCol-1))
		next := current - p.TotalQuantity()
		if next < 0 {
			warnings = append(warnings, fmt.Sprintf(
				"row %d: source quantity %d insufficient for transfer of %d, clamped to zero",
				p.Row, current, p.TotalQuantity()))
			next = 0
		}
		if err := setQuantity(f, sheet, sourceCol, p.Row, next); err != nil {
			return warnings, err
		}

		for _, t := range p.Transfers {
			col, ok := findReceiverColumn(columns, t.Receiver)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("row %d: receiver column %q not found", p.Row, t.Receiver))
				continue
			}
			existing := entities.ParseCellQuantity(cell(raw[p.Row-1], col-1))
			if err := setQuantity(f, sheet, col, p.Row, existing+t.Quantity); err != nil {
				return warnings, err
			}
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return warnings, fmt.Errorf("failed to save %s: %w", outPath, err)
	}

	w.log.Info("wrote updated inventory workbook",
		zap.String("file", outPath),
		zap.Int("warnings", len(warnings)))
	return warnings, nil
}

// WriteUpdatedInventory writes a copy of the inventory workbook with every
// quantity cell replaced by the values of an updated snapshot row set.
// Unlike PatchWorkbook it is not tied to a single source column, so it
// serves passes where stores themselves are senders.
//
// Columns absent from the workbook are reported as warnings and skipped;
// the workbook is always written.
func (w *Writer) WriteUpdatedInventory(inPath, outPath string, rows []entities.ProductRow, headerRow int) ([]string, error) {
	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", inPath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", inPath)
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if headerRow < 1 || headerRow > len(raw) {
		return nil, fmt.Errorf("header row %d out of range", headerRow)
	}

	columns := make(map[string]int)
	for i, name := range raw[headerRow-1] {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			columns[trimmed] = i + 1
		}
	}

	var warnings []string
	setCell := func(rowNum int, name string, qty entities.Quantity) error {
		col, ok := columns[name]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: column %q not found", rowNum, name))
			return nil
		}
		return setQuantity(f, sheet, col, rowNum, qty)
	}

	for i := range rows {
		row := &rows[i]
		for pool, qty := range row.Pools {
			if err := setCell(row.Row, pool, qty); err != nil {
				return warnings, err
			}
		}
		for label, qty := range row.Stores {
			if err := setCell(row.Row, label, qty); err != nil {
				return warnings, err
			}
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return warnings, fmt.Errorf("failed to save %s: %w", outPath, err)
	}

	w.log.Info("wrote updated inventory workbook",
		zap.String("file", outPath),
		zap.Int("warnings", len(warnings)))
	return warnings, nil
}

// findReceiverColumn resolves a receiver to a workbook column, by exact
// header first, then by store-code prefix.
func findReceiverColumn(columns map[string]int, receiver string) (int, bool) {
	if col, ok := columns[receiver]; ok {
		return col, true
	}
	code := entities.StoreCodeString(receiver)
	for name, col := range columns {
		if strings.HasPrefix(name, code+" ") {
			return col, true
		}
	}
	return 0, false
}

func setQuantity(f *excelize.File, sheet string, col, row int, qty entities.Quantity) error {
	cellRef, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cellRef, int64(qty)); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cellRef, err)
	}
	return nil
}
