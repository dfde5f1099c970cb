// Package snapshot derives an updated copy of the inventory table from an
// executed allocation pass.
package snapshot

import (
	"fmt"
	"strings"

	"stockalloc/pkg/domain/entities"
)

// Result is the updated inventory table plus the problems encountered while
// applying transfers. Warnings never abort the update; affected cells are
// clamped or left untouched.
type Result struct {
	Rows     []entities.ProductRow
	Warnings []string
}

// Apply produces a derived copy of the rows with every transfer of the pass
// applied: sender quantities decremented, receiver quantities incremented.
// The input rows are not modified.
//
// Senders and receivers are resolved first as pool names, then as exact store
// labels, then by store-code prefix. Quantities that would go negative are
// clamped to zero with a recorded warning.
func Apply(rows []entities.ProductRow, previews []entities.RowPreview) (*Result, error) {
	if len(previews) != len(rows) {
		return nil, fmt.Errorf("preview count %d does not match row count %d", len(previews), len(rows))
	}

	result := &Result{Rows: make([]entities.ProductRow, len(rows))}
	for i := range rows {
		result.Rows[i] = copyRow(&rows[i])
	}

	for i := range previews {
		p := &previews[i]
		row := &result.Rows[i]

		for _, t := range p.Transfers {
			result.debit(row, t.Sender, t.Quantity)
			result.credit(row, t.Receiver, t.Quantity)
		}
	}
	return result, nil
}

func (r *Result) debit(row *entities.ProductRow, party string, qty entities.Quantity) {
	if pool, ok := resolvePool(row, party); ok {
		next := row.Pools[pool] - qty
		if next < 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"row %d: source quantity %d insufficient for transfer of %d, clamped to zero",
				row.Row, row.Pools[pool], qty))
			next = 0
		}
		row.Pools[pool] = next
		return
	}

	label, ok := resolveStore(row, party)
	if !ok {
		r.Warnings = append(r.Warnings, fmt.Sprintf("row %d: sender %q not found", row.Row, party))
		return
	}
	next := row.Stores[label] - qty
	if next < 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"row %d: store %s quantity %d insufficient for transfer of %d, clamped to zero",
			row.Row, entities.StoreCodeString(label), row.Stores[label], qty))
		next = 0
	}
	row.Stores[label] = next
}

func (r *Result) credit(row *entities.ProductRow, party string, qty entities.Quantity) {
	if pool, ok := resolvePool(row, party); ok {
		row.Pools[pool] += qty
		return
	}

	label, ok := resolveStore(row, party)
	if !ok {
		r.Warnings = append(r.Warnings, fmt.Sprintf("row %d: receiver %q not found", row.Row, party))
		return
	}
	row.Stores[label] += qty
}

// resolvePool matches a counterparty against the row's pool columns. The
// short sender name of the photo pool ("Фото") matches its column by prefix.
func resolvePool(row *entities.ProductRow, party string) (string, bool) {
	if _, ok := row.Pools[party]; ok {
		return party, true
	}
	for name := range row.Pools {
		if strings.HasPrefix(name, party) {
			return name, true
		}
	}
	return "", false
}

// resolveStore matches a counterparty against the row's store labels, by
// exact label first, then by store-code prefix.
func resolveStore(row *entities.ProductRow, party string) (string, bool) {
	if _, ok := row.Stores[party]; ok {
		return party, true
	}
	code := entities.StoreCodeString(party)
	for label := range row.Stores {
		if strings.HasPrefix(label, code+" ") {
			return label, true
		}
	}
	return "", false
}

func copyRow(row *entities.ProductRow) entities.ProductRow {
	out := *row
	out.Pools = make(map[string]entities.Quantity, len(row.Pools))
	for k, v := range row.Pools {
		out.Pools[k] = v
	}
	out.Stores = make(map[string]entities.Quantity, len(row.Stores))
	for k, v := range row.Stores {
		out.Stores[k] = v
	}
	return out
}
