// Package distribution implements the push allocation pass: units move from a
// central source pool to stores currently holding zero stock of a size.
package distribution

import (
	"fmt"

	"stockalloc/pkg/application/services/ledger"
	"stockalloc/pkg/application/services/shared"
	"stockalloc/pkg/domain/entities"
	"stockalloc/pkg/domain/services"
)

// Source identifies which pool column feeds the distribution pass. The two
// pools are interchangeable; only the column and the sender name differ.
type Source int

const (
	SourceStock Source = iota
	SourcePhoto
)

// String method for Source enum
func (s Source) String() string {
	switch s {
	case SourceStock:
		return "stock"
	case SourcePhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// ParseSource parses the CLI form of a source selector.
func ParseSource(s string) (Source, error) {
	switch s {
	case "stock":
		return SourceStock, nil
	case "photo":
		return SourcePhoto, nil
	default:
		return SourceStock, fmt.Errorf("invalid source: %s (expected 'stock' or 'photo')", s)
	}
}

// Column returns the pool column this source draws from.
func (s Source) Column(cfg *entities.AllocationConfig) string {
	if s == SourcePhoto {
		return cfg.Columns.PhotoStock
	}
	return cfg.Columns.Stock
}

// SenderName returns the name transfer documents use for this source.
func (s Source) SenderName() string {
	if s == SourcePhoto {
		return "Фото"
	}
	return "Сток"
}

// Engine walks candidate stores in priority order for each row and allocates
// available pool units to stores with zero existing stock, subject to the
// size-completeness policy.
type Engine struct {
	cfg    *entities.AllocationConfig
	sales  *entities.SalesPriorityIndex
	policy services.CompletenessPolicy
}

// NewEngine creates a push distribution engine. The sales index is optional;
// without it the static store priority is used for every product.
func NewEngine(cfg *entities.AllocationConfig, sales *entities.SalesPriorityIndex) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("allocation config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		sales:  sales,
		policy: services.DefaultCompletenessPolicy(),
	}, nil
}

// Preview computes the planned distribution without side effects. It returns
// one RowPreview per input row, in input order; rows with nothing to move
// carry empty transfer lists. Calling Preview repeatedly on the same input
// yields identical results and never mutates the rows.
func (e *Engine) Preview(rows []entities.ProductRow, source Source) ([]entities.RowPreview, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	families := services.BuildSizeFamilies(rows)
	state := newPassState(rows, source.Column(e.cfg))
	present := shared.PresentStores(rows)
	sender := source.SenderName()

	// Excluded stores present in the table are recorded on every row for
	// transparency.
	var excluded []string
	for _, label := range services.FullPriority(e.cfg, present) {
		if e.cfg.IsExcluded(label) {
			excluded = append(excluded, label)
		}
	}

	previews := make([]entities.RowPreview, len(rows))
	for i, row := range rows {
		previews[i] = entities.RowPreview{
			Row:     row.Row,
			Product: row.Product,
			Variant: row.Variant,
		}
	}

	for i := range rows {
		p := &previews[i]
		family := families[rows[i].Product]
		p.StandardFallback = len(family) < e.policy.MinFamilySizes

		ordered, usedFallback := services.ResolvePriority(rows[i].Product, e.cfg, e.sales, present)
		p.UsesFallbackPriority = usedFallback

		for _, label := range excluded {
			p.Skipped = append(p.Skipped, entities.SkippedStore{Store: label, Reason: entities.Excluded()})
		}

		if state.remaining[i] <= 0 {
			continue
		}

		for _, store := range ordered {
			if state.remaining[i] <= 0 {
				break
			}

			if qty := state.storeQty(i, store); qty > 0 {
				// A store this row already shipped to in a coordinated
				// family step is not a skip.
				if !transferredTo(p, store) {
					p.Skipped = append(p.Skipped, entities.SkippedStore{Store: store, Reason: entities.HasStock(qty)})
				}
				continue
			}

			decision := e.policy.Evaluate(family,
				func(j int) entities.Quantity { return state.storeQty(j, store) },
				func(j int) entities.Quantity { return state.remaining[j] },
			)

			switch {
			case !decision.Applies:
				// Standard behavior: one unit for this size.
				state.allocate(i, store, &previews[i], sender)

			case decision.SendAll:
				// All-or-nothing fired: every qualifying size of the
				// family moves to this store in one coordinated step.
				for _, j := range decision.Sendable {
					state.allocate(j, store, &previews[j], sender)
				}

			default:
				p.Skipped = append(p.Skipped, entities.SkippedStore{
					Store:  store,
					Reason: entities.InsufficientSizes(decision.Have, decision.Need),
				})
				p.MinSizesSkipped = true
			}
		}
	}

	for i := range previews {
		finalizeSkipReason(&previews[i])
	}
	return previews, nil
}

// Execute runs Preview and groups the resulting transfers into per
// (sender, receiver) batches ready for export.
func (e *Engine) Execute(rows []entities.ProductRow, source Source) ([]entities.RowPreview, []entities.TransferBatch, error) {
	previews, err := e.Preview(rows, source)
	if err != nil {
		return nil, nil, err
	}
	return previews, ledger.Group(previews, e.cfg.PoolName()), nil
}

// transferredTo reports whether the row's preview already carries a transfer
// to the labeled store.
func transferredTo(p *entities.RowPreview, store string) bool {
	for _, t := range p.Transfers {
		if t.Receiver == store {
			return true
		}
	}
	return false
}

// finalizeSkipReason promotes the first completeness veto to the row-level
// skip reason when the row ended up moving nothing.
func finalizeSkipReason(p *entities.RowPreview) {
	if p.HasTransfers() || !p.MinSizesSkipped {
		return
	}
	for _, s := range p.Skipped {
		if s.Reason.Kind == entities.SkipInsufficientSizes {
			reason := s.Reason
			p.SkipReason = &reason
			return
		}
	}
}

// passState is the allocation state of one pass: working copies of the
// per-row source remainder and of the store quantities touched so far. It is
// discarded when the pass ends; the caller's rows are never written.
type passState struct {
	rows      []entities.ProductRow
	remaining []entities.Quantity
	working   []map[string]entities.Quantity
}

func newPassState(rows []entities.ProductRow, sourceColumn string) *passState {
	s := &passState{
		rows:      rows,
		remaining: make([]entities.Quantity, len(rows)),
		working:   make([]map[string]entities.Quantity, len(rows)),
	}
	for i := range rows {
		s.remaining[i] = rows[i].PoolQty(sourceColumn)
	}
	return s
}

func (s *passState) storeQty(rowIdx int, store string) entities.Quantity {
	if w := s.working[rowIdx]; w != nil {
		if qty, ok := w[store]; ok {
			return qty
		}
	}
	return s.rows[rowIdx].StoreQty(store)
}

func (s *passState) setStoreQty(rowIdx int, store string, qty entities.Quantity) {
	if s.working[rowIdx] == nil {
		s.working[rowIdx] = make(map[string]entities.Quantity)
	}
	s.working[rowIdx][store] = qty
}

// allocate moves one unit from the row's source remainder to a store and
// records the transfer on the row's preview.
func (s *passState) allocate(rowIdx int, store string, p *entities.RowPreview, sender string) {
	p.Transfers = append(p.Transfers, entities.TransferUnit{
		Sender:   sender,
		Receiver: store,
		Quantity: 1,
	})
	s.remaining[rowIdx]--
	s.setStoreQty(rowIdx, store, s.storeQty(rowIdx, store)+1)
}
