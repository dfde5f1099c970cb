// Package balancing implements the rebalancing pass: surplus above the
// configured threshold moves away from overstocked stores, preferring a
// paired partner over the central pool.
package balancing

import (
	"fmt"
	"sort"

	"stockalloc/pkg/application/services/ledger"
	"stockalloc/pkg/application/services/shared"
	"stockalloc/pkg/domain/entities"
	"stockalloc/pkg/domain/services"
)

// Engine identifies stores holding more than the threshold of a size and
// redistributes the surplus: one unit to an empty, non-excluded partner when
// a pair is configured and the completeness policy permits, everything else
// to the central pool. Rebalancing never distributes surplus to non-partner
// stores.
type Engine struct {
	cfg    *entities.AllocationConfig
	sales  *entities.SalesPriorityIndex
	policy services.CompletenessPolicy
}

// NewEngine creates a rebalancing engine. The sales index is optional.
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

// Preview computes the planned rebalancing without side effects, one
// RowPreview per input row in input order. It never mutates the caller's
// rows and is idempotent.
func (e *Engine) Preview(rows []entities.ProductRow) ([]entities.RowPreview, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	families := services.BuildSizeFamilies(rows)
	present := shared.PresentStores(rows)
	threshold := e.cfg.BalanceThreshold
	pool := e.cfg.PoolName()

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

	// Working copies of receiver quantities, so a partner filled for one
	// size is visible to later senders and to the completeness policy.
	working := make([]map[string]entities.Quantity, len(rows))
	storeQty := func(rowIdx int, store string) entities.Quantity {
		if w := working[rowIdx]; w != nil {
			if qty, ok := w[store]; ok {
				return qty
			}
		}
		return rows[rowIdx].StoreQty(store)
	}
	setStoreQty := func(rowIdx int, store string, qty entities.Quantity) {
		if working[rowIdx] == nil {
			working[rowIdx] = make(map[string]entities.Quantity)
		}
		working[rowIdx][store] = qty
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

		// Senders: active stores above threshold, largest stock first.
		// The order decides who fills an empty partner when several
		// senders compete.
		type donor struct {
			label string
			qty   entities.Quantity
		}
		var donors []donor
		for _, label := range ordered {
			if qty := storeQty(i, label); qty > threshold {
				donors = append(donors, donor{label: label, qty: qty})
			}
		}
		if len(donors) == 0 {
			continue
		}
		sort.SliceStable(donors, func(a, b int) bool { return donors[a].qty > donors[b].qty })

		for _, d := range donors {
			excess := d.qty - threshold
			if excess <= 0 {
				continue
			}
			senderCode := entities.StoreCodeString(d.label)

			if partner, ok := e.findPartner(d.label, ordered); ok {
				decision := e.policy.Evaluate(family,
					func(j int) entities.Quantity { return storeQty(j, partner) },
					func(j int) entities.Quantity {
						surplus := storeQty(j, d.label) - threshold
						if surplus < 0 {
							return 0
						}
						return surplus
					},
				)

				switch {
				case decision.Applies && !decision.SendAll:
					p.Skipped = append(p.Skipped, entities.SkippedStore{
						Store:  partner,
						Reason: entities.PartnerBlocked(decision.Have, decision.Need),
					})
					p.MinSizesSkipped = true

				case storeQty(i, partner) == 0:
					p.Transfers = append(p.Transfers, entities.TransferUnit{
						Sender:   senderCode,
						Receiver: partner,
						Quantity: 1,
					})
					setStoreQty(i, partner, 1)
					excess--
				}
			}

			// Whatever is left goes to the pool as one batched unit.
			if excess > 0 {
				p.Transfers = append(p.Transfers, entities.TransferUnit{
					Sender:   senderCode,
					Receiver: pool,
					Quantity: excess,
				})
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
func (e *Engine) Execute(rows []entities.ProductRow) ([]entities.RowPreview, []entities.TransferBatch, error) {
	previews, err := e.Preview(rows)
	if err != nil {
		return nil, nil, err
	}
	return previews, ledger.Group(previews, e.cfg.PoolName()), nil
}

// findPartner resolves the configured balancing partner of a sender among the
// active candidate stores. A partner that is excluded or absent from the
// table is not found.
func (e *Engine) findPartner(sender string, candidates []string) (string, bool) {
	code, ok := entities.ParseStoreCode(sender)
	if !ok {
		return "", false
	}
	partnerCode, ok := e.cfg.PartnerOf(code)
	if !ok {
		return "", false
	}
	for _, label := range candidates {
		if c, ok := entities.ParseStoreCode(label); ok && c == partnerCode && label != sender {
			return label, true
		}
	}
	return "", false
}

// finalizeSkipReason promotes the first partner veto to the row-level skip
// reason when the row ended up moving nothing.
func finalizeSkipReason(p *entities.RowPreview) {
	if p.HasTransfers() || !p.MinSizesSkipped {
		return
	}
	for _, s := range p.Skipped {
		if s.Reason.Kind == entities.SkipPartnerBlocked {
			reason := s.Reason
			p.SkipReason = &reason
			return
		}
	}
}
