package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// SkipReasonKind identifies why a candidate store was passed over.
type SkipReasonKind int

const (
	// SkipHasStock - the store already holds units of this size.
	SkipHasStock SkipReasonKind = iota
	// SkipExcluded - the store is on the exclusion list.
	SkipExcluded
	// SkipInsufficientSizes - the all-or-nothing completeness rule vetoed
	// the transfer because too few sizes were available to send.
	SkipInsufficientSizes
	// SkipPartnerBlocked - a rebalancing partner was vetoed by the
	// completeness rule.
	SkipPartnerBlocked
)

// String method for SkipReasonKind enum
func (k SkipReasonKind) String() string {
	switch k {
	case SkipHasStock:
		return "HasStock"
	case SkipExcluded:
		return "Excluded"
	case SkipInsufficientSizes:
		return "InsufficientSizes"
	case SkipPartnerBlocked:
		return "PartnerBlocked"
	default:
		return "Unknown"
	}
}

// SkipReason is a structured account of a transfer that did not happen.
// Tests and reports assert on the kind and counts; Render produces the
// human-readable form.
type SkipReason struct {
	Kind SkipReasonKind

	// Existing is the store's pre-existing quantity (SkipHasStock).
	Existing Quantity

	// Have and Need describe the completeness shortfall
	// (SkipInsufficientSizes, SkipPartnerBlocked).
	Have int
	Need int
}

// HasStock builds the reason for a store that already holds stock.
func HasStock(existing Quantity) SkipReason {
	return SkipReason{Kind: SkipHasStock, Existing: existing}
}

// Excluded builds the reason for a store on the exclusion list.
func Excluded() SkipReason {
	return SkipReason{Kind: SkipExcluded}
}

// InsufficientSizes builds the completeness-rule veto reason.
func InsufficientSizes(have, need int) SkipReason {
	return SkipReason{Kind: SkipInsufficientSizes, Have: have, Need: need}
}

// PartnerBlocked builds the reason for a rebalancing partner vetoed by the
// completeness rule.
func PartnerBlocked(have, need int) SkipReason {
	return SkipReason{Kind: SkipPartnerBlocked, Have: have, Need: need}
}

// Render returns the human-readable form of the reason.
func (r SkipReason) Render() string {
	switch r.Kind {
	case SkipHasStock:
		return fmt.Sprintf("already has stock (%d)", r.Existing)
	case SkipExcluded:
		return "store excluded from allocation"
	case SkipInsufficientSizes:
		return fmt.Sprintf("insufficient sizes, have %d, need >=%d", r.Have, r.Need)
	case SkipPartnerBlocked:
		return fmt.Sprintf("partner blocked by completeness rule, have %d, need >=%d", r.Have, r.Need)
	default:
		return "unknown"
	}
}

// TransferUnit is one atomic allocation decision: move Quantity units from
// Sender to Receiver. Receiver is a full store label or the pool name.
type TransferUnit struct {
	Sender   string
	Receiver string
	Quantity Quantity
}

// SkippedStore records a store that was considered for a row but not used.
type SkippedStore struct {
	Store  string
	Reason SkipReason
}

// RowPreview aggregates all transfer decisions for one input row.
type RowPreview struct {
	// Row is the 1-based workbook row, for display and cell patching.
	Row     int
	Product string
	Variant string

	Transfers []TransferUnit

	// SkipReason is set when nothing could move for this row and explains
	// why. Rows that simply had nothing to do carry no reason.
	SkipReason *SkipReason

	// StandardFallback marks rows whose size family is too small for the
	// completeness rule, so standard one-per-size distribution applied.
	StandardFallback bool

	// UsesFallbackPriority marks rows whose store order came from static
	// configuration because the sales index had no entry for the product.
	UsesFallbackPriority bool

	// MinSizesSkipped marks rows where at least one store was vetoed by
	// the completeness rule.
	MinSizesSkipped bool

	// Skipped lists the stores considered but not used, with reasons.
	Skipped []SkippedStore
}

// TotalQuantity returns the total units moved for this row.
func (p *RowPreview) TotalQuantity() Quantity {
	var total Quantity
	for _, t := range p.Transfers {
		total += t.Quantity
	}
	return total
}

// HasTransfers reports whether any units move for this row.
func (p *RowPreview) HasTransfers() bool {
	return len(p.Transfers) > 0
}

// BatchLine is one exportable line of a transfer document: a product in one
// size with an integer quantity. The document format also carries free-text
// SKU fields that are passed through blank.
type BatchLine struct {
	Product  string
	Variant  string
	Quantity Quantity
}

// TransferBatch groups all units moving between one (sender, receiver) pair
// across a whole pass, materialized as one transfer document.
type TransferBatch struct {
	ID       uuid.UUID
	Sender   string
	Receiver string
	Lines    []BatchLine
}

// TotalQuantity returns the total units in the batch.
func (b *TransferBatch) TotalQuantity() Quantity {
	var total Quantity
	for _, l := range b.Lines {
		total += l.Quantity
	}
	return total
}
