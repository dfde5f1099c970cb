package services

import (
	"stockalloc/pkg/domain/entities"
)

// BuildSizeFamilies groups row indices by product name, preserving input
// order. A size family is the set of rows differing only by size/variant.
func BuildSizeFamilies(rows []entities.ProductRow) map[string][]int {
	families := make(map[string][]int)
	for i, row := range rows {
		families[row.Product] = append(families[row.Product], i)
	}
	return families
}

// CompletenessPolicy decides when a receiving store must take either all
// qualifying sizes of a product or none, so a size run is never fragmented.
//
// The rule only matters for products with a real size run (MinFamilySizes or
// more) being sent to a store that holds at most one size already. When it
// applies, at least MinSendableSizes distinct sizes must be available or
// nothing moves.
type CompletenessPolicy struct {
	MinFamilySizes   int
	MinSendableSizes int
}

// maxExistingSizes is the largest number of distinct sizes a store may
// already hold for the rule to apply; with two or more sizes the store has a
// partial run and standard per-size distribution takes over.
const maxExistingSizes = 1

// DefaultCompletenessPolicy returns the production thresholds: families of
// four or more sizes, three or more sizes required to send.
func DefaultCompletenessPolicy() CompletenessPolicy {
	return CompletenessPolicy{MinFamilySizes: 4, MinSendableSizes: 3}
}

// CompletenessDecision is the outcome of evaluating the policy for one
// candidate receiving store.
type CompletenessDecision struct {
	// Applies reports whether the all-or-nothing rule is active for this
	// family and store. When false, standard distribution proceeds.
	Applies bool

	// SendAll is valid when Applies: true means every row in Sendable
	// transfers in one coordinated step, false means nothing transfers.
	SendAll bool

	// Sendable holds the family row indices with units available for a
	// size the store lacks.
	Sendable []int

	// Have and Need describe the shortfall when SendAll is false.
	Have int
	Need int
}

// Evaluate applies the policy to one candidate receiving store. It is a pure
// function of its inputs and is called independently per store.
//
// family holds the row indices of the product's size family. storeQty returns
// the store's current quantity for a family row (from the pass's working
// state), and available returns the units that could be sent for that row
// (source pool remainder for push, sender surplus for rebalance).
func (p CompletenessPolicy) Evaluate(
	family []int,
	storeQty func(rowIdx int) entities.Quantity,
	available func(rowIdx int) entities.Quantity,
) CompletenessDecision {
	if len(family) < p.MinFamilySizes {
		return CompletenessDecision{}
	}

	existing := 0
	for _, idx := range family {
		if storeQty(idx) > 0 {
			existing++
		}
	}
	if existing > maxExistingSizes {
		return CompletenessDecision{}
	}

	var sendable []int
	for _, idx := range family {
		if storeQty(idx) == 0 && available(idx) > 0 {
			sendable = append(sendable, idx)
		}
	}

	if len(sendable) < p.MinSendableSizes {
		return CompletenessDecision{
			Applies: true,
			SendAll: false,
			Have:    len(sendable),
			Need:    p.MinSendableSizes,
		}
	}

	return CompletenessDecision{
		Applies:  true,
		SendAll:  true,
		Sendable: sendable,
	}
}
