// Package ledger turns per-row transfer decisions into exportable batches
// grouped by (sender, receiver).
package ledger

import (
	"github.com/google/uuid"

	"stockalloc/pkg/domain/entities"
)

type batchKey struct {
	sender   string
	receiver string
}

// Group aggregates the transfers of a whole pass into one TransferBatch per
// (sender, receiver) pair, one line per original product/size.
//
// Receiver identity is normalized: the pool keeps its name, store labels are
// reduced to their numeric code. Self-transfers are filtered out defensively;
// the engines should never produce them. Batch order follows the first
// appearance of each pair in the preview sequence.
func Group(previews []entities.RowPreview, poolName string) []entities.TransferBatch {
	byKey := make(map[batchKey]*entities.TransferBatch)
	var order []batchKey

	for i := range previews {
		p := &previews[i]
		for _, t := range p.Transfers {
			key := batchKey{
				sender:   normalize(t.Sender, poolName),
				receiver: normalize(t.Receiver, poolName),
			}
			if key.sender == key.receiver {
				continue
			}

			batch, ok := byKey[key]
			if !ok {
				batch = &entities.TransferBatch{
					ID:       uuid.New(),
					Sender:   key.sender,
					Receiver: key.receiver,
				}
				byKey[key] = batch
				order = append(order, key)
			}

			batch.Lines = append(batch.Lines, entities.BatchLine{
				Product:  p.Product,
				Variant:  p.Variant,
				Quantity: t.Quantity,
			})
		}
	}

	batches := make([]entities.TransferBatch, 0, len(order))
	for _, key := range order {
		batches = append(batches, *byKey[key])
	}
	return batches
}

// normalize reduces a transfer counterparty to its document identity: pool
// names (and the photo pool's short name) pass through, store labels become
// their leading numeric code.
func normalize(party, poolName string) string {
	if party == poolName {
		return poolName
	}
	if _, ok := entities.ParseStoreCode(party); ok {
		return entities.StoreCodeString(party)
	}
	return party
}
