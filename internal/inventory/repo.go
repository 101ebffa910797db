package inventory

import (
	"errors"

	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// Load reads the whole inventory ledger inside tx.
// A missing or corrupted value is treated as an empty ledger.
func Load(tx store.Tx) ([]Item, error) {
	var items []Item
	if err := tx.Get(store.KeyInventory, &items); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Item{}, nil
		}
		return nil, err
	}
	return items, nil
}

// Save writes the whole inventory ledger inside tx.
func Save(tx store.Tx, items []Item) error {
	return tx.Put(store.KeyInventory, items)
}

// Find returns the index of the item with the given ID, or -1.
func Find(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
