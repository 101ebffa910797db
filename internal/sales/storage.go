package sales

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// Load reads the whole sales ledger inside tx, newest first.
// A missing or corrupted value is treated as an empty ledger.
func Load(tx store.Tx) ([]Record, error) {
	var records []Record
	if err := tx.Get(store.KeySales, &records); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Record{}, nil
		}
		return nil, err
	}
	return records, nil
}

// Save writes the whole sales ledger inside tx.
func Save(tx store.Tx, records []Record) error {
	return tx.Put(store.KeySales, records)
}

// nextOrderID synthesizes the next "ORD-###" identifier from the highest
// number already in the ledger. The demo ledger starts at ORD-101.
func nextOrderID(records []Record) string {
	next := 101
	for _, r := range records {
		num, ok := strings.CutPrefix(r.ID, "ORD-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(num); err == nil && n >= next {
			next = n + 1
		}
	}
	return fmt.Sprintf("ORD-%d", next)
}
