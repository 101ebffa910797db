package inventory

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no item with the given ID exists.
var ErrNotFound = errors.New("item not found")

// ErrStockBelowZero is returned when a removal would drive stock negative.
// The removal is rejected outright; stock is never silently clamped.
var ErrStockBelowZero = errors.New("cannot reduce stock below zero")

// ErrInvalidQuantity is returned for zero or negative adjustment quantities.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Item is one catalog entry in the inventory ledger.
// Stock is an integer count and holds the invariant stock >= 0
// across every mutation.
type Item struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	MinStockLevel int             `json:"minStockLevel"`
	LastRestocked string          `json:"lastRestocked"`
}

// LowStock reports whether the item sits below its configured minimum.
func (i Item) LowStock() bool {
	return i.Stock < i.MinStockLevel
}
