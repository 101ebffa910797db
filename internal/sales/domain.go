package sales

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyCart is returned when committing a sale with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidQuantity is returned for a cart line with quantity < 1.
var ErrInvalidQuantity = errors.New("line quantity must be at least one")

// ErrInsufficientStock is returned when a cart line asks for more units
// than the item has on hand. The commit writes nothing in that case.
var ErrInsufficientStock = errors.New("insufficient stock for item")

// ErrAlreadyVoided is returned when voiding a sale that is already voided.
// Voided is terminal; stock is never restored twice.
var ErrAlreadyVoided = errors.New("sale already voided")

// ErrInvalidStatus is returned for an unknown status filter value.
var ErrInvalidStatus = errors.New("invalid status value")

// ErrInvalidPayment is returned for a payment method outside the closed set.
var ErrInvalidPayment = errors.New("invalid payment method")

// Status of a sale record. Commit creates Success; void moves Success to
// Voided, one way. Voided is terminal.
const (
	StatusSuccess = "Success"
	StatusVoided  = "Voided"
)

// Payment methods form a closed enumeration.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// ValidPayment reports whether m is one of the known payment methods.
func ValidPayment(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Line is one committed sale line. UnitPrice is the inventory price at
// commit time; lines never change after the record is created.
type Line struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Record is one sales ledger entry. Items and TotalAmount are immutable
// once created; only Status moves, and only from Success to Voided.
type Record struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	PaymentMethod string          `json:"paymentMethod"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CreatedAt     string          `json:"createdAt"`
	Status        string          `json:"status"`
	Items         []Line          `json:"items"`
}

// CartLine is one requested line of an in-progress sale. It exists only
// until commit; the unit price is resolved from inventory at commit time.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Metadata summarizes a search result set.
type Metadata struct {
	Quantity    int             `json:"quantity"`
	Succeeded   int             `json:"succeeded"`
	Voided      int             `json:"voided"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
