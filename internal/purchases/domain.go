package purchases

import (
	"github.com/shopspring/decimal"
)

// Record is one procurement entry. Creating one increments the purchased
// item's stock in the same transaction.
type Record struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	SKU       string          `json:"sku"`
	Supplier  string          `json:"supplier"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Date      string          `json:"date"`
}
