package store

import "errors"

// ErrKeyNotFound is returned when a key has no value in the store.
var ErrKeyNotFound = errors.New("key not found")

// Well-known keys. Each key holds one JSON-encoded ledger or setting.
// There is no versioning field; a shape change requires a manual reset.
const (
	KeySales         = "nashwa_sales"
	KeyInventory     = "nashwa_inventory"
	KeyCustomers     = "nashwa_customers"
	KeyCustomerLogs  = "nashwa_customer_logs"
	KeyPurchases     = "nashwa_purchases"
	KeyExpenses      = "nashwa_expenses"
	KeyExpenseLogs   = "nashwa_expense_logs"
	KeyUsers         = "nashwa_users"
	KeyCurrency      = "nashwa_currency"
	KeyNotifications = "nashwa_notifications"
	KeyLoginLogs     = "nashwa_login_logs"
)

// Tx is a single read or read-write transaction over the store.
// Values are marshalled to and from JSON.
type Tx interface {
	// Get unmarshals the value at key into v.
	// Returns ErrKeyNotFound if the key has no value.
	Get(key string, v any) error

	// Put marshals v and stores it at key, replacing any previous value.
	Put(key string, v any) error

	// Delete removes the value at key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Store is the persistent key-value store behind every ledger.
// Update runs fn in one transaction: either every Put in fn lands or none
// does, which is what keeps the sales ledger and the inventory ledger from
// desynchronizing mid-command. fn may run more than once when concurrent
// writers collide, so it must not accumulate state outside the closure
// across attempts.
type Store interface {
	View(fn func(Tx) error) error
	Update(fn func(Tx) error) error
	Close() error
}
