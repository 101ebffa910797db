package sales

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nobih83-prog/Inventory-menegement/internal/customers"
	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

type fixture struct {
	st        store.Store
	sales     *Service
	inventory *inventory.Service
	bus       *event.Bus
	events    *[]event.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(store.InMemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	bus := event.NewBus()
	events := &[]event.Event{}
	var mu sync.Mutex
	bus.Subscribe(func(e event.Event) {
		mu.Lock()
		*events = append(*events, e)
		mu.Unlock()
	})

	logger := zaptest.NewLogger(t)
	return &fixture{
		st:        st,
		sales:     NewService(st, bus, logger),
		inventory: inventory.NewService(st, bus, logger),
		bus:       bus,
		events:    events,
	}
}

func (f *fixture) addItem(t *testing.T, name string, price float64, stock, minLevel int) inventory.Item {
	t.Helper()
	item, err := f.inventory.Add(inventory.Item{
		Name:          name,
		SKU:           "SKU-" + name,
		Category:      "Coffee",
		Price:         decimal.NewFromFloat(price),
		Stock:         stock,
		MinStockLevel: minLevel,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) stockOf(t *testing.T, id string) int {
	t.Helper()
	item, err := f.inventory.Get(id)
	require.NoError(t, err)
	return item.Stock
}

func TestCommitTotalsAndStockDeduction(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)

	rec, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCard, "")
	require.NoError(t, err)

	// subtotal 25.00, tax 2.125, total rounds to 27.13
	assert.Equal(t, "27.13", rec.TotalAmount.StringFixed(2))
	assert.Equal(t, StatusSuccess, rec.Status)
	assert.Equal(t, "Walk-in Customer", rec.CustomerName)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "25", rec.Items[0].UnitPrice.String())

	assert.Equal(t, 14, f.stockOf(t, beans.ID))
}

func TestCommitMultiLineTotals(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)
	milk := f.addItem(t, "Milk", 1.50, 120, 40)

	rec, err := f.sales.Commit([]CartLine{
		{ProductID: beans.ID, Quantity: 2},
		{ProductID: milk.ID, Quantity: 4},
	}, PaymentCash, "John Smith")
	require.NoError(t, err)

	// subtotal 56.00, tax 4.76, total 60.76
	assert.Equal(t, "60.76", rec.TotalAmount.StringFixed(2))
	assert.Equal(t, 13, f.stockOf(t, beans.ID))
	assert.Equal(t, 116, f.stockOf(t, milk.ID))
}

func TestCommitGeneratesSequentialOrderIDs(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)

	first, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCard, "")
	require.NoError(t, err)
	second, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCash, "")
	require.NoError(t, err)

	assert.Equal(t, "ORD-101", first.ID)
	assert.Equal(t, "ORD-102", second.ID)
}

func TestCommitRejectsOverSell(t *testing.T) {
	f := newFixture(t)
	croissant := f.addItem(t, "Croissant", 3.50, 5, 15)

	_, err := f.sales.Commit([]CartLine{{ProductID: croissant.ID, Quantity: 6}}, PaymentCard, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Rejected, not clamped: nothing moved and nothing was appended.
	assert.Equal(t, 5, f.stockOf(t, croissant.ID))
	results, meta, err := f.sales.Search("", "")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, meta.Quantity)
}

func TestCommitIsAllOrNothingAcrossLines(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)
	croissant := f.addItem(t, "Croissant", 3.50, 5, 15)

	_, err := f.sales.Commit([]CartLine{
		{ProductID: beans.ID, Quantity: 2},
		{ProductID: croissant.ID, Quantity: 10},
	}, PaymentCard, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The first line must not take effect when a later line fails.
	assert.Equal(t, 15, f.stockOf(t, beans.ID))
	assert.Equal(t, 5, f.stockOf(t, croissant.ID))
}

func TestCommitValidation(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)

	_, err := f.sales.Commit(nil, PaymentCard, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 0}}, PaymentCard, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, "CHEQUE", "")
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = f.sales.Commit([]CartLine{{ProductID: "ghost", Quantity: 1}}, PaymentCard, "")
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestVoidRestoresStockAndFlipsStatus(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)
	milk := f.addItem(t, "Milk", 1.50, 120, 40)

	rec, err := f.sales.Commit([]CartLine{
		{ProductID: beans.ID, Quantity: 3},
		{ProductID: milk.ID, Quantity: 10},
	}, PaymentTransfer, "Maria Garcia")
	require.NoError(t, err)
	require.Equal(t, 12, f.stockOf(t, beans.ID))

	voided, err := f.sales.Void(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusVoided, voided.Status)

	assert.Equal(t, 15, f.stockOf(t, beans.ID))
	assert.Equal(t, 120, f.stockOf(t, milk.ID))

	reloaded, err := f.sales.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusVoided, reloaded.Status)
	assert.True(t, reloaded.TotalAmount.Equal(rec.TotalAmount), "void must not touch the amount")
}

func TestDoubleVoidRejected(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)

	rec, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 3}}, PaymentCard, "")
	require.NoError(t, err)

	_, err = f.sales.Void(rec.ID)
	require.NoError(t, err)
	require.Equal(t, 15, f.stockOf(t, beans.ID))

	_, err = f.sales.Void(rec.ID)
	assert.ErrorIs(t, err, ErrAlreadyVoided)

	// The guard is what prevents double-crediting stock.
	assert.Equal(t, 15, f.stockOf(t, beans.ID))
}

func TestVoidUnknownSale(t *testing.T) {
	f := newFixture(t)
	_, err := f.sales.Void("ORD-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVoidSkipsDeletedItems(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)
	milk := f.addItem(t, "Milk", 1.50, 120, 40)

	rec, err := f.sales.Commit([]CartLine{
		{ProductID: beans.ID, Quantity: 1},
		{ProductID: milk.ID, Quantity: 2},
	}, PaymentCard, "")
	require.NoError(t, err)

	require.NoError(t, f.inventory.Delete(beans.ID))

	voided, err := f.sales.Void(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusVoided, voided.Status)
	assert.Equal(t, 120, f.stockOf(t, milk.ID))
}

func TestCommitEmitsLowStockEvent(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 6, 5)
	*f.events = nil

	_, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 2}}, PaymentCard, "")
	require.NoError(t, err)

	var types []string
	for _, e := range *f.events {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, "sale.committed")
	assert.Contains(t, types, "inventory.low_stock")

	// Selling more of an already-low item does not re-alert.
	*f.events = nil
	_, err = f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCard, "")
	require.NoError(t, err)
	for _, e := range *f.events {
		assert.NotEqual(t, "inventory.low_stock", e.Type)
	}
}

func TestSearchFiltersAndMetadata(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 50, 5)

	first, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCash, "John Smith")
	require.NoError(t, err)
	_, err = f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 2}}, PaymentTransfer, "Maria Garcia")
	require.NoError(t, err)
	_, err = f.sales.Void(first.ID)
	require.NoError(t, err)

	results, meta, err := f.sales.Search("", "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 2, meta.Quantity)
	assert.Equal(t, 1, meta.Succeeded)
	assert.Equal(t, 1, meta.Voided)

	results, _, err = f.sales.Search("maria", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Maria Garcia", results[0].CustomerName)

	results, _, err = f.sales.Search("", StatusVoided)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, first.ID, results[0].ID)

	_, _, err = f.sales.Search("", "Refunded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestConcurrentCommitsAllSucceed(t *testing.T) {
	f := newFixture(t)
	beans := f.addItem(t, "Coffee Beans", 25.00, 100, 5)

	const buyers = 12
	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCash, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err, "colliding checkouts must be retried, not surfaced")
	}

	assert.Equal(t, 100-buyers, f.stockOf(t, beans.ID))

	records, meta, err := f.sales.Search("", "")
	require.NoError(t, err)
	require.Len(t, records, buyers)
	assert.Equal(t, buyers, meta.Succeeded)

	seen := make(map[string]bool, buyers)
	for _, r := range records {
		assert.False(t, seen[r.ID], "duplicate order id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestCommitRecordsCustomerVisit(t *testing.T) {
	f := newFixture(t)
	directory := customers.NewService(f.st, f.bus, zaptest.NewLogger(t))
	maria, err := directory.Create("Maria Garcia", "maria.g@gmail.com", "")
	require.NoError(t, err)

	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)
	_, err = f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCard, "Maria Garcia")
	require.NoError(t, err)

	list, err := directory.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, maria.ID, list[0].ID)
	assert.Equal(t, 1, list[0].Visits)
	assert.Equal(t, "27.13", list[0].Spent.StringFixed(2))
	assert.NotEqual(t, "Never", list[0].LastVisit)
}

func TestCommitForWalkInLeavesDirectoryAlone(t *testing.T) {
	f := newFixture(t)
	directory := customers.NewService(f.st, f.bus, zaptest.NewLogger(t))
	_, err := directory.Create("Maria Garcia", "maria.g@gmail.com", "")
	require.NoError(t, err)

	beans := f.addItem(t, "Coffee Beans", 25.00, 15, 5)
	_, err = f.sales.Commit([]CartLine{{ProductID: beans.ID, Quantity: 1}}, PaymentCash, "")
	require.NoError(t, err)

	list, err := directory.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Visits)
	assert.Equal(t, "0", list[0].Spent.String())
}
