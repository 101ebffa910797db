package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

func newTestService(t *testing.T) (*Service, *event.Bus) {
	t.Helper()
	st, err := store.Open(store.InMemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	bus := event.NewBus()
	return NewService(st, bus, zaptest.NewLogger(t)), bus
}

func addItem(t *testing.T, svc *Service, name string, stock, minLevel int) Item {
	t.Helper()
	item, err := svc.Add(Item{
		Name:          name,
		SKU:           "SKU-" + name,
		Category:      "Coffee",
		Price:         decimal.NewFromFloat(25.00),
		Stock:         stock,
		MinStockLevel: minLevel,
	})
	require.NoError(t, err)
	return item
}

func TestRestockUpdatesStockAndDate(t *testing.T) {
	svc, _ := newTestService(t)
	item := addItem(t, svc, "Beans", 5, 20)

	got, err := svc.Restock(item.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Stock)
	assert.Equal(t, time.Now().Format(dateLayout), got.LastRestocked)

	// Persisted too, not just the returned copy.
	reloaded, err := svc.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, reloaded.Stock)
}

func TestRemoveStockBelowZeroRejected(t *testing.T) {
	svc, bus := newTestService(t)
	item := addItem(t, svc, "Beans", 5, 20)

	var events []event.Event
	bus.Subscribe(func(e event.Event) { events = append(events, e) })

	_, err := svc.RemoveStock(item.ID, 10)
	assert.ErrorIs(t, err, ErrStockBelowZero)

	// No state change and no notification on rejection.
	reloaded, err := svc.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.Stock)
	assert.Empty(t, events)
}

func TestRemoveStockExactBalanceAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	item := addItem(t, svc, "Beans", 5, 20)

	got, err := svc.RemoveStock(item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestAdjustRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	item := addItem(t, svc, "Beans", 5, 20)

	_, err := svc.Restock(item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.RemoveStock(item.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestLowStockDerivedFromCurrentLedger(t *testing.T) {
	svc, _ := newTestService(t)
	low := addItem(t, svc, "Croissant", 5, 15)
	ok := addItem(t, svc, "Cups", 500, 100)

	list, err := svc.LowStock()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ID)

	// Restocking above the minimum drops the item out of the view
	// on the very next read.
	_, err = svc.Restock(low.ID, 20)
	require.NoError(t, err)

	list, err = svc.LowStock()
	require.NoError(t, err)
	assert.Empty(t, list)

	// And draining the healthy one pulls it in.
	_, err = svc.RemoveStock(ok.ID, 450)
	require.NoError(t, err)

	list, err = svc.LowStock()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ok.ID, list[0].ID)
}

func TestDeleteItem(t *testing.T) {
	svc, _ := newTestService(t)
	item := addItem(t, svc, "Beans", 5, 20)

	require.NoError(t, svc.Delete(item.ID))

	_, err := svc.Get(item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDoesNotTouchStock(t *testing.T) {
	svc, _ := newTestService(t)
	item := addItem(t, svc, "Beans", 15, 20)

	got, err := svc.Update(item.ID, Item{
		Name:          "Premium Coffee Beans (1kg)",
		SKU:           "CB-PR-01",
		Category:      "Coffee",
		Price:         decimal.NewFromFloat(27.50),
		Stock:         999,
		MinStockLevel: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "Premium Coffee Beans (1kg)", got.Name)
	assert.Equal(t, 15, got.Stock, "stock must only move through adjustment commands")
	assert.Equal(t, 25, got.MinStockLevel)
}
