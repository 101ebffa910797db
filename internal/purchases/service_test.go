package purchases

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

func newTestServices(t *testing.T) (*Service, *inventory.Service) {
	t.Helper()
	st, err := store.Open(store.InMemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	bus := event.NewBus()
	logger := zaptest.NewLogger(t)
	return NewService(st, bus, logger), inventory.NewService(st, bus, logger)
}

func TestCreateIncrementsStock(t *testing.T) {
	purch, inv := newTestServices(t)
	item, err := inv.Add(inventory.Item{
		Name: "Paper Cups (Large)", SKU: "SP-PC-03", Category: "Supplies",
		Price: decimal.NewFromFloat(0.15), Stock: 500, MinStockLevel: 100,
	})
	require.NoError(t, err)

	rec, err := purch.Create(CreateRequest{
		ItemID:   item.ID,
		Supplier: "Acme Paper Co",
		Quantity: 200,
		UnitCost: decimal.NewFromFloat(0.09),
	})
	require.NoError(t, err)
	assert.Equal(t, "SP-PC-03", rec.SKU)
	assert.Equal(t, "18", rec.TotalCost.String())
	assert.Regexp(t, `^PUR-[0-9A-F]{6}$`, rec.ID)

	got, err := inv.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, got.Stock)

	records, err := purch.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
}

func TestCreateUnknownItemRejected(t *testing.T) {
	purch, _ := newTestServices(t)
	_, err := purch.Create(CreateRequest{ItemID: "ghost", Supplier: "X", Quantity: 1})
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	purch, _ := newTestServices(t)
	_, err := purch.Create(CreateRequest{ItemID: "any", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
