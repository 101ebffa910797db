package customers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(store.InMemoryOptions())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, event.NewBus(), zaptest.NewLogger(t))
}

func TestCreateDefaultsAndList(t *testing.T) {
	svc := newTestService(t)

	cust, err := svc.Create("John Smith", "", "")
	require.NoError(t, err)
	assert.Equal(t, "N/A", cust.Email)
	assert.Equal(t, "N/A", cust.Phone)
	assert.Equal(t, "Never", cust.LastVisit)
	assert.True(t, cust.Spent.IsZero())

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cust.ID, list[0].ID)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create("  ", "a@b.com", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRecordSaleBumpsVisitHistory(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create("Maria Garcia", "maria.g@gmail.com", "")
	require.NoError(t, err)

	record := func(name string, amount float64) {
		err := svc.store.Update(func(tx store.Tx) error {
			return RecordSaleTx(tx, name, decimal.NewFromFloat(amount))
		})
		require.NoError(t, err)
	}
	record("Maria Garcia", 27.13)
	record("Maria Garcia", 12.00)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, 2, list[0].Visits)
	assert.Equal(t, "39.13", list[0].Spent.StringFixed(2))
	assert.NotEqual(t, "Never", list[0].LastVisit)
}

func TestRecordSaleIgnoresUnknownName(t *testing.T) {
	svc := newTestService(t)
	cust, err := svc.Create("Maria Garcia", "maria.g@gmail.com", "")
	require.NoError(t, err)

	err = svc.store.Update(func(tx store.Tx) error {
		return RecordSaleTx(tx, "Walk-in Customer", decimal.NewFromFloat(10.00))
	})
	require.NoError(t, err)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, 0, list[0].Visits)
	assert.Equal(t, cust.ID, list[0].ID)
}

func TestDeleteWritesAuditLog(t *testing.T) {
	svc := newTestService(t)
	cust, err := svc.Create("John Smith", "john@example.com", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(cust.ID, "owner@nashwa.com"))

	list, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	logs, err := svc.DeleteLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, cust.ID, logs[0].CustomerID)
	assert.Equal(t, "John Smith", logs[0].CustomerName)
	assert.Equal(t, "owner@nashwa.com", logs[0].DeletedBy)

	err = svc.Delete(cust.ID, "owner@nashwa.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
