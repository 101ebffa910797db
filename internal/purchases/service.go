package purchases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// ErrInvalidQuantity is returned for a purchase of zero or fewer units.
var ErrInvalidQuantity = errors.New("purchase quantity must be greater than zero")

// Service owns the procurement ledger. A recorded purchase and its stock
// increment land in one transaction.
type Service struct {
	store  store.Store
	bus    *event.Bus
	logger *zap.Logger
}

// NewService creates a new purchases Service.
func NewService(st store.Store, bus *event.Bus, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{store: st, bus: bus, logger: logger}
}

// CreateRequest describes a purchase to record.
type CreateRequest struct {
	ItemID   string          `json:"itemId"`
	Supplier string          `json:"supplier"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost"`
	Date     string          `json:"date"`
}

// Create appends a purchase record and increments the item's stock.
func (s *Service) Create(req CreateRequest) (*Record, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	var record Record
	err := s.store.Update(func(tx store.Tx) error {
		items, err := inventory.Load(tx)
		if err != nil {
			return err
		}
		idx := inventory.Find(items, req.ItemID)
		if idx < 0 {
			return fmt.Errorf("%w: %q", inventory.ErrNotFound, req.ItemID)
		}

		items[idx].Stock += req.Quantity
		items[idx].LastRestocked = time.Now().Format("Jan 2, 2006")

		record = Record{
			ID:        "PUR-" + strings.ToUpper(uuid.NewString()[:6]),
			ItemID:    items[idx].ID,
			ItemName:  items[idx].Name,
			SKU:       items[idx].SKU,
			Supplier:  req.Supplier,
			Quantity:  req.Quantity,
			UnitCost:  req.UnitCost,
			TotalCost: req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Date:      req.Date,
		}

		records, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		records = append([]Record{record}, records...)

		if err := tx.Put(store.KeyPurchases, records); err != nil {
			return err
		}
		return inventory.Save(tx, items)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("purchase_id", record.ID),
		zap.String("item_id", record.ItemID),
		zap.Int("quantity", record.Quantity),
	)
	s.bus.Publish(event.Event{
		Type:     "purchase.recorded",
		Title:    "Purchase Recorded",
		Message:  fmt.Sprintf("Stock for %s increased by %d.", record.ItemName, record.Quantity),
		Severity: event.SeveritySuccess,
		Path:     "/purchases",
		TargetID: record.ID,
	})
	return &record, nil
}

// List returns the procurement ledger, newest first.
func (s *Service) List() ([]Record, error) {
	var records []Record
	err := s.store.View(func(tx store.Tx) error {
		var err error
		records, err = s.loadTx(tx)
		return err
	})
	return records, err
}

func (s *Service) loadTx(tx store.Tx) ([]Record, error) {
	var records []Record
	if err := tx.Get(store.KeyPurchases, &records); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Record{}, nil
		}
		return nil, err
	}
	return records, nil
}
