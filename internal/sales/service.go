package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/customers"
	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// DefaultTaxRate is applied to every sale's subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.085")

const createdAtLayout = "Jan 2, 2006 15:04"

// Service owns the sales ledger and the sale/void workflow. Commit and
// Void each run inside a single store transaction so the ledger append
// and the stock movement land together or not at all.
type Service struct {
	store   store.Store
	bus     *event.Bus
	logger  *zap.Logger
	taxRate decimal.Decimal

	now func() time.Time
}

// NewService creates a new sales Service with the default tax rate.
func NewService(st store.Store, bus *event.Bus, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		store:   st,
		bus:     bus,
		logger:  logger,
		taxRate: DefaultTaxRate,
		now:     time.Now,
	}
}

// Totals is the computed breakdown of a committed sale.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax, and the rounded grand total for a
// set of lines: subtotal = sum(price*qty), tax = subtotal * rate, total
// rounded to 2 places. A 25.00 cart yields tax 2.125 and total 27.13.
func (s *Service) ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(s.taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Round(2),
	}
}

// Commit turns a cart into a Success record, deducts every line's
// quantity from inventory and bumps the named customer's visit history,
// all in one transaction. A line asking for more than on-hand stock
// fails the whole commit with ErrInsufficientStock and writes nothing;
// over-sell is rejected, never silently clamped.
func (s *Service) Commit(cart []CartLine, paymentMethod, customerName string) (*Record, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	if !ValidPayment(paymentMethod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, paymentMethod)
	}
	for _, l := range cart {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidQuantity, l.ProductID)
		}
	}
	if customerName == "" {
		customerName = "Walk-in Customer"
	}

	var (
		record  Record
		lowHits []inventory.Item
	)
	err := s.store.Update(func(tx store.Tx) error {
		// The transaction may be retried after a write conflict.
		lowHits = lowHits[:0]

		items, err := inventory.Load(tx)
		if err != nil {
			return err
		}

		lines := make([]Line, 0, len(cart))
		for _, cl := range cart {
			idx := inventory.Find(items, cl.ProductID)
			if idx < 0 {
				return fmt.Errorf("%w: %q", inventory.ErrNotFound, cl.ProductID)
			}
			if cl.Quantity > items[idx].Stock {
				return fmt.Errorf("%w: %s has %d on hand, cart wants %d",
					ErrInsufficientStock, items[idx].Name, items[idx].Stock, cl.Quantity)
			}
			wasLow := items[idx].LowStock()
			items[idx].Stock -= cl.Quantity
			if !wasLow && items[idx].LowStock() {
				lowHits = append(lowHits, items[idx])
			}
			lines = append(lines, Line{
				ProductID: cl.ProductID,
				Quantity:  cl.Quantity,
				UnitPrice: items[idx].Price,
			})
		}

		records, err := Load(tx)
		if err != nil {
			return err
		}

		totals := s.ComputeTotals(lines)
		record = Record{
			ID:            nextOrderID(records),
			CustomerName:  customerName,
			PaymentMethod: paymentMethod,
			TotalAmount:   totals.Total,
			CreatedAt:     s.now().Format(createdAtLayout),
			Status:        StatusSuccess,
			Items:         lines,
		}
		records = append([]Record{record}, records...)

		if err := Save(tx, records); err != nil {
			return err
		}
		if err := customers.RecordSaleTx(tx, customerName, record.TotalAmount); err != nil {
			return err
		}
		return inventory.Save(tx, items)
	})
	if err != nil {
		s.logger.Warn("sale commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale committed",
		zap.String("sale_id", record.ID),
		zap.String("payment_method", record.PaymentMethod),
		zap.String("total", record.TotalAmount.StringFixed(2)),
	)
	s.bus.Publish(event.Event{
		Type:     "sale.committed",
		Title:    "Sale Completed",
		Message:  fmt.Sprintf("Transaction %s recorded successfully.", record.ID),
		Severity: event.SeveritySuccess,
		Path:     "/sales",
		TargetID: record.ID,
	})
	for _, it := range lowHits {
		s.bus.Publish(event.Event{
			Type:     "inventory.low_stock",
			Title:    "Low Stock Alert",
			Message:  fmt.Sprintf("%s are below minimum level (%d left).", it.Name, it.Stock),
			Severity: event.SeverityWarning,
			Path:     "/inventory",
			TargetID: it.ID,
		})
	}
	return &record, nil
}

// Void reverses a Success sale: every line's quantity goes back to
// inventory (uncapped) and the record flips to Voided, in one
// transaction. The command itself enforces the precondition, so a second
// void is rejected with ErrAlreadyVoided instead of double-crediting
// stock. There is no re-activate.
func (s *Service) Void(id string) (*Record, error) {
	var record Record
	err := s.store.Update(func(tx store.Tx) error {
		records, err := Load(tx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range records {
			if records[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		if records[idx].Status == StatusVoided {
			return ErrAlreadyVoided
		}

		items, err := inventory.Load(tx)
		if err != nil {
			return err
		}
		for _, line := range records[idx].Items {
			// Items deleted since the sale are skipped; there is no
			// cascade between the two ledgers.
			if j := inventory.Find(items, line.ProductID); j >= 0 {
				items[j].Stock += line.Quantity
			}
		}

		records[idx].Status = StatusVoided
		record = records[idx]

		if err := Save(tx, records); err != nil {
			return err
		}
		return inventory.Save(tx, items)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale voided", zap.String("sale_id", record.ID))
	s.bus.Publish(event.Event{
		Type:     "sale.voided",
		Title:    "Transaction Voided",
		Message:  fmt.Sprintf("Order %s has been marked as void.", record.ID),
		Severity: event.SeverityWarning,
		Path:     "/sales",
		TargetID: record.ID,
	})
	return &record, nil
}

// Get returns the sale with the given ID.
func (s *Service) Get(id string) (*Record, error) {
	var out *Record
	err := s.store.View(func(tx store.Tx) error {
		records, err := Load(tx)
		if err != nil {
			return err
		}
		for i := range records {
			if records[i].ID == id {
				out = &records[i]
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search filters the ledger by free-text query (matched against ID,
// customer name, and payment method) and optional status, and returns
// the matches with summary metadata.
func (s *Service) Search(query, status string) ([]Record, Metadata, error) {
	if status != "" && status != StatusSuccess && status != StatusVoided {
		s.logger.Warn("invalid status filter", zap.String("status", status))
		return nil, Metadata{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var records []Record
	err := s.store.View(func(tx store.Tx) error {
		var err error
		records, err = Load(tx)
		return err
	})
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	q := strings.ToLower(query)
	filtered := make([]Record, 0)
	meta := Metadata{TotalAmount: decimal.Zero}
	for _, r := range records {
		if status != "" && r.Status != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.ID), q) &&
			!strings.Contains(strings.ToLower(r.CustomerName), q) &&
			!strings.Contains(strings.ToLower(r.PaymentMethod), q) {
			continue
		}

		filtered = append(filtered, r)
		meta.Quantity++
		meta.TotalAmount = meta.TotalAmount.Add(r.TotalAmount)
		switch r.Status {
		case StatusSuccess:
			meta.Succeeded++
		case StatusVoided:
			meta.Voided++
		}
	}

	return filtered, meta, nil
}
