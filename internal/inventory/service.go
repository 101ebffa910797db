package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

const dateLayout = "Jan 2, 2006"

// Service provides the inventory ledger commands: catalog CRUD, manual
// stock adjustment, and the derived low-stock view.
type Service struct {
	store  store.Store
	bus    *event.Bus
	logger *zap.Logger
}

// NewService creates a new inventory Service.
func NewService(st store.Store, bus *event.Bus, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{store: st, bus: bus, logger: logger}
}

// List returns the current inventory ledger.
func (s *Service) List() ([]Item, error) {
	var items []Item
	err := s.store.View(func(tx store.Tx) error {
		var err error
		items, err = Load(tx)
		return err
	})
	return items, err
}

// Get returns the item with the given ID.
func (s *Service) Get(id string) (Item, error) {
	items, err := s.List()
	if err != nil {
		return Item{}, err
	}
	idx := Find(items, id)
	if idx < 0 {
		return Item{}, ErrNotFound
	}
	return items[idx], nil
}

// LowStock returns every item whose stock is below its minimum level.
// The list is derived from the current ledger on every call, never cached.
func (s *Service) LowStock() ([]Item, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	low := make([]Item, 0)
	for _, it := range items {
		if it.LowStock() {
			low = append(low, it)
		}
	}
	return low, nil
}

// Add creates a new catalog item. The ID is generated; LastRestocked is
// set to today.
func (s *Service) Add(item Item) (Item, error) {
	item.ID = uuid.NewString()
	item.LastRestocked = time.Now().Format(dateLayout)
	if item.Stock < 0 {
		return Item{}, ErrStockBelowZero
	}

	err := s.store.Update(func(tx store.Tx) error {
		items, err := Load(tx)
		if err != nil {
			return err
		}
		items = append([]Item{item}, items...)
		return Save(tx, items)
	})
	if err != nil {
		s.logger.Error("failed to add inventory item", zap.String("name", item.Name), zap.Error(err))
		return Item{}, fmt.Errorf("adding item: %w", err)
	}

	s.logger.Info("inventory item added", zap.String("item_id", item.ID), zap.String("sku", item.SKU))
	s.bus.Publish(event.Event{
		Type:     "inventory.added",
		Title:    "Item Added",
		Message:  fmt.Sprintf("%s added to catalog.", item.Name),
		Severity: event.SeveritySuccess,
		Path:     "/inventory",
		TargetID: item.ID,
	})
	return item, nil
}

// Update replaces the mutable fields of an existing item. Stock is not
// touched here; stock moves only through Restock, RemoveStock, or the
// sale commit/void commands.
func (s *Service) Update(id string, upd Item) (Item, error) {
	var out Item
	err := s.store.Update(func(tx store.Tx) error {
		items, err := Load(tx)
		if err != nil {
			return err
		}
		idx := Find(items, id)
		if idx < 0 {
			return ErrNotFound
		}
		items[idx].Name = upd.Name
		items[idx].SKU = upd.SKU
		items[idx].Category = upd.Category
		items[idx].Price = upd.Price
		items[idx].MinStockLevel = upd.MinStockLevel
		out = items[idx]
		return Save(tx, items)
	})
	if err != nil {
		return Item{}, err
	}

	s.bus.Publish(event.Event{
		Type:     "inventory.updated",
		Title:    "Item Updated",
		Message:  fmt.Sprintf("%s was updated successfully.", out.Name),
		Severity: event.SeveritySuccess,
		Path:     "/inventory",
		TargetID: out.ID,
	})
	return out, nil
}

// Delete removes an item from the catalog. Historical sales referencing
// it are left untouched.
func (s *Service) Delete(id string) error {
	var name string
	err := s.store.Update(func(tx store.Tx) error {
		items, err := Load(tx)
		if err != nil {
			return err
		}
		idx := Find(items, id)
		if idx < 0 {
			return ErrNotFound
		}
		name = items[idx].Name
		items = append(items[:idx], items[idx+1:]...)
		return Save(tx, items)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(event.Event{
		Type:     "inventory.deleted",
		Title:    "Item Deleted",
		Message:  fmt.Sprintf("%s has been removed from inventory.", name),
		Severity: event.SeverityWarning,
	})
	return nil
}

// Restock adds qty units to the item's stock and stamps LastRestocked.
func (s *Service) Restock(id string, qty int) (Item, error) {
	if qty <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	return s.adjust(id, qty)
}

// RemoveStock takes qty units out of the item's stock. Removing more than
// on hand is rejected with ErrStockBelowZero and leaves no state change.
func (s *Service) RemoveStock(id string, qty int) (Item, error) {
	if qty <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	return s.adjust(id, -qty)
}

func (s *Service) adjust(id string, delta int) (Item, error) {

	var out Item
	err := s.store.Update(func(tx store.Tx) error {
		items, err := Load(tx)
		if err != nil {
			return err
		}
		idx := Find(items, id)
		if idx < 0 {
			return ErrNotFound
		}
		next := items[idx].Stock + delta
		if next < 0 {
			return ErrStockBelowZero
		}
		items[idx].Stock = next
		items[idx].LastRestocked = time.Now().Format(dateLayout)
		out = items[idx]
		return Save(tx, items)
	})
	if err != nil {
		return Item{}, err
	}

	title := "Restocked"
	if delta < 0 {
		title = "Stock Removed"
	}
	s.logger.Info("stock adjusted",
		zap.String("item_id", out.ID),
		zap.Int("delta", delta),
		zap.Int("stock", out.Stock),
	)
	s.bus.Publish(event.Event{
		Type:     "inventory.adjusted",
		Title:    title,
		Message:  fmt.Sprintf("%s balance is now %d.", out.Name, out.Stock),
		Severity: event.SeverityInfo,
		Path:     "/inventory",
		TargetID: out.ID,
	})
	return out, nil
}
