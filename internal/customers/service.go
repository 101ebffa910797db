// Package customers holds the customer directory and the audit trail of
// deletions from it.
package customers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// ErrNotFound is returned when no customer with the given ID exists.
var ErrNotFound = errors.New("customer not found")

// ErrNameRequired is returned when creating a customer without a name.
var ErrNameRequired = errors.New("customer name is required")

// Customer is one directory entry.
type Customer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Spent     decimal.Decimal `json:"spent"`
	Visits    int             `json:"visits"`
	LastVisit string          `json:"lastVisit"`
	JoinDate  string          `json:"joinDate"`
}

// DeleteLog is one audit entry recording who removed which customer when.
type DeleteLog struct {
	Timestamp    string `json:"timestamp"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	DeletedBy    string `json:"deletedBy"`
}

// Service provides directory commands over the persisted customer ledger.
type Service struct {
	store  store.Store
	bus    *event.Bus
	logger *zap.Logger
}

func NewService(st store.Store, bus *event.Bus, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{store: st, bus: bus, logger: logger}
}

// Create adds a customer. Email and phone default to "N/A" when blank,
// matching the directory's display convention.
func (s *Service) Create(name, email, phone string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		email = "N/A"
	}
	if phone == "" {
		phone = "N/A"
	}

	cust := Customer{
		ID:        strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9]),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Spent:     decimal.Zero,
		Visits:    0,
		LastVisit: "Never",
		JoinDate:  time.Now().Format("Jan 2, 2006"),
	}

	err := s.store.Update(func(tx store.Tx) error {
		list, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		list = append([]Customer{cust}, list...)
		return tx.Put(store.KeyCustomers, list)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(event.Event{
		Type:     "customer.added",
		Title:    "Customer Added",
		Message:  fmt.Sprintf("%s has been added to your directory.", cust.Name),
		Severity: event.SeveritySuccess,
		Path:     "/customers",
		TargetID: cust.ID,
	})
	return &cust, nil
}

// List returns the directory, newest first.
func (s *Service) List() ([]Customer, error) {
	var list []Customer
	err := s.store.View(func(tx store.Tx) error {
		var err error
		list, err = s.loadTx(tx)
		return err
	})
	return list, err
}

// RecordSaleTx bumps the matching customer's visit count and spend
// inside the caller's transaction, so the directory moves with the sales
// ledger or not at all. Sales reference customers by display name; a
// miss is not an error, walk-ins have no directory entry.
func RecordSaleTx(tx store.Tx, name string, amount decimal.Decimal) error {
	var list []Customer
	if err := tx.Get(store.KeyCustomers, &list); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil
		}
		return err
	}
	for i := range list {
		if list[i].Name == name {
			list[i].Visits++
			list[i].Spent = list[i].Spent.Add(amount)
			list[i].LastVisit = time.Now().Format("Jan 2, 2006")
			return tx.Put(store.KeyCustomers, list)
		}
	}
	return nil
}

// Delete removes a customer and appends an audit log entry naming the
// principal who did it. The log and the removal land in one transaction.
func (s *Service) Delete(id, deletedBy string) error {
	var name string
	err := s.store.Update(func(tx store.Tx) error {
		list, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range list {
			if list[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		name = list[idx].Name
		list = append(list[:idx], list[idx+1:]...)
		if err := tx.Put(store.KeyCustomers, list); err != nil {
			return err
		}

		logs, err := s.loadLogsTx(tx)
		if err != nil {
			return err
		}
		logs = append([]DeleteLog{{
			Timestamp:    time.Now().Format("Jan 2, 2006 15:04:05"),
			CustomerID:   id,
			CustomerName: name,
			DeletedBy:    deletedBy,
		}}, logs...)
		return tx.Put(store.KeyCustomerLogs, logs)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id), zap.String("deleted_by", deletedBy))
	s.bus.Publish(event.Event{
		Type:     "customer.deleted",
		Title:    "Customer Removed",
		Message:  fmt.Sprintf("%s was removed from the directory.", name),
		Severity: event.SeverityWarning,
	})
	return nil
}

// DeleteLogs returns the deletion audit trail, newest first.
func (s *Service) DeleteLogs() ([]DeleteLog, error) {
	var logs []DeleteLog
	err := s.store.View(func(tx store.Tx) error {
		var err error
		logs, err = s.loadLogsTx(tx)
		return err
	})
	return logs, err
}

func (s *Service) loadTx(tx store.Tx) ([]Customer, error) {
	var list []Customer
	if err := tx.Get(store.KeyCustomers, &list); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Customer{}, nil
		}
		return nil, err
	}
	return list, nil
}

func (s *Service) loadLogsTx(tx store.Tx) ([]DeleteLog, error) {
	var logs []DeleteLog
	if err := tx.Get(store.KeyCustomerLogs, &logs); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []DeleteLog{}, nil
		}
		return nil, err
	}
	return logs, nil
}
