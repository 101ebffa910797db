// Package expenses holds the expense ledger. Deleting an entry takes a
// two-step confirmation: a 4-digit one-time code is issued first, and the
// delete only goes through with a matching code.
package expenses

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// ErrNotFound is returned when no expense with the given ID exists.
var ErrNotFound = errors.New("expense not found")

// ErrInvalidAmount is returned for a zero or negative expense amount.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrInvalidOTP is returned when the confirmation code does not match or
// has expired.
var ErrInvalidOTP = errors.New("invalid or expired verification code")

const otpTTL = 5 * time.Minute

// Expense is one ledger entry.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// DeleteLog is one audit entry for a confirmed deletion.
type DeleteLog struct {
	Timestamp   string          `json:"timestamp"`
	ExpenseID   string          `json:"expenseId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DeletedBy   string          `json:"deletedBy"`
}

type pendingDelete struct {
	code    string
	expires time.Time
}

// Service provides the expense ledger commands. Pending OTPs live in
// memory only; a restart simply voids outstanding confirmations.
type Service struct {
	store  store.Store
	bus    *event.Bus
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]pendingDelete
}

func NewService(st store.Store, bus *event.Bus, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		store:   st,
		bus:     bus,
		logger:  logger,
		pending: make(map[string]pendingDelete),
	}
}

// Create appends an expense to the ledger.
func (s *Service) Create(description, category string, amount decimal.Decimal, date string) (*Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	exp := Expense{
		ID:          uuid.NewString()[:9],
		Description: description,
		Category:    category,
		Amount:      amount,
		Date:        date,
	}
	err := s.store.Update(func(tx store.Tx) error {
		list, err := s.loadTx(tx)
		if err != nil {
			return err
		}
		list = append([]Expense{exp}, list...)
		return tx.Put(store.KeyExpenses, list)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(event.Event{
		Type:     "expense.logged",
		Title:    "Expense Logged",
		Message:  fmt.Sprintf("%s (%s) added to ledger.", exp.Description, exp.Amount.StringFixed(2)),
		Severity: event.SeveritySuccess,
		Path:     "/expenses",
		TargetID: exp.ID,
	})
	return &exp, nil
}

// List returns the ledger, newest first.
func (s *Service) List() ([]Expense, error) {
	var list []Expense
	err := s.store.View(func(tx store.Tx) error {
		var err error
		list, err = s.loadTx(tx)
		return err
	})
	return list, err
}

// InitiateDelete issues a one-time code for deleting the expense. The
// code is surfaced through a domain event, never in the API response.
func (s *Service) InitiateDelete(id string) error {
	exp, err := s.get(id)
	if err != nil {
		return err
	}

	code, err := fourDigitCode()
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	s.mu.Lock()
	s.pending[id] = pendingDelete{code: code, expires: time.Now().Add(otpTTL)}
	s.mu.Unlock()

	s.logger.Info("expense delete initiated", zap.String("expense_id", id))
	s.bus.Publish(event.Event{
		Type:     "expense.delete_code",
		Title:    "Verification Code",
		Message:  fmt.Sprintf("Your code to delete %q is %s.", exp.Description, code),
		Severity: event.SeverityInfo,
		Path:     "/expenses",
		TargetID: id,
	})
	return nil
}

// ConfirmDelete deletes the expense if code matches the outstanding OTP.
// The deletion and its audit log entry land in one transaction; the OTP
// is consumed either way once it matches.
func (s *Service) ConfirmDelete(id, code, deletedBy string) error {
	s.mu.Lock()
	p, ok := s.pending[id]
	if ok && p.code == code && time.Now().Before(p.expires) {
		delete(s.pending, id)
	} else {
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return ErrInvalidOTP
	}

	var removed Expense
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
		removed = list[idx]
		list = append(list[:idx], list[idx+1:]...)
		if err := tx.Put(store.KeyExpenses, list); err != nil {
			return err
		}

		var logs []DeleteLog
		if err := tx.Get(store.KeyExpenseLogs, &logs); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			return err
		}
		logs = append([]DeleteLog{{
			Timestamp:   time.Now().Format("Jan 2, 2006 15:04:05"),
			ExpenseID:   removed.ID,
			Description: removed.Description,
			Amount:      removed.Amount,
			DeletedBy:   deletedBy,
		}}, logs...)
		return tx.Put(store.KeyExpenseLogs, logs)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(event.Event{
		Type:     "expense.deleted",
		Title:    "Expense Deleted",
		Message:  fmt.Sprintf("%s removed from ledger.", removed.Description),
		Severity: event.SeverityWarning,
	})
	return nil
}

// DeleteLogs returns the deletion audit trail, newest first.
func (s *Service) DeleteLogs() ([]DeleteLog, error) {
	var logs []DeleteLog
	err := s.store.View(func(tx store.Tx) error {
		if err := tx.Get(store.KeyExpenseLogs, &logs); err != nil {
			if errors.Is(err, store.ErrKeyNotFound) {
				logs = []DeleteLog{}
				return nil
			}
			return err
		}
		return nil
	})
	return logs, err
}

func (s *Service) get(id string) (Expense, error) {
	list, err := s.List()
	if err != nil {
		return Expense{}, err
	}
	for _, e := range list {
		if e.ID == id {
			return e, nil
		}
	}
	return Expense{}, ErrNotFound
}

func (s *Service) loadTx(tx store.Tx) ([]Expense, error) {
	var list []Expense
	if err := tx.Get(store.KeyExpenses, &list); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Expense{}, nil
		}
		return nil, err
	}
	return list, nil
}

func fourDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
