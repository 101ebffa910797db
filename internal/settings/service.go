package settings

import (
	"errors"

	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// ErrUnknownCurrency is returned when selecting a currency outside the
// supported set.
var ErrUnknownCurrency = errors.New("unknown currency")

// DefaultCurrency is used until a selection has been persisted.
const DefaultCurrency = "BDT"

var symbols = map[string]string{
	"BDT": "৳",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"USD": "$",
}

// Symbol returns the display symbol for a currency code, "$" for
// anything unrecognized.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return "$"
}

// Service persists the console-wide settings: currently the currency
// selection.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Currency returns the persisted selection, or the default when none
// (or a corrupted value) is stored.
func (s *Service) Currency() (string, error) {
	code := DefaultCurrency
	err := s.store.View(func(tx store.Tx) error {
		if err := tx.Get(store.KeyCurrency, &code); err != nil {
			if errors.Is(err, store.ErrKeyNotFound) {
				code = DefaultCurrency
				return nil
			}
			return err
		}
		return nil
	})
	return code, err
}

// SetCurrency persists a new selection.
func (s *Service) SetCurrency(code string) error {
	if _, ok := symbols[code]; !ok {
		return ErrUnknownCurrency
	}
	return s.store.Update(func(tx store.Tx) error {
		return tx.Put(store.KeyCurrency, code)
	})
}
