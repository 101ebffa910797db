// Package notify is the notification center. It subscribes to the domain
// event bus and keeps a persisted, newest-first feed with read flags.
package notify

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

// Notification is one feed entry.
type Notification struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      event.Severity `json:"type"`
	Timestamp string         `json:"timestamp"`
	IsRead    bool           `json:"isRead"`
	Path      string         `json:"path,omitempty"`
	TargetID  string         `json:"targetId,omitempty"`
}

// Center persists every published domain event as a notification.
type Center struct {
	store  store.Store
	logger *zap.Logger
}

// NewCenter creates a Center and subscribes it to bus.
func NewCenter(st store.Store, bus *event.Bus, logger *zap.Logger) *Center {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	c := &Center{store: st, logger: logger}
	bus.Subscribe(c.handle)
	return c
}

func (c *Center) handle(e event.Event) {
	n := Notification{
		ID:        uuid.NewString()[:8],
		Title:     e.Title,
		Message:   e.Message,
		Type:      e.Severity,
		Timestamp: time.Now().Format(time.RFC3339),
		Path:      e.Path,
		TargetID:  e.TargetID,
	}
	err := c.store.Update(func(tx store.Tx) error {
		list, err := c.loadTx(tx)
		if err != nil {
			return err
		}
		list = append([]Notification{n}, list...)
		return tx.Put(store.KeyNotifications, list)
	})
	if err != nil {
		// Dropping a notification never fails the command that caused it.
		c.logger.Error("failed to persist notification", zap.String("title", e.Title), zap.Error(err))
	}
}

// List returns the feed, newest first, with the unread count.
func (c *Center) List() ([]Notification, int, error) {
	var list []Notification
	err := c.store.View(func(tx store.Tx) error {
		var err error
		list, err = c.loadTx(tx)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	return list, unread, nil
}

// MarkRead flags one notification as read. Unknown IDs are ignored.
func (c *Center) MarkRead(id string) error {
	return c.store.Update(func(tx store.Tx) error {
		list, err := c.loadTx(tx)
		if err != nil {
			return err
		}
		for i := range list {
			if list[i].ID == id {
				list[i].IsRead = true
			}
		}
		return tx.Put(store.KeyNotifications, list)
	})
}

// MarkAllRead flags the whole feed as read.
func (c *Center) MarkAllRead() error {
	return c.store.Update(func(tx store.Tx) error {
		list, err := c.loadTx(tx)
		if err != nil {
			return err
		}
		for i := range list {
			list[i].IsRead = true
		}
		return tx.Put(store.KeyNotifications, list)
	})
}

// Clear empties the feed.
func (c *Center) Clear() error {
	return c.store.Update(func(tx store.Tx) error {
		return tx.Delete(store.KeyNotifications)
	})
}

func (c *Center) loadTx(tx store.Tx) ([]Notification, error) {
	var list []Notification
	if err := tx.Get(store.KeyNotifications, &list); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Notification{}, nil
		}
		return nil, err
	}
	return list, nil
}
