// Package event carries domain events from the ledger commands to their
// observers (the notification center, mainly). Publishing is synchronous:
// every subscriber runs to completion on the publishing goroutine before
// the command returns.
package event

import "sync"

// Severity mirrors the notification types shown to the user.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is one domain occurrence worth telling an observer about.
type Event struct {
	Type     string
	Title    string
	Message  string
	Severity Severity

	// Path and TargetID let the UI jump to the affected record.
	Path     string
	TargetID string
}

// Handler receives published events.
type Handler func(Event)

// Bus is a minimal synchronous publish/subscribe fan-out.
type Bus struct {
	mu       sync.Mutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for every subsequent Publish.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every subscriber in registration order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}
