// Package insight wraps the remote generative-AI collaborator behind a
// small interface so the ledgers have no compile-time dependency on any
// vendor SDK. Calls are best effort: a failure degrades to a text error,
// no retry.
package insight

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no advisor is configured.
var ErrUnavailable = errors.New("ai advisor not configured")

// Message is one turn of a chat exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Advisor generates business insight text and answers chat.
type Advisor interface {
	// Insight produces a one-shot analysis for the given prompt.
	Insight(ctx context.Context, prompt string) (string, error)

	// Chat continues a conversation and returns the assistant's reply.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Disabled is the Advisor used when no API key is configured. Every call
// fails with ErrUnavailable.
type Disabled struct{}

func (Disabled) Insight(ctx context.Context, prompt string) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) Chat(ctx context.Context, messages []Message) (string, error) {
	return "", ErrUnavailable
}
