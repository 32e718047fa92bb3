// Package chat provides a unified interface for chat frontends.
package chat

import (
	"context"
)

// Message represents a normalized chat message from a frontend.
type Message struct {
	ID         string
	ChatID     string
	SenderID   string
	SenderName string
	Text       string
	IsGroup    bool
	Raw        any // underlying library message struct
}

// Frontend defines the unified interface for chat integrations.
type Frontend interface {
	// Start initializes the chat frontend.
	Start(ctx context.Context) error

	// Listen blocks delivering each inbound message to handler until ctx is done.
	Listen(ctx context.Context, handler func(ctx context.Context, msg *Message)) error

	// SendText sends an HTML-formatted text message to the specified chat,
	// optionally as a reply, and returns the sent message ID.
	SendText(ctx context.Context, chatID string, replyToID string, text string) (string, error)

	// DeleteMessage deletes a message by its ID.
	DeleteMessage(ctx context.Context, chatID string, msgID string) error
}
