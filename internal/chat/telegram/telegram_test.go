package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"songlinkbot/internal/chat"
)

func TestNewFrontend(t *testing.T) {
	frontend := NewFrontend(&Config{BotToken: "token"}, zap.NewNop())

	if frontend == nil {
		t.Fatal("NewFrontend() returned nil")
	}
	if frontend.config.BotToken != "token" {
		t.Errorf("BotToken = %q, want %q", frontend.config.BotToken, "token")
	}
}

func TestListenRequiresStart(t *testing.T) {
	frontend := NewFrontend(&Config{BotToken: "token"}, zap.NewNop())

	err := frontend.Listen(context.Background(), func(context.Context, *chat.Message) {})
	if err == nil {
		t.Fatal("Listen() before Start() should return an error")
	}
	if !strings.Contains(err.Error(), "not started") {
		t.Errorf("Listen() error = %v, want a not-started error", err)
	}
}

func TestSendTextInvalidIDs(t *testing.T) {
	frontend := NewFrontend(&Config{BotToken: "token"}, zap.NewNop())

	if _, err := frontend.SendText(context.Background(), "not-a-number", "", "hi"); err == nil {
		t.Error("SendText() with invalid chat ID should return an error")
	}
	if _, err := frontend.SendText(context.Background(), "123", "not-a-number", "hi"); err == nil {
		t.Error("SendText() with invalid reply ID should return an error")
	}
}

func TestDeleteMessageInvalidIDs(t *testing.T) {
	frontend := NewFrontend(&Config{BotToken: "token"}, zap.NewNop())

	if err := frontend.DeleteMessage(context.Background(), "not-a-number", "1"); err == nil {
		t.Error("DeleteMessage() with invalid chat ID should return an error")
	}
	if err := frontend.DeleteMessage(context.Background(), "123", "not-a-number"); err == nil {
		t.Error("DeleteMessage() with invalid message ID should return an error")
	}
}

func TestHandleMessageConversion(t *testing.T) {
	tests := []struct {
		name     string
		msg      *models.Message
		expected *chat.Message
	}{
		{
			name: "Private chat message",
			msg: &models.Message{
				ID:   42,
				Chat: models.Chat{ID: 7, Type: "private"},
				From: &models.User{ID: 7, Username: "test_user"},
				Text: "hello",
			},
			expected: &chat.Message{
				ID:         "42",
				ChatID:     "7",
				SenderID:   "7",
				SenderName: "@test_user",
				Text:       "hello",
				IsGroup:    false,
			},
		},
		{
			name: "Group chat message",
			msg: &models.Message{
				ID:   43,
				Chat: models.Chat{ID: -100, Type: "group"},
				From: &models.User{ID: 7, FirstName: "Test", LastName: "User"},
				Text: "hello group",
			},
			expected: &chat.Message{
				ID:         "43",
				ChatID:     "-100",
				SenderID:   "7",
				SenderName: "Test User",
				Text:       "hello group",
				IsGroup:    true,
			},
		},
		{
			name: "Supergroup counts as group",
			msg: &models.Message{
				ID:   44,
				Chat: models.Chat{ID: -200, Type: "supergroup"},
				From: &models.User{ID: 7, Username: "test_user"},
				Text: "hello supergroup",
			},
			expected: &chat.Message{
				ID:         "44",
				ChatID:     "-200",
				SenderID:   "7",
				SenderName: "@test_user",
				Text:       "hello supergroup",
				IsGroup:    true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frontend := NewFrontend(&Config{BotToken: "token"}, zap.NewNop())

			var got *chat.Message
			frontend.messageHandler = func(_ context.Context, msg *chat.Message) {
				got = msg
			}

			frontend.handleMessage(context.Background(), tt.msg)

			if got == nil {
				t.Fatal("handler was not called")
			}
			if got.ID != tt.expected.ID ||
				got.ChatID != tt.expected.ChatID ||
				got.SenderID != tt.expected.SenderID ||
				got.SenderName != tt.expected.SenderName ||
				got.Text != tt.expected.Text ||
				got.IsGroup != tt.expected.IsGroup {
				t.Errorf("converted message = %+v, want %+v", got, tt.expected)
			}
			if got.Raw != tt.msg {
				t.Error("Raw does not point at the original message")
			}
		})
	}
}

func TestHandleMessageIgnores(t *testing.T) {
	tests := []struct {
		name string
		msg  *models.Message
	}{
		{
			name: "Empty text",
			msg: &models.Message{
				ID:   1,
				Chat: models.Chat{ID: 7, Type: "private"},
				From: &models.User{ID: 7, Username: "test_user"},
			},
		},
		{
			name: "Message from a bot",
			msg: &models.Message{
				ID:   2,
				Chat: models.Chat{ID: 7, Type: "private"},
				From: &models.User{ID: 8, Username: "other_bot", IsBot: true},
				Text: "https://www.deezer.com/track/1",
			},
		},
		{
			name: "No sender",
			msg: &models.Message{
				ID:   3,
				Chat: models.Chat{ID: 7, Type: "private"},
				Text: "hello",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frontend := NewFrontend(&Config{BotToken: "token"}, zap.NewNop())

			called := false
			frontend.messageHandler = func(context.Context, *chat.Message) {
				called = true
			}

			frontend.handleMessage(context.Background(), tt.msg)

			if called {
				t.Error("handler called for a message that should be ignored")
			}
		})
	}
}

func TestGetUserDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		expected string
	}{
		{
			name:     "Username preferred",
			user:     &models.User{Username: "test_user", FirstName: "Test", LastName: "User"},
			expected: "@test_user",
		},
		{
			name:     "First and last name",
			user:     &models.User{FirstName: "Test", LastName: "User"},
			expected: "Test User",
		},
		{
			name:     "First name only",
			user:     &models.User{FirstName: "Test"},
			expected: "Test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getUserDisplayName(tt.user); got != tt.expected {
				t.Errorf("getUserDisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}
