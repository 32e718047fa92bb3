// Package telegram provides Telegram Bot API integration using go-telegram/bot library.
package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"songlinkbot/internal/chat"
)

const (
	chatTypeGroup      = "group"
	chatTypeSuperGroup = "supergroup"
)

// Config holds Telegram-specific configuration
type Config struct {
	BotToken string
}

// Frontend implements the chat.Frontend interface for Telegram
type Frontend struct {
	config *Config
	logger *zap.Logger
	bot    *bot.Bot

	messageHandler func(context.Context, *chat.Message)
}

// NewFrontend creates a new Telegram frontend
func NewFrontend(config *Config, logger *zap.Logger) *Frontend {
	return &Frontend{
		config: config,
		logger: logger,
	}
}

// Start initializes the Telegram bot
func (f *Frontend) Start(ctx context.Context) error {
	opts := []bot.Option{
		bot.WithDefaultHandler(f.handleUpdate),
	}

	b, err := bot.New(f.config.BotToken, opts...)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	f.bot = b

	me, err := b.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify bot credentials: %w", err)
	}

	f.logger.Info("Telegram frontend started",
		zap.String("bot_username", me.Username))
	return nil
}

// Listen starts long-polling for updates and calls the handler for each message
func (f *Frontend) Listen(ctx context.Context, handler func(context.Context, *chat.Message)) error {
	if f.bot == nil {
		return fmt.Errorf("telegram frontend is not started")
	}

	f.messageHandler = handler
	f.bot.Start(ctx)

	return nil
}

// SendText sends an HTML-formatted text message, optionally as a reply
func (f *Frontend) SendText(ctx context.Context, chatID, replyToID, text string) (string, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid chat ID: %w", err)
	}

	params := &bot.SendMessageParams{
		ChatID:    chatIDInt,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}

	// The bot's replies are lists of streaming links; Telegram's previews
	// would expand the first one and drown out the rest.
	disabled := true
	params.LinkPreviewOptions = &models.LinkPreviewOptions{
		IsDisabled: &disabled,
	}

	if replyToID != "" {
		messageID, parseErr := strconv.Atoi(replyToID)
		if parseErr != nil {
			return "", fmt.Errorf("invalid reply message ID: %w", parseErr)
		}
		params.ReplyParameters = &models.ReplyParameters{
			MessageID: messageID,
		}
	}

	msg, err := f.bot.SendMessage(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return strconv.Itoa(msg.ID), nil
}

// DeleteMessage deletes a message by its ID
func (f *Frontend) DeleteMessage(ctx context.Context, chatID, msgID string) error {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat ID: %w", err)
	}

	messageID, err := strconv.Atoi(msgID)
	if err != nil {
		return fmt.Errorf("invalid message ID: %w", err)
	}

	params := &bot.DeleteMessageParams{
		ChatID:    chatIDInt,
		MessageID: messageID,
	}

	if _, err = f.bot.DeleteMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// handleUpdate processes incoming Telegram updates
func (f *Frontend) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message != nil {
		f.handleMessage(ctx, update.Message)
	}
}

// handleMessage converts a Telegram message to the unified format
func (f *Frontend) handleMessage(ctx context.Context, msg *models.Message) {
	// Ignore non-text messages and messages from bots (including our own replies)
	if msg.Text == "" || msg.From == nil || msg.From.IsBot {
		return
	}

	message := chat.Message{
		ID:         strconv.Itoa(msg.ID),
		ChatID:     strconv.FormatInt(msg.Chat.ID, 10),
		SenderID:   strconv.FormatInt(msg.From.ID, 10),
		SenderName: getUserDisplayName(msg.From),
		Text:       msg.Text,
		IsGroup:    msg.Chat.Type == chatTypeGroup || msg.Chat.Type == chatTypeSuperGroup,
		Raw:        msg,
	}

	if f.messageHandler != nil {
		f.messageHandler(ctx, &message)
	}
}

// getUserDisplayName creates a display name for the user
func getUserDisplayName(user *models.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}

	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}

	return name
}
