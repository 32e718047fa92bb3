package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"songlinkbot/internal/chat"
	"songlinkbot/pkg/text"
)

// Dispatcher handles inbound messages from the chat frontend: it extracts
// song links, fans out aggregation lookups, sends the consolidated reply
// and, in group chats, attempts to delete the original message.
type Dispatcher struct {
	config    *Config
	frontend  chat.Frontend
	lookup    LookupClient
	extractor *text.Extractor
	metrics   MetricsRecorder
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. metrics may be nil.
func NewDispatcher(
	config *Config,
	frontend chat.Frontend,
	lookup LookupClient,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		config:    config,
		frontend:  frontend,
		lookup:    lookup,
		extractor: text.NewExtractor(),
		metrics:   metrics,
		logger:    logger,
	}
}

// Start initializes the frontend and blocks processing messages until ctx is done.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info("Starting dispatcher")

	if err := d.frontend.Start(ctx); err != nil {
		return fmt.Errorf("failed to start chat frontend: %w", err)
	}

	return d.frontend.Listen(ctx, d.HandleMessage)
}

// HandleMessage runs one inbound message through the processing pipeline.
// Messages are independent; the frontend's delivery layer owns concurrency
// across them.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *chat.Message) {
	if msg.Text == "" {
		return
	}

	if isCommand(msg.Text) {
		d.replyUsage(ctx, msg)
		d.recordMessage(statusCommand)
		return
	}

	msgCtx := &messageContext{msg: msg, state: StateReceived}

	// The skip mark is honored before any extraction work.
	if strings.Contains(msg.Text, d.config.App.SkipMark) {
		msgCtx.state = StateSkipped
		d.logger.Info("Message is skipped due to skip mark",
			zap.String("chatID", msg.ChatID),
			zap.String("messageID", msg.ID))
		d.recordMessage(statusSkipped)
		return
	}

	msgCtx.links = d.extractor.ExtractLinks(msg.Text)
	if len(msgCtx.links) == 0 {
		msgCtx.state = StateNoLinks
		d.logger.Info("No songs found in message",
			zap.String("chatID", msg.ChatID),
			zap.String("messageID", msg.ID))
		d.recordMessage(statusNoLinks)
		return
	}

	msgCtx.state = StateLookup
	msgCtx.results = d.lookupAll(ctx, msgCtx.links)

	if !hasResults(msgCtx.results) {
		// Every failure was already logged per link; same observable
		// effect as a message without links.
		d.recordMessage(statusAllLookupsFailed)
		return
	}

	reply := FormatReply(FormatInput{
		IsGroup:    msg.IsGroup,
		SenderName: msg.SenderName,
		Text:       msg.Text,
		Links:      msgCtx.links,
		Results:    msgCtx.results,
	})

	if _, err := d.frontend.SendText(ctx, msg.ChatID, msg.ID, reply); err != nil {
		d.logger.Error("Failed to send reply",
			zap.String("chatID", msg.ChatID),
			zap.String("messageID", msg.ID),
			zap.Error(err))
		d.recordMessage(statusReplyFailed)
		return
	}
	msgCtx.state = StateReplied
	d.recordReply(msg.IsGroup)

	if msg.IsGroup {
		msgCtx.state = StateDeleteAttempted
		d.deleteOriginal(ctx, msg)
	}

	d.recordMessage(statusReplied)
}

// lookupAll fans out one aggregation lookup per link and joins the results
// by original link index, so the reply order never depends on completion
// order. A failing link is logged and leaves a nil slot; siblings proceed.
func (d *Dispatcher) lookupAll(ctx context.Context, links []text.Link) []*AggregationResult {
	results := make([]*AggregationResult, len(links))

	g, gCtx := errgroup.WithContext(ctx)
	for i, link := range links {
		g.Go(func() error {
			start := time.Now()
			result, err := d.lookup.Lookup(gCtx, link.URL)
			if err != nil {
				d.logger.Warn("Song lookup failed",
					zap.String("url", link.URL),
					zap.String("platform", string(link.Platform.ID)),
					zap.Error(err))
				d.recordLookup(string(link.Platform.ID), "error", time.Since(start))
				return nil
			}

			results[i] = result
			d.recordLookup(string(link.Platform.ID), "ok", time.Since(start))
			return nil
		})
	}
	// Lookups never propagate errors; Wait only joins the goroutines.
	_ = g.Wait()

	return results
}

// deleteOriginal attempts to delete the quoted group message. Failure is
// non-fatal: the reply already stands.
func (d *Dispatcher) deleteOriginal(ctx context.Context, msg *chat.Message) {
	if err := d.frontend.DeleteMessage(ctx, msg.ChatID, msg.ID); err != nil {
		d.logger.Warn("Cannot delete message",
			zap.String("chatID", msg.ChatID),
			zap.String("messageID", msg.ID),
			zap.Error(err))
		d.recordDelete("error")
		return
	}
	d.recordDelete("ok")
}

// replyUsage answers /start and /help with the static usage message.
func (d *Dispatcher) replyUsage(ctx context.Context, msg *chat.Message) {
	if _, err := d.frontend.SendText(ctx, msg.ChatID, msg.ID, UsageMessage()); err != nil {
		d.logger.Error("Failed to send usage message",
			zap.String("chatID", msg.ChatID),
			zap.Error(err))
	}
}

func isCommand(msgText string) bool {
	return strings.HasPrefix(msgText, commandStart) || strings.HasPrefix(msgText, commandHelp)
}

func hasResults(results []*AggregationResult) bool {
	for _, r := range results {
		if r != nil {
			return true
		}
	}
	return false
}

func (d *Dispatcher) recordMessage(status string) {
	if d.metrics != nil {
		d.metrics.RecordMessage(status)
	}
}

func (d *Dispatcher) recordLookup(platformID, status string, duration time.Duration) {
	if d.metrics != nil {
		d.metrics.RecordLookup(platformID, status, duration)
	}
}

func (d *Dispatcher) recordReply(isGroup bool) {
	if d.metrics == nil {
		return
	}
	kind := "private"
	if isGroup {
		kind = "group"
	}
	d.metrics.RecordReply(kind)
}

func (d *Dispatcher) recordDelete(status string) {
	if d.metrics != nil {
		d.metrics.RecordDelete(status)
	}
}
