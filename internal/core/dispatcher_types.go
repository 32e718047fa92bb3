package core

import (
	"songlinkbot/internal/chat"
	"songlinkbot/pkg/text"
)

// State tracks one message's progress through the processing pipeline.
type State int

const (
	StateReceived State = iota
	StateSkipped
	StateNoLinks
	StateLookup
	StateReplied
	StateDeleteAttempted
)

// Recognized commands, matched case-sensitively at message start.
const (
	commandStart = "/start"
	commandHelp  = "/help"
)

// Message outcome labels recorded on the messages_total metric.
const (
	statusCommand          = "command"
	statusSkipped          = "skipped"
	statusNoLinks          = "no_links"
	statusAllLookupsFailed = "all_lookups_failed"
	statusReplyFailed      = "reply_failed"
	statusReplied          = "replied"
)

// messageContext holds the per-message processing state. A context lives
// for exactly one HandleMessage call; nothing is shared across messages.
type messageContext struct {
	msg     *chat.Message
	state   State
	links   []text.Link
	results []*AggregationResult
}
