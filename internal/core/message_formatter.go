package core

import (
	"fmt"
	"html"
	"strings"

	"songlinkbot/pkg/platform"
	"songlinkbot/pkg/text"
)

// Reply formatting
// This module renders the consolidated cross-platform reply and the static
// usage message. Replies use Telegram HTML markup.

// FormatInput carries everything the formatter needs for one message.
type FormatInput struct {
	IsGroup    bool
	SenderName string
	Text       string
	Links      []text.Link
	// Results is parallel to Links; a nil entry marks a failed lookup and
	// contributes nothing to the reply.
	Results []*AggregationResult
}

// FormatReply renders the reply for one message. Entries keep the order in
// which their links appeared in the original text and are numbered by that
// 1-based position. Numbering is applied when the message contained two or
// more links, and always in group chats; a single-link private reply
// carries no number.
func FormatReply(in FormatInput) string {
	numbered := in.IsGroup || len(in.Links) > 1

	var b strings.Builder

	if in.IsGroup {
		b.WriteString(formatQuote(in.SenderName, in.Text, in.Links))
		b.WriteString("\n\n")
	}

	entries := make([]string, 0, len(in.Results))
	for i, result := range in.Results {
		if result == nil {
			continue
		}
		entries = append(entries, formatEntry(i+1, result, numbered))
	}
	b.WriteString(strings.Join(entries, "\n"))

	return b.String()
}

// formatEntry renders one aggregation result. When the API supplied no
// title/artist the entry is just the platform-link list.
func formatEntry(index int, result *AggregationResult, numbered bool) string {
	links := make([]string, 0, len(result.Links))
	for _, l := range result.Links {
		links = append(links, fmt.Sprintf(`<a href="%s">%s</a>`, l.URL, l.Platform.Label))
	}

	var b strings.Builder
	if numbered {
		fmt.Fprintf(&b, "%d. ", index)
	}
	if result.Title != "" || result.Artist != "" {
		fmt.Fprintf(&b, "%s - %s\n", html.EscapeString(result.Artist), html.EscapeString(result.Title))
	}
	b.WriteString(strings.Join(links, " | "))

	return b.String()
}

// formatQuote quotes the original group message with each extracted link
// replaced by its bracketed 1-based index.
func formatQuote(senderName, msgText string, links []text.Link) string {
	quoted := text.Normalize(msgText)
	for i, link := range links {
		quoted = strings.Replace(quoted, link.URL, fmt.Sprintf("[%d]", i+1), 1)
	}

	mention := senderName
	if !strings.HasPrefix(mention, "@") {
		mention = "@" + mention
	}

	return fmt.Sprintf("%s wrote: %s", html.EscapeString(mention), html.EscapeString(quoted))
}

// UsageMessage returns the static reply for the /start and /help commands.
func UsageMessage() string {
	return "Hi!\n" +
		"I'm a SongLink Bot. You can message me a link to a supported " +
		"music streaming platform and I will respond with links from all " +
		"the platforms. If you invite me to a group chat I will do the " +
		"same as well as trying to delete original message (you must " +
		"promote me to admin to enable this behavior).\n" +
		"Supported platforms: " + strings.Join(platform.Labels(), " | ") + ".\n" +
		`Powered by great <a href="https://song.link/">SongLink</a> (thank you guys!).`
}
