package core

import (
	"context"
	"time"

	"songlinkbot/pkg/platform"
)

// SongLink is one per-platform URL from an aggregation result.
type SongLink struct {
	Platform platform.Platform
	URL      string
}

// AggregationResult is the consolidated cross-platform view of one song
// link. Links are ordered by the registry display priority. Title and
// Artist are empty when the aggregation API supplied no entity metadata.
type AggregationResult struct {
	Title  string
	Artist string
	Links  []SongLink
}

// LookupClient resolves one music link into its cross-platform equivalents.
type LookupClient interface {
	// Lookup performs a single aggregation API call for the given link.
	Lookup(ctx context.Context, link string) (*AggregationResult, error)
}

// MetricsRecorder records processing outcomes for observability.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	RecordMessage(status string)
	RecordLookup(platformID, status string, duration time.Duration)
	RecordReply(chatKind string)
	RecordDelete(status string)
}
