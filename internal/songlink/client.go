// Package songlink implements the client for the SongLink link-aggregation API.
package songlink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"

	"songlinkbot/internal/core"
	"songlinkbot/internal/store"
	"songlinkbot/pkg/platform"
)

const (
	// requestTimeout bounds one lookup; timeouts surface as a LookupError.
	requestTimeout = 10 * time.Second
	// maxReadSize limits how much of the response body we read.
	maxReadSize = 1 << 20
)

// LookupError reports a failed aggregation lookup for one link. It carries
// the original link so callers can log it and keep processing sibling links.
type LookupError struct {
	URL string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("songlink lookup for %q failed: %v", e.URL, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Client queries the SongLink API for cross-platform song links.
type Client struct {
	config *core.SongLinkConfig
	logger *zap.Logger
	client *http.Client
	cache  *store.Cache[*core.AggregationResult]
}

// NewClient creates a SongLink API client. A cache size of zero disables
// the in-memory result cache.
func NewClient(config *core.SongLinkConfig, logger *zap.Logger) (*Client, error) {
	c := &Client{
		config: config,
		logger: logger,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}

	if config.CacheSize > 0 {
		cache, err := store.New[*core.AggregationResult](config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

// Lookup performs a single aggregation API call for the given link. Any
// failure (network, non-2xx status, malformed body, no supported platform
// links) is returned as a *LookupError. No retries are performed.
func (c *Client) Lookup(ctx context.Context, link string) (*core.AggregationResult, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(link); ok {
			c.logger.Debug("Serving lookup from cache", zap.String("url", link))
			return cached, nil
		}
	}

	result, err := c.fetch(ctx, link)
	if err != nil {
		return nil, &LookupError{URL: link, Err: err}
	}

	if c.cache != nil {
		c.cache.Add(link, result)
	}

	return result, nil
}

// CacheLen returns the number of cached lookup results.
func (c *Client) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

func (c *Client) fetch(ctx context.Context, link string) (*core.AggregationResult, error) {
	reqURL, err := url.Parse(c.config.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	q := reqURL.Query()
	q.Set("url", link)
	if c.config.APIKey != "" {
		q.Set("key", c.config.APIKey)
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("songlink API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.toResult()
}

// apiEntity is the per-entity metadata of the SongLink response.
type apiEntity struct {
	Title      string `json:"title"`
	ArtistName string `json:"artistName"`
}

// apiLink is one per-platform link of the SongLink response.
type apiLink struct {
	URL string `json:"url"`
}

// apiResponse is the subset of the SongLink links response we consume. The
// API returns links for far more platforms than the bot displays; only the
// registry subset survives conversion.
type apiResponse struct {
	EntitiesByUniqueID map[string]apiEntity `json:"entitiesByUniqueId"`
	LinksByPlatform    map[string]apiLink   `json:"linksByPlatform"`
}

func (r *apiResponse) toResult() (*core.AggregationResult, error) {
	if len(r.LinksByPlatform) == 0 {
		return nil, errors.New("response contains no platform links")
	}

	result := &core.AggregationResult{}

	// Take title/artist from the first entity carrying metadata. Entity
	// keys are iterated in sorted order to keep the pick deterministic.
	keys := make([]string, 0, len(r.EntitiesByUniqueID))
	for key := range r.EntitiesByUniqueID {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entity := r.EntitiesByUniqueID[key]
		if entity.Title != "" || entity.ArtistName != "" {
			result.Title = entity.Title
			result.Artist = entity.ArtistName
			break
		}
	}

	// Filter to supported platforms in fixed priority order, not the
	// API's map order.
	for _, p := range platform.All() {
		if l, ok := r.LinksByPlatform[p.Key]; ok && l.URL != "" {
			result.Links = append(result.Links, core.SongLink{Platform: p, URL: l.URL})
		}
	}

	if len(result.Links) == 0 {
		return nil, errors.New("no links for supported platforms in response")
	}

	return result, nil
}
