// Package platform defines the fixed registry of supported music streaming platforms.
package platform

import (
	"regexp"
)

// ID identifies one supported streaming platform.
type ID string

// Supported platform identifiers.
const (
	Deezer      ID = "deezer"
	GoogleMusic ID = "googleMusic"
	SoundCloud  ID = "soundcloud"
)

// Platform describes one supported streaming service.
type Platform struct {
	ID       ID
	Key      string         // platform key used in SongLink API responses
	Label    string         // human-readable label rendered in replies
	Pattern  *regexp.Regexp // host + path shape of track/album links
	Priority int            // display rank, lower renders first
}

// registry is the closed, ordered set of supported platforms. The slice
// order is the fixed display priority used by the extractor and formatter.
var registry = []Platform{
	{
		ID:       Deezer,
		Key:      "deezer",
		Label:    "Deezer",
		Pattern:  regexp.MustCompile(`^https?://(?:www\.)?deezer\.com/(?:[a-z]{2}/)?(?:track|album)/\d+`),
		Priority: 0,
	},
	{
		ID:       GoogleMusic,
		Key:      "google",
		Label:    "Google Music",
		Pattern:  regexp.MustCompile(`^https?://play\.google\.com/music/m/[A-Za-z0-9]+`),
		Priority: 1,
	},
	{
		ID:       SoundCloud,
		Key:      "soundcloud",
		Label:    "SoundCloud",
		Pattern:  regexp.MustCompile(`^https?://(?:www\.|m\.)?soundcloud\.com/[\w\-.]+/[\w\-.]+`),
		Priority: 2,
	},
}

// All returns the supported platforms in display priority order.
func All() []Platform {
	platforms := make([]Platform, len(registry))
	copy(platforms, registry)
	return platforms
}

// ByKey looks up a platform by its SongLink API key.
func ByKey(key string) (Platform, bool) {
	for _, p := range registry {
		if p.Key == key {
			return p, true
		}
	}
	return Platform{}, false
}

// Match returns the platform whose URL pattern matches rawURL.
func Match(rawURL string) (Platform, bool) {
	for _, p := range registry {
		if p.Pattern.MatchString(rawURL) {
			return p, true
		}
	}
	return Platform{}, false
}

// Labels returns the display labels in priority order.
func Labels() []string {
	labels := make([]string, len(registry))
	for i, p := range registry {
		labels[i] = p.Label
	}
	return labels
}
