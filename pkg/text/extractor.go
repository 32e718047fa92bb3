// Package text provides music link extraction from free-form chat messages.
package text

import (
	"iter"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"songlinkbot/pkg/platform"
)

var urlRegex = regexp.MustCompile(`https?://\S+`)

// Link is one recognized music link found in a message.
type Link struct {
	Platform platform.Platform
	URL      string
}

// Extractor scans message text for links to supported streaming platforms.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Links returns the recognized music links in text, in order of occurrence.
// The sequence is restartable: ranging over it again rescans the text.
// Links to unsupported domains are ignored and duplicate links are
// preserved. Text without links yields an empty sequence.
func (e *Extractor) Links(text string) iter.Seq[Link] {
	return func(yield func(Link) bool) {
		for _, match := range urlRegex.FindAllString(Normalize(text), -1) {
			candidate := cleanURL(match)
			if candidate == "" {
				continue
			}

			p, ok := platform.Match(candidate)
			if !ok {
				continue
			}

			if !yield(Link{Platform: p, URL: candidate}) {
				return
			}
		}
	}
}

// ExtractLinks collects the Links sequence into a slice.
func (e *Extractor) ExtractLinks(text string) []Link {
	var links []Link
	for link := range e.Links(text) {
		links = append(links, link)
	}
	return links
}

// Normalize applies NFKC normalization so that visually identical URLs
// compare equal regardless of the unicode forms chat clients produce.
func Normalize(text string) string {
	return norm.NFKC.String(text)
}

// cleanURL trims trailing sentence punctuation and validates the candidate.
func cleanURL(rawURL string) string {
	rawURL = strings.TrimRight(rawURL, ".,!?;)")

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	return rawURL
}
