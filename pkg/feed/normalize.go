package feed

import (
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// Normalizer converts raw feed entries into canonical items
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer using wall-clock time
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerWithClock creates a normalizer with an injected clock
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize builds a canonical Item from a raw entry. Titles and URLs are
// trimmed, the publisher is derived from the URL host (channel name for
// videos), and the publish time is clamped so it never exceeds now -
// future-dated feeds would otherwise corrupt window membership and score
// ordering.
func (n *Normalizer) Normalize(raw RawItem, typ domain.ItemType) domain.Item {
	now := n.now()

	item := domain.Item{
		Title:     strings.TrimSpace(raw.Title),
		URL:       strings.TrimSpace(raw.Link),
		Image:     strings.TrimSpace(raw.Image),
		Type:      typ,
		VideoID:   raw.VideoID,
		Published: n.publishTime(raw, now),
		Weight:    1.0,
	}

	if typ == domain.TypeVideo && raw.Channel != "" {
		item.Publisher = raw.Channel
	} else {
		item.Publisher = PublisherFromURL(item.URL)
	}

	return item
}

// publishTime resolves the entry's timestamp: pre-parsed value first, then a
// lenient parse of the raw string; unparseable or future values become now
func (n *Normalizer) publishTime(raw RawItem, now time.Time) time.Time {
	ts := now
	switch {
	case raw.Published != nil:
		ts = *raw.Published
	case raw.DateRaw != "":
		if parsed, err := dateparse.ParseAny(raw.DateRaw); err == nil {
			ts = parsed
		}
	}
	if ts.After(now) {
		ts = now
	}
	return ts
}

// PublisherFromURL derives the publisher name from a URL host, lowercased
// with the www prefix stripped
func PublisherFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	return strings.TrimPrefix(host, "www.")
}
