package feed

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Kind is the detected wire format of a feed
type Kind int

// wire formats
const (
	KindRSS Kind = iota
	KindAtom
	KindJSON
)

// String returns the format name
func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindJSON:
		return "json"
	default:
		return "rss"
	}
}

// Detect determines the wire format from the body and content type.
// JSON is recognized by content type or a leading brace/bracket; XML formats
// are told apart by gofeed. Anything unrecognized falls back to RSS so
// malformed feeds still get an extraction attempt instead of an error.
func Detect(body []byte, contentType string) Kind {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return KindJSON
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return KindJSON
	}

	switch gofeed.DetectFeedType(bytes.NewReader(body)) {
	case gofeed.FeedTypeAtom:
		return KindAtom
	case gofeed.FeedTypeJSON:
		return KindJSON
	default:
		return KindRSS
	}
}
