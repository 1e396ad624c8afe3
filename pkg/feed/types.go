package feed

import "time"

// RawItem is a single entry extracted from a feed before normalization.
// Optional fields are explicit: a nil Published means the source supplied
// no parseable timestamp (DateRaw may still carry the original string).
type RawItem struct {
	Title       string
	Link        string
	GUID        string
	Description string
	DateRaw     string
	Published   *time.Time
	Image       string

	// video-only fields
	Channel string
	VideoID string
}
