package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

const (
	watchURLPrefix   = "https://www.youtube.com/watch?v="
	thumbnailPattern = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// ParseYouTube extracts video entries from a YouTube channel Atom feed.
// Besides the usual Atom fields it reads yt:videoId and the media:group
// description (used later for relevance filtering), builds the canonical
// watch URL and the deterministic hqdefault thumbnail. Entries without a
// video id or title are dropped.
func ParseYouTube(body []byte, channelName string) ([]RawItem, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse youtube feed: %w", err)
	}

	if channelName == "" {
		channelName = strings.TrimSpace(parsed.Title)
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		videoID := extValue(item, "yt", "videoId")
		title := strings.TrimSpace(item.Title)
		if videoID == "" || title == "" {
			continue
		}

		raw := RawItem{
			Title:       title,
			Link:        watchURLPrefix + videoID,
			Description: mediaDescription(item),
			Image:       fmt.Sprintf(thumbnailPattern, videoID),
			Channel:     channelName,
			VideoID:     videoID,
		}

		if item.PublishedParsed != nil {
			raw.Published = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			raw.Published = item.UpdatedParsed
		}
		raw.DateRaw = item.Published

		items = append(items, raw)
	}
	return items, nil
}

// mediaDescription digs the media:group/media:description text out of the
// entry's extensions
func mediaDescription(item *gofeed.Item) string {
	exts, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	groups, ok := exts["group"]
	if !ok || len(groups) == 0 {
		return ""
	}
	descs, ok := groups[0].Children["description"]
	if !ok || len(descs) == 0 {
		return ""
	}
	return strings.TrimSpace(descs[0].Value)
}
