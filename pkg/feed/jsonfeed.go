package feed

import (
	"bytes"
	"encoding/json"
	"strings"
)

// jsonItem accepts the common aliases seen in JSON feeds in the wild
type jsonItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Link          string `json:"link"`
	ExternalURL   string `json:"external_url"`
	DatePublished string `json:"date_published"`
	Published     string `json:"published"`
	Date          string `json:"date"`
	Image         string `json:"image"`
	BannerImage   string `json:"banner_image"`
	Thumbnail     string `json:"thumbnail"`
	Summary       string `json:"summary"`
	ContentText   string `json:"content_text"`
	ContentHTML   string `json:"content_html"`
}

// parseJSONFeed decodes a JSON feed leniently: either a JSON Feed object
// with an items array, or a bare array of items. Malformed input yields an
// empty slice rather than an error.
func parseJSONFeed(body []byte) []RawItem {
	trimmed := bytes.TrimLeft(body, " \t\r\n")

	var entries []jsonItem
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil
		}
	} else {
		var envelope struct {
			Items []jsonItem `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil
		}
		entries = envelope.Items
	}

	items := make([]RawItem, 0, len(entries))
	for _, e := range entries {
		raw := RawItem{
			Title:       strings.TrimSpace(e.Title),
			Link:        firstNonEmpty(e.URL, e.Link, e.ExternalURL),
			DateRaw:     firstNonEmpty(e.DatePublished, e.Published, e.Date),
			Image:       firstNonEmpty(e.Image, e.BannerImage, e.Thumbnail),
			Description: firstNonEmpty(e.Summary, e.ContentText, e.ContentHTML),
		}
		if raw.Title == "" && raw.Link == "" {
			continue
		}
		if raw.Image == "" {
			raw.Image = imageFromHTML(e.ContentHTML)
		}
		items = append(items, raw)
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
