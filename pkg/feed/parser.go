package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Parse extracts raw items from a feed body of the given format.
// Per-item problems never fail the whole feed: entries missing both title
// and link are dropped here, everything else is extracted best-effort with
// missing optional fields left empty.
func Parse(body []byte, kind Kind) ([]RawItem, error) {
	if kind == KindJSON {
		return parseJSONFeed(body), nil
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", kind, err)
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		raw := RawItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			GUID:        strings.TrimSpace(item.GUID),
			Description: item.Description,
		}

		// link falls back to guid when it looks like a URL
		if raw.Link == "" && strings.HasPrefix(raw.GUID, "http") {
			raw.Link = raw.GUID
		}
		if raw.Title == "" && raw.Link == "" {
			continue
		}

		if item.PublishedParsed != nil {
			raw.Published = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			raw.Published = item.UpdatedParsed
		}
		if item.Published != "" {
			raw.DateRaw = item.Published
		} else {
			raw.DateRaw = item.Updated
		}

		raw.Image = itemImage(item)

		items = append(items, raw)
	}
	return items, nil
}

// itemImage pulls the best available image for a feed entry: the declared
// feed image, a media extension URL, an image enclosure, or an <img> inside
// the description HTML.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if u := extAttr(item, "media", "content", "url"); u != "" {
		return u
	}
	if u := extAttr(item, "media", "thumbnail", "url"); u != "" {
		return u
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return imageFromHTML(item.Description)
}

// imageFromHTML returns the src of the first <img> in an HTML fragment
func imageFromHTML(html string) string {
	if html == "" || !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}

// extValue returns the first extension value for prefix:name, trimmed
func extValue(item *gofeed.Item, prefix, name string) string {
	exts, ok := item.Extensions[prefix]
	if !ok {
		return ""
	}
	list, ok := exts[name]
	if !ok || len(list) == 0 {
		return ""
	}
	return strings.TrimSpace(list[0].Value)
}

// extAttr returns an attribute of the first extension element for prefix:name
func extAttr(item *gofeed.Item, prefix, name, attr string) string {
	exts, ok := item.Extensions[prefix]
	if !ok {
		return ""
	}
	list, ok := exts[name]
	if !ok || len(list) == 0 {
		return ""
	}
	return strings.TrimSpace(list[0].Attrs[attr])
}
