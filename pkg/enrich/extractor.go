// Package enrich recovers missing thumbnail images by scraping source pages
// with a bounded worker pool.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ImageExtractor fetches a page and extracts a representative image URL
type ImageExtractor struct {
	client    *http.Client
	userAgent string
}

// NewImageExtractor creates an extractor with the given fetch timeout
func NewImageExtractor(timeout time.Duration, userAgent string) *ImageExtractor {
	return &ImageExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// metaSelectors are tried in order; social-preview tags are the most
// reliable signal for a representative image
var metaSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[property="og:image:url"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`meta[property="twitter:image"]`, "content"},
	{`link[rel="image_src"]`, "href"},
}

// junkImagePaths filters the generic <img> fallback to skip obvious
// non-content images
var junkImagePaths = []string{"logo", "sprite", "favicon", "icon", "blank", "pixel", "spacer", "avatar"}

// Extract retrieves the page and returns the best available image URL,
// or an error when the page yields nothing usable
func (e *ImageExtractor) Extract(ctx context.Context, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	if img := pageImage(doc, base); img != "" {
		return img, nil
	}
	return "", fmt.Errorf("no image found on %s", pageURL)
}

// pageImage tries the meta selectors, then falls back to the first
// non-junk <img>
func pageImage(doc *goquery.Document, base *url.URL) string {
	for _, ms := range metaSelectors {
		if val, ok := doc.Find(ms.selector).First().Attr(ms.attr); ok {
			if img := resolveImage(val, base); img != "" {
				return img
			}
		}
	}

	var fallback string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if img := resolveImage(src, base); img != "" && !junkImage(img) {
			fallback = img
			return false
		}
		return true
	})
	return fallback
}

// resolveImage trims the candidate and resolves it against the page URL
func resolveImage(raw string, base *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func junkImage(img string) bool {
	lower := strings.ToLower(img)
	for _, junk := range junkImagePaths {
		if strings.Contains(lower, junk) {
			return true
		}
	}
	return strings.HasSuffix(lower, ".svg")
}
