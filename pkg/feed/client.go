package feed

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
)

// Fetcher retrieves a URL and returns its body and content type
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body []byte, contentType string, err error)
}

// Client wraps a Fetcher with proxy URL template fallbacks. Each template
// contains a {url} placeholder for the query-escaped original URL.
// Proxies are consulted in order only after the direct fetch, including its
// retries, has failed; the first one that succeeds wins.
type Client struct {
	fetcher Fetcher
	proxies []string
}

// NewClient creates a proxy-aware fetch client
func NewClient(fetcher Fetcher, proxies []string) *Client {
	return &Client{fetcher: fetcher, proxies: proxies}
}

// Fetch tries the direct URL first, then each proxy template in order.
// When everything fails the original (direct) error is surfaced.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	body, contentType, err := c.fetcher.Fetch(ctx, rawURL)
	if err == nil {
		return body, contentType, nil
	}

	for _, tpl := range c.proxies {
		proxied := strings.ReplaceAll(tpl, "{url}", url.QueryEscape(rawURL))
		pbody, pct, perr := c.fetcher.Fetch(ctx, proxied)
		if perr == nil {
			lgr.Printf("[DEBUG] fetched %s via proxy fallback", rawURL)
			return pbody, pct, nil
		}
	}

	return nil, "", err
}
