package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// FetchError is a typed fetch failure carrying the URL and cause
type FetchError struct {
	URL    string
	Status int // last HTTP status, 0 when the request never completed
	Err    error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error { return e.Err }

// HTTPFetcher performs HTTP GETs with timeout and backoff retries
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	retries   int
}

// NewHTTPFetcher creates a fetcher with the given timeout, user agent and
// number of attempts per URL
func NewHTTPFetcher(timeout time.Duration, userAgent string, retries int) *HTTPFetcher {
	if retries < 1 {
		retries = 1
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		retries:   retries,
	}
}

// Fetch retrieves the URL, retrying with exponential backoff. Returns the
// raw body and content type, or a *FetchError after the final attempt.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (body []byte, contentType string, err error) {
	retrier := repeater.NewBackoff(f.retries, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))

	var lastStatus int
	doErr := retrier.Do(ctx, func() error {
		req, rerr := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if rerr != nil {
			return rerr
		}
		req.Header.Set("User-Agent", f.userAgent)
		addBrowserHeaders(req)

		resp, rerr := f.client.Do(req)
		if rerr != nil {
			return rerr
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastStatus = resp.StatusCode
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		lastStatus = resp.StatusCode

		body, rerr = io.ReadAll(resp.Body)
		if rerr != nil {
			return fmt.Errorf("read body: %w", rerr)
		}
		contentType = resp.Header.Get("Content-Type")
		return nil
	})

	if doErr != nil {
		status := 0
		if lastStatus != http.StatusOK {
			status = lastStatus
		}
		return nil, "", &FetchError{URL: url, Status: status, Err: doErr}
	}
	return body, contentType, nil
}
