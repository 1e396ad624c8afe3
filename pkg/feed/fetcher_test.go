package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, "Gridwire/test", 2)
	body, contentType, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<rss></rss>", string(body))
	assert.Contains(t, contentType, "rss")
}

func TestHTTPFetcher_FetchRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, "Gridwire/test", 3)
	body, _, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPFetcher_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(time.Second, "Gridwire/test", 2)
	_, _, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, server.URL, fetchErr.URL)
	assert.Equal(t, http.StatusForbidden, fetchErr.Status)
}

func TestClient_ProxyFallback(t *testing.T) {
	proxied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("u"))
		w.Write([]byte("via proxy"))
	}))
	defer proxied.Close()

	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer direct.Close()

	fetcher := NewHTTPFetcher(time.Second, "Gridwire/test", 1)
	client := NewClient(fetcher, []string{proxied.URL + "?u={url}"})

	body, _, err := client.Fetch(context.Background(), direct.URL)
	require.NoError(t, err)
	assert.Equal(t, "via proxy", string(body))
}

func TestClient_AllFail(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer direct.Close()

	deadProxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer deadProxy.Close()

	fetcher := NewHTTPFetcher(time.Second, "Gridwire/test", 1)
	client := NewClient(fetcher, []string{deadProxy.URL + "?u={url}"})

	_, _, err := client.Fetch(context.Background(), direct.URL)
	require.Error(t, err)

	// the original (direct) error surfaces, not the proxy's
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, direct.URL, fetchErr.URL)
	assert.Equal(t, http.StatusBadGateway, fetchErr.Status)
}
