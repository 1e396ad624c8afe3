package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestImageExtractor_OGImage(t *testing.T) {
	server := serve(t, `<html><head>
		<meta property="og:image" content="https://cdn.example.com/hero.jpg"/>
	</head><body><img src="/logo.png"></body></html>`)

	e := NewImageExtractor(5*time.Second, "Gridwire/test")
	img, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", img)
}

func TestImageExtractor_TwitterFallback(t *testing.T) {
	server := serve(t, `<html><head>
		<meta name="twitter:image" content="/images/story.jpg"/>
	</head></html>`)

	e := NewImageExtractor(5*time.Second, "Gridwire/test")
	img, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/images/story.jpg", img, "relative URLs resolve against the page")
}

func TestImageExtractor_GenericImgSkipsJunk(t *testing.T) {
	server := serve(t, `<html><body>
		<img src="/assets/logo.png">
		<img src="/favicon.ico">
		<img src="/uploads/2024/turbine.jpg">
	</body></html>`)

	e := NewImageExtractor(5*time.Second, "Gridwire/test")
	img, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/uploads/2024/turbine.jpg", img)
}

func TestImageExtractor_NoImage(t *testing.T) {
	server := serve(t, `<html><body><p>text only</p></body></html>`)

	e := NewImageExtractor(5*time.Second, "Gridwire/test")
	_, err := e.Extract(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestImageExtractor_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	e := NewImageExtractor(time.Second, "Gridwire/test")
	_, err := e.Extract(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestImageExtractor_InvalidURL(t *testing.T) {
	e := NewImageExtractor(time.Second, "Gridwire/test")
	_, err := e.Extract(context.Background(), "not-a-url")
	assert.Error(t, err)
}
