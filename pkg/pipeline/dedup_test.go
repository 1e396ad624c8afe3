package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

func TestDedupe(t *testing.T) {
	items := []domain.Item{
		{Title: "First", URL: "http://example.com/a", Publisher: "example.com"},
		{Title: "First again, different title", URL: "http://example.com/a", Publisher: "example.com"},
		{Title: "Second", URL: "http://example.com/b", Publisher: "example.com"},
	}

	out := Dedupe(items)
	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title, "first seen wins")
	assert.Equal(t, "Second", out[1].Title)
}

func TestDedupe_FallbackKey(t *testing.T) {
	items := []domain.Item{
		{Title: "No link story", Publisher: "example.com"},
		{Title: "No link story", Publisher: "example.com"},
		{Title: "No link story", Publisher: "other.com"},
	}

	out := Dedupe(items)
	require.Len(t, out, 2, "title|publisher key collapses same-source duplicates only")
}

func TestDedupe_TrimsURL(t *testing.T) {
	items := []domain.Item{
		{Title: "A", URL: "http://example.com/a"},
		{Title: "B", URL: "  http://example.com/a  "},
	}
	out := Dedupe(items)
	require.Len(t, out, 1)
}
