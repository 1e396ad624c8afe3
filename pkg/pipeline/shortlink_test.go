package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

func TestShareID_Deterministic(t *testing.T) {
	first := ShareID("http://example.com/article")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ShareID("http://example.com/article"))
	}
	assert.Len(t, first, 10)

	// url-safe alphabet only
	for _, c := range first {
		assert.NotContains(t, "+/=", string(c))
	}

	assert.NotEqual(t, first, ShareID("http://example.com/other"))
}

func TestAssignShareIDs(t *testing.T) {
	items := []domain.Item{
		{Title: "A", URL: "http://example.com/a", Publisher: "example.com", Type: domain.TypeArticle},
		{Title: "V", URL: "https://www.youtube.com/watch?v=x", Publisher: "Reuters", Type: domain.TypeVideo, VideoID: "x"},
	}

	links := AssignShareIDs(items)
	require.Len(t, links, 2)

	for i := range items {
		require.NotEmpty(t, items[i].ShareID)
		record, ok := links[items[i].ShareID]
		require.True(t, ok)
		assert.Equal(t, items[i].URL, record.URL)
		assert.Equal(t, items[i].Title, record.Title)
	}

	// video snapshot keeps the embeddable id
	video := links[items[1].ShareID]
	assert.Equal(t, "x", video.VideoID)
}
