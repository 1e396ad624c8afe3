package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name  string
		title string
		url   string
		typ   domain.ItemType
		want  domain.Category
	}{
		{"hvdc beats grid", "HVDC link strengthens the grid", "http://example.com", domain.TypeArticle, domain.CategoryHVDC},
		{"substation", "New substation commissioned", "http://example.com", domain.TypeArticle, domain.CategorySubstations},
		{"protection", "Protection relay testing guide", "http://example.com", domain.TypeArticle, domain.CategoryProtection},
		{"cables", "Subsea cable contract awarded", "http://example.com", domain.TypeArticle, domain.CategoryCables},
		{"lead times", "Transformer lead times hit 4 years", "http://example.com", domain.TypeArticle, domain.CategoryLeadTimes},
		{"data centers", "Hyperscaler buys nuclear power", "http://example.com/data-center", domain.TypeArticle, domain.CategoryDataCenters},
		{"ai", "Nvidia results beat estimates", "http://example.com", domain.TypeArticle, domain.CategoryAI},
		{"renewables", "Offshore wind auction results", "http://example.com", domain.TypeArticle, domain.CategoryRenewables},
		{"policy", "FERC issues new order", "http://example.com", domain.TypeArticle, domain.CategoryPolicy},
		{"equipment", "STATCOM fleet expansion", "http://example.com", domain.TypeArticle, domain.CategoryEquipment},
		{"grid generic", "Utilities invest in transmission", "http://example.com", domain.TypeArticle, domain.CategoryGrid},
		{"keyword in url", "Breaking news", "http://example.com/hvdc-project", domain.TypeArticle, domain.CategoryHVDC},
		{"article default", "Nothing matches here", "http://example.com", domain.TypeArticle, domain.CategoryGrid},
		{"video default", "Nothing matches here", "http://example.com", domain.TypeVideo, domain.CategoryVideo},
		{"video with topic", "Inside an HVDC station", "http://example.com", domain.TypeVideo, domain.CategoryHVDC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.title, tt.url, tt.typ))
		})
	}
}

func TestCategory_Deterministic(t *testing.T) {
	title, url := "Grid and HVDC and solar all at once", "http://example.com"
	first := Category(title, url, domain.TypeArticle)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Category(title, url, domain.TypeArticle))
	}
	// rule order picks the most specific match
	assert.Equal(t, domain.CategoryHVDC, first)
}

func TestBlob(t *testing.T) {
	blob := Blob("Big HVDC News", `<p>Watch our <b>grid</b> special</p>`)
	assert.Equal(t, "big hvdc news watch our grid special", blob)
}
