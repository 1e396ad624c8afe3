package domain

import "time"

// ItemType distinguishes article and video content
type ItemType string

// item types
const (
	TypeArticle ItemType = "article"
	TypeVideo   ItemType = "video"
)

// Category is a topic label assigned by the classifier
type Category string

// topic vocabulary
const (
	CategoryGrid        Category = "Grid"
	CategorySubstations Category = "Substations"
	CategoryProtection  Category = "Protection"
	CategoryCables      Category = "Cables"
	CategoryHVDC        Category = "HVDC"
	CategoryRenewables  Category = "Renewables"
	CategoryPolicy      Category = "Policy"
	CategoryAI          Category = "AI"
	CategoryDataCenters Category = "Data Centers"
	CategoryTransport   Category = "Transport"
	CategoryEquipment   Category = "Equipment"
	CategoryLeadTimes   Category = "Lead Times"
	CategoryVideo       Category = "Video"
)

// Item is a normalized content record, the central entity of the pipeline.
// Identity key is the URL. The JSON shape is the published artifact contract.
type Item struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Publisher string    `json:"publisher"`
	Category  Category  `json:"category"`
	Published time.Time `json:"published"`
	Score     float64   `json:"score"`
	Image     string    `json:"image,omitempty"`
	Type      ItemType  `json:"type"`
	VideoID   string    `json:"videoId,omitempty"`
	ShareID   string    `json:"shareId,omitempty"`

	// Weight is the source-trust multiplier in (0,1], not published
	Weight float64 `json:"-"`
}

// Age returns how old the item is relative to now
func (i *Item) Age(now time.Time) time.Duration {
	return now.Sub(i.Published)
}

// ShareRecord is the snapshot of an item's public fields keyed by shareId,
// consumed by the static share-page generator
type ShareRecord struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"`
	Publisher string    `json:"publisher"`
	Category  Category  `json:"category"`
	Published time.Time `json:"published"`
	Type      ItemType  `json:"type"`
	VideoID   string    `json:"videoId,omitempty"`
}

// ShareSnapshot builds the share record for an item
func (i *Item) ShareSnapshot() ShareRecord {
	return ShareRecord{
		URL:       i.URL,
		Title:     i.Title,
		Image:     i.Image,
		Publisher: i.Publisher,
		Category:  i.Category,
		Published: i.Published,
		Type:      i.Type,
		VideoID:   i.VideoID,
	}
}
