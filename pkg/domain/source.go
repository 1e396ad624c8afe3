package domain

// Feed is a configured article feed source
type Feed struct {
	URL    string
	Name   string
	Weight float64 // source-trust multiplier in (0,1], 1.0 when unset
}

// Policy controls how permissively a channel's videos are matched
// against the domain vocabulary
type Policy struct {
	AllowSoftMatch  bool // consult the soft tier when stricter tiers don't accept
	RequireCoreTerm bool // gate every accept on a core domain term being present
}

// Channel is a tracked YouTube channel with its relevance policy
type Channel struct {
	ID     string
	Name   string
	Policy Policy
}

// FeedURL returns the channel's Atom feed endpoint
func (c Channel) FeedURL() string {
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + c.ID
}
