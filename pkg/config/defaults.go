package config

import "net/url"

// defaultFeeds is the built-in trade press list plus focused Google News
// searches, used when no feeds are configured
func defaultFeeds() []FeedConfig {
	feeds := []FeedConfig{
		{URL: "https://www.tdworld.com/rss", Name: "T&D World", Weight: 1.0},
		{URL: "https://www.smart-energy.com/feed/", Name: "Smart Energy International", Weight: 1.0},
		{URL: "https://www.renewableenergyworld.com/feed/", Name: "Renewable Energy World", Weight: 1.0},
		{URL: "https://energycentral.com/news/rss", Name: "Energy Central", Weight: 0.9},
		{URL: "https://www.power-technology.com/feed/", Name: "Power Technology", Weight: 0.9},
		{URL: "https://feeds.feedburner.com/IeeeSpectrumEnergy", Name: "IEEE Spectrum Energy", Weight: 1.0},
		{URL: "https://www.reuters.com/business/energy/rss", Name: "Reuters Energy", Weight: 1.0},
		{URL: "https://www.utilitydive.com/feeds/news/", Name: "Utility Dive", Weight: 1.0},
	}

	// focused Google News searches, lower trust than the trade press
	queries := []string{
		`("high voltage" OR HV OR HVDC OR "substation" OR "transmission line") grid`,
		`STATCOM OR "synchronous condenser" OR FACTS OR "series capacitor"`,
		`interconnector OR "grid congestion" OR interconnection OR curtailment`,
	}
	for _, q := range queries {
		feeds = append(feeds, FeedConfig{
			URL:    "https://news.google.com/rss/search?q=" + url.QueryEscape(q) + "&hl=en-US&gl=US&ceid=US:en",
			Name:   "Google News",
			Weight: 0.8,
		})
	}
	return feeds
}

// defaultChannels is the built-in channel list, used when no channels are
// configured. General news desks are noisy, so they carry the strict policy:
// soft matches allowed but every accept requires a core grid/energy term.
func defaultChannels() []ChannelConfig {
	newsDesk := PolicyConfig{AllowSoft: true, RequireCore: true}
	return []ChannelConfig{
		{ID: "UCupvZG-5ko_eiXAupbDfxWw", Name: "CNN", Policy: newsDesk},
		{ID: "UChqUTb7kYRX8-EiaN3XFrSQ", Name: "Reuters", Policy: newsDesk},
		{ID: "UCK7tptUDHh-RYDsdxO1-5QQ", Name: "The Wall Street Journal", Policy: newsDesk},
		{ID: "UCoUxsWakJucWg46KW5RsvPw", Name: "Financial Times", Policy: newsDesk},
	}
}
