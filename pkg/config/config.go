package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the pipeline configuration
type Config struct {
	Feeds []FeedConfig `yaml:"feeds" json:"feeds" jsonschema:"description=Article feed sources; built-in trade press list used when empty"`

	Channels []ChannelConfig `yaml:"channels" json:"channels" jsonschema:"description=Tracked YouTube channels; built-in news-desk list used when empty"`

	Windows struct {
		RecentHours int `yaml:"recent_hours" json:"recent_hours" jsonschema:"default=60,description=Recent window for articles in hours"`
		VideoHours  int `yaml:"video_hours" json:"video_hours" jsonschema:"default=168,description=Recent window for videos in hours"`
		WeeklyHours int `yaml:"weekly_hours" json:"weekly_hours" jsonschema:"default=168,description=Weekly window in hours applied to all types"`
	} `yaml:"windows" json:"windows" jsonschema:"description=Time window configuration"`

	Collect struct {
		Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-request fetch timeout"`
		Retries      int           `yaml:"retries" json:"retries" jsonschema:"default=3,description=Fetch attempts per URL before proxy fallback"`
		Delay        time.Duration `yaml:"delay" json:"delay" jsonschema:"default=500ms,description=Politeness delay between feed fetches"`
		PerFeedLimit int           `yaml:"per_feed_limit" json:"per_feed_limit" jsonschema:"default=20,description=Maximum entries read per feed"`
		PerSourceMax int           `yaml:"per_source_max" json:"per_source_max" jsonschema:"default=0,description=Cap per publisher in the recent view; 0 disables"`
		UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Gridwire/1.0,description=User agent for HTTP requests"`
		Proxies      []string      `yaml:"proxies" json:"proxies" jsonschema:"description=Proxy URL templates with {url} placeholder tried in order after direct fetch fails"`
		Blacklist    []string      `yaml:"blacklist" json:"blacklist" jsonschema:"description=Publisher domains to drop"`
	} `yaml:"collect" json:"collect" jsonschema:"description=Feed collection configuration"`

	Enrich struct {
		MaxItems int           `yaml:"max_items" json:"max_items" jsonschema:"default=40,description=Cap on image enrichment fetches per run"`
		Workers  int           `yaml:"workers" json:"workers" jsonschema:"default=5,description=Enrichment worker pool size"`
		Delay    time.Duration `yaml:"delay" json:"delay" jsonschema:"default=300ms,description=Per-worker delay between page fetches"`
		Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Page fetch timeout"`
	} `yaml:"enrich" json:"enrich" jsonschema:"description=Image enrichment configuration"`

	Archive struct {
		DSN           string `yaml:"dsn" json:"dsn" jsonschema:"default=file:gridwire.db?cache=shared&mode=rwc,description=SQLite DSN for the rolling archive; empty disables archiving"`
		RetentionDays int    `yaml:"retention_days" json:"retention_days" jsonschema:"default=400,description=Days to keep archived items"`
	} `yaml:"archive" json:"archive" jsonschema:"description=Rolling archive configuration"`

	Output struct {
		Dir string `yaml:"dir" json:"dir" jsonschema:"default=data,description=Directory for published JSON artifacts"`
	} `yaml:"output" json:"output" jsonschema:"description=Output configuration"`
}

// FeedConfig describes one article feed source
type FeedConfig struct {
	URL    string  `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Name   string  `yaml:"name" json:"name" jsonschema:"description=Display name; derived from the URL host when empty"`
	Weight float64 `yaml:"weight" json:"weight" jsonschema:"default=1.0,minimum=0,maximum=1,description=Source-trust multiplier applied to freshness scores"`
}

// ChannelConfig describes one tracked YouTube channel
type ChannelConfig struct {
	ID     string       `yaml:"id" json:"id" jsonschema:"required,description=YouTube channel ID"`
	Name   string       `yaml:"name" json:"name" jsonschema:"description=Channel display name used as publisher"`
	Policy PolicyConfig `yaml:"policy" json:"policy" jsonschema:"description=Relevance policy for the channel"`
}

// PolicyConfig holds the per-channel relevance knobs
type PolicyConfig struct {
	AllowSoft   bool `yaml:"allow_soft" json:"allow_soft" jsonschema:"default=false,description=Consult the soft vocabulary tier"`
	RequireCore bool `yaml:"require_core" json:"require_core" jsonschema:"default=false,description=Require a core grid/energy term for any accept"`
}

// Load reads configuration from a YAML file. A missing file is not an error:
// the built-in defaults make the pipeline runnable with no config at all.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		switch {
		case err == nil:
			// expand environment variables
			expanded := os.ExpandEnv(string(data))
			if uerr := yaml.Unmarshal([]byte(expanded), &cfg); uerr != nil {
				return nil, fmt.Errorf("parse config: %w", uerr)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if len(c.Feeds) == 0 {
		c.Feeds = defaultFeeds()
	}
	if len(c.Channels) == 0 {
		c.Channels = defaultChannels()
	}
	for i := range c.Feeds {
		if c.Feeds[i].Weight == 0 {
			c.Feeds[i].Weight = 1.0
		}
	}

	if c.Windows.RecentHours == 0 {
		c.Windows.RecentHours = 60
	}
	if c.Windows.VideoHours == 0 {
		c.Windows.VideoHours = 168
	}
	if c.Windows.WeeklyHours == 0 {
		c.Windows.WeeklyHours = 168
	}

	if c.Collect.Timeout == 0 {
		c.Collect.Timeout = 15 * time.Second
	}
	if c.Collect.Retries == 0 {
		c.Collect.Retries = 3
	}
	if c.Collect.Delay == 0 {
		c.Collect.Delay = 500 * time.Millisecond
	}
	if c.Collect.PerFeedLimit == 0 {
		c.Collect.PerFeedLimit = 20
	}
	if c.Collect.UserAgent == "" {
		c.Collect.UserAgent = "Gridwire/1.0"
	}

	if c.Enrich.MaxItems == 0 {
		c.Enrich.MaxItems = 40
	}
	if c.Enrich.Workers == 0 {
		c.Enrich.Workers = 5
	}
	if c.Enrich.Delay == 0 {
		c.Enrich.Delay = 300 * time.Millisecond
	}
	if c.Enrich.Timeout == 0 {
		c.Enrich.Timeout = 10 * time.Second
	}

	if c.Archive.DSN == "" {
		c.Archive.DSN = "file:gridwire.db?cache=shared&mode=rwc"
	}
	if c.Archive.RetentionDays == 0 {
		c.Archive.RetentionDays = 400
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "data"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if len(cfg.Feeds) == 0 && len(cfg.Channels) == 0 {
		return fmt.Errorf("at least one feed or channel is required")
	}
	for _, f := range cfg.Feeds {
		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("feed url is required")
		}
		if f.Weight < 0 || f.Weight > 1 {
			return fmt.Errorf("feed %s: weight must be in (0,1]", f.URL)
		}
	}
	for _, ch := range cfg.Channels {
		if strings.TrimSpace(ch.ID) == "" {
			return fmt.Errorf("channel id is required")
		}
	}
	for _, p := range cfg.Collect.Proxies {
		if !strings.Contains(p, "{url}") {
			return fmt.Errorf("proxy template %q: missing {url} placeholder", p)
		}
	}
	if cfg.Collect.Timeout < time.Second {
		return fmt.Errorf("collect timeout must be at least 1 second")
	}
	if cfg.Windows.RecentHours < 1 || cfg.Windows.VideoHours < 1 || cfg.Windows.WeeklyHours < 1 {
		return fmt.Errorf("window thresholds must be at least 1 hour")
	}
	if cfg.Enrich.Workers < 1 {
		return fmt.Errorf("enrich workers must be at least 1")
	}
	return nil
}

// Sources converts the feed configs to domain feeds
func (c *Config) Sources() []domain.Feed {
	feeds := make([]domain.Feed, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		feeds = append(feeds, domain.Feed{URL: f.URL, Name: f.Name, Weight: f.Weight})
	}
	return feeds
}

// ChannelSources converts the channel configs to domain channels
func (c *Config) ChannelSources() []domain.Channel {
	channels := make([]domain.Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		name := ch.Name
		if name == "" {
			name = ch.ID
		}
		channels = append(channels, domain.Channel{
			ID:   ch.ID,
			Name: name,
			Policy: domain.Policy{
				AllowSoftMatch:  ch.Policy.AllowSoft,
				RequireCoreTerm: ch.Policy.RequireCore,
			},
		})
	}
	return channels
}
