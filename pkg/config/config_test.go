package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridwire.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err, "missing config file falls back to defaults")

	assert.NotEmpty(t, cfg.Feeds, "built-in trade press list")
	assert.NotEmpty(t, cfg.Channels, "built-in news-desk list")
	assert.Equal(t, 60, cfg.Windows.RecentHours)
	assert.Equal(t, 168, cfg.Windows.VideoHours)
	assert.Equal(t, 168, cfg.Windows.WeeklyHours)
	assert.Equal(t, 15*time.Second, cfg.Collect.Timeout)
	assert.Equal(t, 3, cfg.Collect.Retries)
	assert.Equal(t, 20, cfg.Collect.PerFeedLimit)
	assert.Equal(t, 0, cfg.Collect.PerSourceMax, "per-source cap disabled by default")
	assert.Equal(t, "Gridwire/1.0", cfg.Collect.UserAgent)
	assert.Equal(t, 40, cfg.Enrich.MaxItems)
	assert.Equal(t, 5, cfg.Enrich.Workers)
	assert.Equal(t, "file:gridwire.db?cache=shared&mode=rwc", cfg.Archive.DSN)
	assert.Equal(t, 400, cfg.Archive.RetentionDays)
	assert.Equal(t, "data", cfg.Output.Dir)

	for _, f := range cfg.Feeds {
		assert.NotEmpty(t, f.URL)
		assert.Greater(t, f.Weight, 0.0)
		assert.LessOrEqual(t, f.Weight, 1.0)
	}
	for _, ch := range cfg.Channels {
		assert.NotEmpty(t, ch.ID)
		assert.True(t, ch.Policy.RequireCore, "news desks require a core term")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - url: https://example.com/rss
    name: Example Wire
    weight: 0.7
channels:
  - id: UCtest123
    name: Test Desk
    policy:
      allow_soft: true
      require_core: true
windows:
  recent_hours: 48
collect:
  timeout: 5s
  proxies:
    - "https://relay.example.com/get?target={url}"
  blacklist:
    - spam.example.com
output:
  dir: out
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Feeds, 1, "explicit feeds replace the built-in list")
	assert.Equal(t, "Example Wire", cfg.Feeds[0].Name)
	assert.InDelta(t, 0.7, cfg.Feeds[0].Weight, 0.001)
	assert.Equal(t, 48, cfg.Windows.RecentHours)
	assert.Equal(t, 168, cfg.Windows.VideoHours, "unset fields keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Collect.Timeout)
	assert.Equal(t, []string{"spam.example.com"}, cfg.Collect.Blacklist)
	assert.Equal(t, "out", cfg.Output.Dir)

	channels := cfg.ChannelSources()
	require.Len(t, channels, 1)
	assert.Equal(t, "Test Desk", channels[0].Name)
	assert.True(t, channels[0].Policy.AllowSoftMatch)
	assert.True(t, channels[0].Policy.RequireCoreTerm)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_FEED_URL", "https://example.com/rss")

	path := writeConfig(t, `
feeds:
  - url: ${TEST_FEED_URL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, "https://example.com/rss", cfg.Feeds[0].URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		want string
	}{
		{
			name: "bad yaml",
			yml:  "feeds: [",
			want: "parse config",
		},
		{
			name: "feed without url",
			yml:  "feeds:\n  - name: nameless\n",
			want: "feed url is required",
		},
		{
			name: "weight out of range",
			yml:  "feeds:\n  - url: https://example.com/rss\n    weight: 1.5\n",
			want: "weight must be in (0,1]",
		},
		{
			name: "channel without id",
			yml:  "channels:\n  - name: nameless\nfeeds:\n  - url: https://example.com/rss\n",
			want: "channel id is required",
		},
		{
			name: "proxy without placeholder",
			yml:  "collect:\n  proxies:\n    - https://relay.example.com/get\n",
			want: "missing {url} placeholder",
		},
		{
			name: "timeout too short",
			yml:  "collect:\n  timeout: 100ms\n",
			want: "timeout must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Sources(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	feeds := cfg.Sources()
	assert.Len(t, feeds, len(cfg.Feeds))
	channels := cfg.ChannelSources()
	assert.Len(t, channels, len(cfg.Channels))
	for _, ch := range channels {
		assert.NotEmpty(t, ch.Name, "name falls back to the channel id")
		assert.Contains(t, ch.FeedURL(), ch.ID)
	}
}
