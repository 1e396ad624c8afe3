// Package pipeline orchestrates the ingestion-normalization-ranking run:
// feed collection, relevance filtering, deduplication, freshness scoring,
// image enrichment and window assembly.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/oayrilmaz/gridwire/pkg/classify"
	"github.com/oayrilmaz/gridwire/pkg/domain"
	"github.com/oayrilmaz/gridwire/pkg/feed"
)

// Fetcher retrieves a URL with retry/proxy handling
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body []byte, contentType string, err error)
}

// Enricher fills missing images on items, joining all workers before return
type Enricher interface {
	Enrich(ctx context.Context, items []*domain.Item, maxItems int) int
}

// Archiver persists items across runs
type Archiver interface {
	Store(ctx context.Context, items []domain.Item) error
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// Params holds everything a pipeline run needs; there is no process-wide
// state, every run starts from empty collections
type Params struct {
	Feeds    []domain.Feed
	Channels []domain.Channel

	Fetcher  Fetcher
	Enricher Enricher
	Archiver Archiver // optional, nil disables archiving

	Windows      Windows
	PerFeedLimit int
	PerSourceMax int
	MaxEnrich    int
	Delay        time.Duration // politeness delay between feed fetches
	Blacklist    []string      // publisher domains to drop
	Retention    time.Duration // archive retention, used with Archiver

	Now func() time.Time // injectable clock, defaults to time.Now
}

// Pipeline is a single-run batch processor
type Pipeline struct {
	Params
	normalizer *feed.Normalizer
	blacklist  map[string]struct{}
}

// New creates a pipeline from explicit parameters
func New(p Params) *Pipeline {
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.PerFeedLimit <= 0 {
		p.PerFeedLimit = 20
	}
	blacklist := make(map[string]struct{}, len(p.Blacklist))
	for _, d := range p.Blacklist {
		blacklist[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return &Pipeline{
		Params:     p,
		normalizer: feed.NewNormalizerWithClock(p.Now),
		blacklist:  blacklist,
	}
}

// Result is the output of one run
type Result struct {
	Recent     []domain.Item
	Weekly     []domain.Item
	Shortlinks map[string]domain.ShareRecord
	Updated    time.Time
}

// Run executes the full pipeline. Per-source failures are logged and
// skipped - a single bad upstream never blocks the rest - so Run returns a
// valid (possibly empty) result even when every source fails.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	now := p.Now()

	items := p.collectFeeds(ctx)
	items = append(items, p.collectChannels(ctx)...)
	lgr.Printf("[INFO] collected %d items from %d feeds and %d channels",
		len(items), len(p.Feeds), len(p.Channels))

	items = Dedupe(items)
	Score(items, now)

	if p.Enricher != nil {
		ptrs := make([]*domain.Item, len(items))
		for i := range items {
			ptrs[i] = &items[i]
		}
		enriched := p.Enricher.Enrich(ctx, ptrs, p.MaxEnrich)
		lgr.Printf("[INFO] enriched %d items with images", enriched)
	}

	recent := p.Windows.Recent(items, now, p.PerSourceMax)
	weekly := p.Windows.WeeklyView(items, now)
	shortlinks := AssignShareIDs(recent)

	p.archive(ctx, items, now)

	lgr.Printf("[INFO] run complete: %d recent, %d weekly, %d shortlinks",
		len(recent), len(weekly), len(shortlinks))

	return &Result{Recent: recent, Weekly: weekly, Shortlinks: shortlinks, Updated: now}, nil
}

// collectFeeds fetches and parses the article feeds one at a time with a
// politeness delay between requests
func (p *Pipeline) collectFeeds(ctx context.Context) []domain.Item {
	var items []domain.Item
	for i, src := range p.Feeds {
		if i > 0 {
			p.pause(ctx)
		}
		if ctx.Err() != nil {
			break
		}

		body, contentType, err := p.Fetcher.Fetch(ctx, src.URL)
		if err != nil {
			lgr.Printf("[WARN] feed %s failed: %v", src.URL, err)
			continue
		}

		kind := feed.Detect(body, contentType)
		raws, err := feed.Parse(body, kind)
		if err != nil {
			lgr.Printf("[WARN] feed %s: %v", src.URL, err)
			continue
		}
		if len(raws) > p.PerFeedLimit {
			raws = raws[:p.PerFeedLimit]
		}

		count := 0
		for _, raw := range raws {
			item := p.normalizer.Normalize(raw, domain.TypeArticle)
			if item.URL == "" && item.Title == "" {
				continue
			}
			if p.blacklisted(item.Publisher) {
				continue
			}
			item.Category = classify.Category(item.Title, item.URL, item.Type)
			if src.Weight > 0 {
				item.Weight = src.Weight
			}
			items = append(items, item)
			count++
		}
		lgr.Printf("[DEBUG] feed %s: %d items (%s)", src.URL, count, kind)
	}
	return items
}

// collectChannels fetches each channel's Atom feed and keeps only videos
// the channel policy accepts
func (p *Pipeline) collectChannels(ctx context.Context) []domain.Item {
	var items []domain.Item
	for i, ch := range p.Channels {
		if i > 0 {
			p.pause(ctx)
		}
		if ctx.Err() != nil {
			break
		}

		body, _, err := p.Fetcher.Fetch(ctx, ch.FeedURL())
		if err != nil {
			lgr.Printf("[WARN] channel %s (%s) failed: %v", ch.Name, ch.ID, err)
			continue
		}

		raws, err := feed.ParseYouTube(body, ch.Name)
		if err != nil {
			lgr.Printf("[WARN] channel %s: %v", ch.Name, err)
			continue
		}

		kept := 0
		for _, raw := range raws {
			blob := classify.Blob(raw.Title, raw.Description)
			if !classify.Relevant(blob, ch.Policy) {
				continue
			}
			item := p.normalizer.Normalize(raw, domain.TypeVideo)
			item.Category = classify.Category(item.Title, item.URL, item.Type)
			items = append(items, item)
			kept++
		}
		lgr.Printf("[DEBUG] channel %s: kept %d of %d videos", ch.Name, kept, len(raws))
	}
	return items
}

// archive stores the run's items and prunes expired rows; failures are
// logged, archiving never blocks publication
func (p *Pipeline) archive(ctx context.Context, items []domain.Item, now time.Time) {
	if p.Archiver == nil || len(items) == 0 {
		return
	}
	if err := p.Archiver.Store(ctx, items); err != nil {
		lgr.Printf("[WARN] archive store failed: %v", err)
		return
	}
	if p.Retention > 0 {
		pruned, err := p.Archiver.Prune(ctx, now.Add(-p.Retention))
		if err != nil {
			lgr.Printf("[WARN] archive prune failed: %v", err)
			return
		}
		if pruned > 0 {
			lgr.Printf("[DEBUG] pruned %d archived items", pruned)
		}
	}
}

func (p *Pipeline) blacklisted(publisher string) bool {
	_, ok := p.blacklist[strings.ToLower(publisher)]
	return ok
}

func (p *Pipeline) pause(ctx context.Context) {
	if p.Delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(p.Delay):
	}
}
