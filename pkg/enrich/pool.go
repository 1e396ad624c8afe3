package enrich

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// Extractor returns a representative image URL for a page
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// Pool enriches items missing a thumbnail with a bounded number of
// concurrent page fetches. Failures are swallowed per item - the
// presentation layer owns the placeholder fallback.
type Pool struct {
	extractor Extractor
	workers   int
	delay     time.Duration
}

// NewPool creates an enrichment pool with the given concurrency and
// per-worker throttle delay
func NewPool(extractor Extractor, workers int, delay time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{extractor: extractor, workers: workers, delay: delay}
}

// Enrich fills the image field of article items that lack one, up to
// maxItems targets per run. It blocks until every worker has finished, so
// callers can safely read the items afterwards. Returns the number of
// items that received an image.
func (p *Pool) Enrich(ctx context.Context, items []*domain.Item, maxItems int) int {
	var candidates []*domain.Item
	for _, item := range items {
		if item.Type != domain.TypeArticle || item.Image != "" || item.URL == "" {
			continue
		}
		candidates = append(candidates, item)
		if maxItems > 0 && len(candidates) >= maxItems {
			break
		}
	}
	if len(candidates) == 0 {
		return 0
	}

	lgr.Printf("[INFO] enriching %d items with %d workers", len(candidates), p.workers)

	var enriched atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, item := range candidates {
		g.Go(func() error {
			img, err := p.extractor.Extract(ctx, item.URL)
			if err != nil {
				lgr.Printf("[DEBUG] no image for %s: %v", item.URL, err)
			} else if img != "" {
				item.Image = img
				enriched.Add(1)
			}

			// throttle upstream load
			select {
			case <-ctx.Done():
			case <-time.After(p.delay):
			}
			return nil
		})
	}

	// full barrier: windowing must not start until every worker joined
	_ = g.Wait()

	return int(enriched.Load())
}
