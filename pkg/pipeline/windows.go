package pipeline

import (
	"sort"
	"time"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// Windows holds the per-view age thresholds. Articles and videos get
// independent recent thresholds: article feeds are high-frequency with a
// short shelf life, video feeds are low-frequency with a longer one, so a
// single window would starve one type.
type Windows struct {
	Article time.Duration // recent threshold for articles
	Video   time.Duration // recent threshold for videos
	Weekly  time.Duration // uniform weekly threshold
}

// Recent returns the type-aware recent view, sorted by published desc with
// score desc as tiebreak. perSourceMax > 0 caps items per publisher so no
// single source dominates.
func (w Windows) Recent(items []domain.Item, now time.Time, perSourceMax int) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		threshold := w.Article
		if item.Type == domain.TypeVideo {
			threshold = w.Video
		}
		if now.Sub(item.Published) <= threshold {
			out = append(out, item)
		}
	}
	sortItems(out)

	if perSourceMax > 0 {
		out = capPerSource(out, perSourceMax)
	}
	return out
}

// WeeklyView returns the uniform weekly view regardless of type, sorted the
// same way as the recent view
func (w Windows) WeeklyView(items []domain.Item, now time.Time) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if now.Sub(item.Published) <= w.Weekly {
			out = append(out, item)
		}
	}
	sortItems(out)
	return out
}

func sortItems(items []domain.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Published.Equal(items[j].Published) {
			return items[i].Published.After(items[j].Published)
		}
		return items[i].Score > items[j].Score
	})
}

func capPerSource(items []domain.Item, max int) []domain.Item {
	counts := make(map[string]int, len(items))
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if counts[item.Publisher] >= max {
			continue
		}
		counts[item.Publisher]++
		out = append(out, item)
	}
	return out
}
