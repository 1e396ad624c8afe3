package pipeline

import (
	"time"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// Score assigns freshness scores: 10 / max(1, ageHours), multiplied by the
// item's source-trust weight. Scores are strictly positive, finite, and
// non-increasing in item age for a fixed weight.
func Score(items []domain.Item, now time.Time) {
	for i := range items {
		items[i].Score = freshness(&items[i], now)
	}
}

func freshness(item *domain.Item, now time.Time) float64 {
	ageHours := now.Sub(item.Published).Hours()
	if ageHours < 1 {
		ageHours = 1
	}
	weight := item.Weight
	if weight <= 0 || weight > 1 {
		weight = 1
	}
	return 10 / ageHours * weight
}
