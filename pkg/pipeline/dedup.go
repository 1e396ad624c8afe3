package pipeline

import (
	"strings"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// Dedupe collapses items sharing an identity key, keeping the first seen.
// The key is the trimmed URL; items without one fall back to
// title|publisher. Runs after normalization so trimming is consistent,
// and before scoring so each logical item is scored once.
func Dedupe(items []domain.Item) []domain.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		key := dedupeKey(&item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func dedupeKey(item *domain.Item) string {
	if key := strings.TrimSpace(item.URL); key != "" {
		return key
	}
	return item.Title + "|" + item.Publisher
}
