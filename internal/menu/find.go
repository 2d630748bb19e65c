package menu

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Find returns the enabled row whose label best matches query, or -1. Exact
// and prefix matches win over fuzzy ones.
func (m *Menu) Find(query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return -1
	}
	labels := m.items.labels()
	enabled := func(i int) bool { return m.items.list[i].Enabled }

	for i, label := range labels {
		if enabled(i) && strings.EqualFold(label, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, label := range labels {
		if enabled(i) && strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
	}

	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, labels) {
		if rank.OriginalIndex < 0 || rank.OriginalIndex >= len(labels) || !enabled(rank.OriginalIndex) {
			continue
		}
		if best < 0 || rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	return best
}
