// Package collect merges normalized articles into a deduplicated, windowed,
// newest-first list.
package collect

import (
	"sort"
	"time"

	"github.com/yzhyun/NextPicker/internal/domain"
)

// Collect keeps the first article per ID, drops anything published before
// now minus days, sorts newest first (stable) and caps the result at limit
// when limit > 0.
func Collect(articles []domain.Article, days, limit int, now time.Time) ([]domain.Article, domain.CollectionStats) {
	cutoff := now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
	stats := domain.CollectionStats{
		Fetched: len(articles),
		Cutoff:  cutoff,
	}

	seen := make(map[string]struct{}, len(articles))
	unique := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		unique = append(unique, a)
	}
	stats.Unique = len(unique)

	kept := unique[:0]
	for _, a := range unique {
		if !a.Published.Before(cutoff) {
			kept = append(kept, a)
		}
	}
	stats.InWindow = len(kept)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Published.After(kept[j].Published)
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	stats.Returned = len(kept)

	return kept, stats
}
