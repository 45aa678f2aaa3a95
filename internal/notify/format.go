package notify

import (
	"fmt"
	"strings"

	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/feed"
)

const digestTitleLen = 45

// RefreshSummary renders per-country ingestion counts.
func RefreshSummary(r domain.RefreshResult) string {
	var b strings.Builder
	b.WriteString("📰 *News refresh complete*\n")

	total := 0
	for _, c := range domain.Countries {
		stats, ok := r.Countries[c]
		if !ok {
			continue
		}
		total += stats.Inserted
		fmt.Fprintf(&b, "• %s: %d new, %d updated (feeds %d ok / %d failed)\n",
			c, stats.Inserted, stats.Updated, stats.FeedsOK, stats.FeedsFailed)
		if stats.StorageError != "" {
			fmt.Fprintf(&b, "  ⚠️ storage error: %s\n", stats.StorageError)
		}
	}
	fmt.Fprintf(&b, "• total new articles: %d", total)
	return b.String()
}

// EconomyPoliticsDigest groups business and politics articles by country,
// KR first, as Slack mrkdwn links.
func EconomyPoliticsDigest(articles []domain.Article) string {
	byCountry := make(map[domain.Country][]domain.Article, 2)
	for _, a := range articles {
		byCountry[a.Country] = append(byCountry[a.Country], a)
	}

	var b strings.Builder
	b.WriteString("📊 *Economy & politics digest*\n")

	for _, c := range []domain.Country{domain.CountryKR, domain.CountryUS} {
		list := byCountry[c]
		fmt.Fprintf(&b, "\n%s *%s (%d)*\n", flag(c), c, len(list))
		for i, a := range list {
			fmt.Fprintf(&b, "%d. [%s] <%s|%s>\n", i+1, a.Section, a.URL, escape(feed.Truncate(a.Title, digestTitleLen)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func flag(c domain.Country) string {
	switch c {
	case domain.CountryKR:
		return "🇰🇷"
	case domain.CountryUS:
		return "🇺🇸"
	}
	return "🏳️"
}

// escape handles the three characters Slack reserves in mrkdwn.
func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
