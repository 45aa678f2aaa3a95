package feed

import (
	"net/url"
	"strings"

	"github.com/yzhyun/NextPicker/internal/domain"
)

// Summary is the cleaned excerpt of an entry together with its source HTML
// and any related coverage the feed embedded in it.
type Summary struct {
	Text    string
	HTML    string
	Related []domain.RelatedItem
}

// Strategy captures the quirks of one family of feeds.
type Strategy interface {
	Name() string
	ExtractLink(e Entry, base string) string
	NormalizeTitle(e Entry, link string) string
	ExtractSummaryFields(e Entry, base string, maxLen int) Summary
}

type registration struct {
	host     string
	strategy Strategy
}

// Registry maps host substrings to strategies. The first registered match
// wins; feeds matching nothing get the fallback.
type Registry struct {
	entries  []registration
	fallback Strategy
}

// NewRegistry builds an empty registry that falls back to Generic.
func NewRegistry() *Registry {
	return &Registry{fallback: Generic{}}
}

// DefaultRegistry knows every strategy shipped with the package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("news.google.com", GoogleNews{})
	return r
}

// Register adds a strategy for feeds whose host contains hostSubstring.
func (r *Registry) Register(hostSubstring string, s Strategy) {
	r.entries = append(r.entries, registration{
		host:     strings.ToLower(hostSubstring),
		strategy: s,
	})
}

// Lookup picks the strategy for feedURL.
func (r *Registry) Lookup(feedURL string) Strategy {
	var host string
	if u, err := url.Parse(strings.TrimSpace(feedURL)); err == nil {
		host = strings.ToLower(u.Host)
	}
	if host != "" {
		for _, reg := range r.entries {
			if strings.Contains(host, reg.host) {
				return reg.strategy
			}
		}
	}
	return r.fallback
}
