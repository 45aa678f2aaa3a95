// Package normalize converts parsed feed entries into canonical articles.
package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/yzhyun/NextPicker/internal/classifier"
	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/feed"
)

// ErrNoLink is returned for entries without any absolute link.
var ErrNoLink = errors.New("entry has no usable link")

var (
	bulletinPrefix = regexp.MustCompile(`(?i)^\s*[\[\(](속보|영상|종합|단독|포토|르포|Q&A|인터뷰)[\]\)]\s*`)
	edgeMarks      = regexp.MustCompile(`^[\-–—~\s]+|[\-–—~\s]+$`)
	titleTail      = regexp.MustCompile(`\s[|/]\s`)
	summaryNoise   = regexp.MustCompile(`기사원문\s*보기.*$|자세히\s*보기.*$|앱에서\s*보기.*$|네이버\s*뉴스.*$|ⓒ.*?무단전재.*$|사진\s*=\s*.*$|▶.*$|■.*$|※.*$|더보기.*$`)
	emptyBrackets  = regexp.MustCompile(`(\(\s*\)|\[\s*\]|\{\s*\})$`)
)

// zoneOffsets covers abbreviations common in US and KR feeds. Go only knows
// the abbreviations of the location a string is parsed in and reads any
// other as a zero offset.
var zoneOffsets = map[string]int{
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
	"KST": 9 * 3600,
	"JST": 9 * 3600,
}

var utcNames = map[string]bool{"": true, "UTC": true, "GMT": true, "UT": true, "Z": true}

// localLayouts are dotted date forms used by Korean publishers. They are
// tried before dateparse, which rejects or misreads them.
var localLayouts = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02. 15:04:05",
	"2006.01.02. 15:04",
	"2006.01.02",
	"2006.1.2 15:04",
}

type Config struct {
	TitleMaxLen   int
	SummaryMaxLen int
}

// FeedContext is what the caller knows about the feed an entry came from.
// Country and TZLabel are copied onto the article verbatim; Location is
// assumed for timestamps that carry no zone.
type FeedContext struct {
	FeedURL  string
	BaseURL  string
	Source   string
	Country  domain.Country
	Location *time.Location
	TZLabel  string
}

type Normalizer struct {
	cfg        Config
	classifier *classifier.Classifier
}

func New(cfg Config, c *classifier.Classifier) *Normalizer {
	if c == nil {
		c = classifier.New()
	}
	return &Normalizer{cfg: cfg, classifier: c}
}

// Normalize builds one article from one entry. now stamps CreatedAt and
// UpdatedAt and is the last resort for Published.
func (n *Normalizer) Normalize(e feed.Entry, s feed.Strategy, fc FeedContext, now time.Time) (domain.Article, error) {
	base := fc.BaseURL
	if base == "" {
		base = fc.FeedURL
	}

	link := s.ExtractLink(e, base)
	if link == "" {
		return domain.Article{}, ErrNoLink
	}

	title := CleanTitle(s.NormalizeTitle(e, link), n.cfg.TitleMaxLen)
	if title == "" {
		title = link
	}

	summary := s.ExtractSummaryFields(e, base, n.cfg.SummaryMaxLen)
	text := cleanSummary(summary.Text)

	now = now.UTC()
	return domain.Article{
		ID:        ArticleID(link, title),
		Title:     title,
		URL:       link,
		Source:    fc.Source,
		Published: ResolvePublished(e, fc.Location, now),
		Summary:   text,
		Section:   n.classifier.Classify(title, text),
		Country:   fc.Country,
		LocalTZ:   fc.TZLabel,
		Related:   summary.Related,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ResolvePublished picks the publish time in UTC. String dates win and are
// read in loc when they carry no zone; the parser's structured times are
// taken as UTC; now is the fallback.
func ResolvePublished(e feed.Entry, loc *time.Location, now time.Time) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	for _, raw := range []string{e.Published, e.Updated, e.DCDate} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
				return t.UTC()
			}
		}
		if t, err := dateparse.ParseIn(raw, loc); err == nil {
			return fixZone(t, loc).UTC()
		}
	}

	for _, t := range []*time.Time{e.PublishedParsed, e.UpdatedParsed} {
		if t != nil && !t.IsZero() {
			return t.UTC()
		}
	}

	return now.UTC()
}

// fixZone repairs times whose zone abbreviation loc does not define. Known
// abbreviations get their real offset; unknown ones are read as wall time
// in loc.
func fixZone(t time.Time, loc *time.Location) time.Time {
	name, offset := t.Zone()
	if offset != 0 || utcNames[strings.ToUpper(name)] {
		return t
	}
	zone := loc
	if off, ok := zoneOffsets[strings.ToUpper(name)]; ok {
		zone = time.FixedZone(name, off)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// ArticleID is the md5 hex digest of url, or of title when url is empty.
func ArticleID(url, title string) string {
	key := strings.TrimSpace(url)
	if key == "" {
		key = strings.TrimSpace(title)
	}
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// CleanTitle strips markup, leading bulletin tags such as [속보], anything
// after a " | " or " / " separator and stray dashes, then bounds the length.
func CleanTitle(raw string, maxLen int) string {
	t := feed.CleanHTML(raw)
	for {
		stripped := bulletinPrefix.ReplaceAllString(t, "")
		if stripped == t {
			break
		}
		t = stripped
	}
	if idx := titleTail.FindStringIndex(t); idx != nil {
		t = t[:idx[0]]
	}
	t = edgeMarks.ReplaceAllString(t, "")
	return feed.Truncate(t, maxLen)
}

func cleanSummary(s string) string {
	s = strings.TrimSpace(summaryNoise.ReplaceAllString(s, ""))
	return strings.TrimSpace(emptyBrackets.ReplaceAllString(s, ""))
}
