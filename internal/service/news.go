package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yzhyun/NextPicker/internal/cache"
	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/notify"
)

var (
	ErrInvalidCountry = errors.New("invalid country")
	ErrInvalidSection = errors.New("invalid section")
	ErrInvalidDays    = errors.New("days must be between 1 and 30")
	ErrInvalidLimit   = errors.New("limit must be between 1 and 100")
)

const (
	MinDays  = 1
	MaxDays  = 30
	MinLimit = 1
	MaxLimit = 100
)

// EconomyPoliticsSections are the sections served by the economy and
// politics views.
var EconomyPoliticsSections = []domain.Section{domain.SectionBusiness, domain.SectionPolitics}

// FeedHealth is the operational view of ingestion.
type FeedHealth struct {
	Feeds    []domain.FeedStatus    `json:"feeds"`
	Articles map[domain.Country]int `json:"articles"`
	Healthy  int                    `json:"healthy"`
	Failing  int                    `json:"failing"`
}

// Digest is the economy and politics selection sent to the notifier.
type Digest struct {
	Articles []domain.Article       `json:"articles"`
	Counts   map[domain.Country]int `json:"counts"`
	Text     string                 `json:"text"`
}

// NewsService serves reads from the store. Results are memoized for ttl and
// never wait on a refresh in progress. Cache and notifier are optional.
type NewsService struct {
	articles ArticleStore
	feeds    FeedStatusStore
	cache    Cache
	notifier Notifier
	ttl      time.Duration
	logger   *slog.Logger
}

func NewNewsService(
	articles ArticleStore,
	feeds FeedStatusStore,
	cache Cache,
	notifier Notifier,
	ttl time.Duration,
	logger *slog.Logger,
) *NewsService {
	return &NewsService{
		articles: articles,
		feeds:    feeds,
		cache:    cache,
		notifier: notifier,
		ttl:      ttl,
		logger:   logger.With("component", "news"),
	}
}

// GetRecent returns one country's newest articles.
func (s *NewsService) GetRecent(ctx context.Context, country string, days, limit int) ([]domain.Article, error) {
	c, err := parseCountry(country)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(days, limit); err != nil {
		return nil, err
	}

	return s.query(ctx, domain.ArticleQuery{Country: c, Days: days, Limit: limit})
}

// GetLatest returns the newest articles of every country, each with its own
// window.
func (s *NewsService) GetLatest(ctx context.Context, days map[domain.Country]int, limit int) (map[domain.Country][]domain.Article, error) {
	out := make(map[domain.Country][]domain.Article, len(domain.Countries))
	for _, c := range domain.Countries {
		articles, err := s.GetRecent(ctx, string(c), days[c], limit)
		if err != nil {
			return nil, err
		}
		out[c] = articles
	}
	return out, nil
}

// GetBySection filters by section and, when country is not empty, by
// country.
func (s *NewsService) GetBySection(ctx context.Context, section, country string, days, limit int) ([]domain.Article, error) {
	sec, err := domain.ParseSection(section)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSection, section)
	}

	var c domain.Country
	if strings.TrimSpace(country) != "" {
		if c, err = parseCountry(country); err != nil {
			return nil, err
		}
	}
	if err := validateWindow(days, limit); err != nil {
		return nil, err
	}

	return s.query(ctx, domain.ArticleQuery{
		Country:  c,
		Sections: []domain.Section{sec},
		Days:     days,
		Limit:    limit,
	})
}

// GetEconomyPolitics returns up to limit business or politics articles per
// country, KR first.
func (s *NewsService) GetEconomyPolitics(ctx context.Context, days, limit int) ([]domain.Article, error) {
	if err := validateWindow(days, limit); err != nil {
		return nil, err
	}

	var out []domain.Article
	for _, c := range []domain.Country{domain.CountryKR, domain.CountryUS} {
		articles, err := s.query(ctx, domain.ArticleQuery{
			Country:  c,
			Sections: EconomyPoliticsSections,
			Days:     days,
			Limit:    limit,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, articles...)
	}
	if out == nil {
		out = []domain.Article{}
	}
	return out, nil
}

func (s *NewsService) FeedHealth(ctx context.Context) (*FeedHealth, error) {
	feeds, err := s.feeds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed status: %w", err)
	}
	counts, err := s.articles.CountByCountry(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	h := &FeedHealth{Feeds: feeds, Articles: counts}
	for _, f := range feeds {
		if isFailing(f) {
			h.Failing++
		} else {
			h.Healthy++
		}
	}
	return h, nil
}

// isFailing reports whether the latest recorded attempt of a feed failed.
func isFailing(f domain.FeedStatus) bool {
	if f.LastError == nil {
		return false
	}
	return f.LastSuccess == nil || f.LastError.After(*f.LastSuccess)
}

// EconomyPoliticsDigest selects the articles and renders the notification
// text without sending it.
func (s *NewsService) EconomyPoliticsDigest(ctx context.Context, days, limit int) (*Digest, error) {
	articles, err := s.GetEconomyPolitics(ctx, days, limit)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Country]int, len(domain.Countries))
	for _, c := range domain.Countries {
		counts[c] = 0
	}
	for _, a := range articles {
		counts[a.Country]++
	}

	return &Digest{
		Articles: articles,
		Counts:   counts,
		Text:     notify.EconomyPoliticsDigest(articles),
	}, nil
}

// NotifyEconomyPolitics sends the digest. The bool reports whether the
// notifier accepted it; a missing notifier counts as not sent.
func (s *NewsService) NotifyEconomyPolitics(ctx context.Context, days, limit int) (*Digest, bool, error) {
	d, err := s.EconomyPoliticsDigest(ctx, days, limit)
	if err != nil {
		return nil, false, err
	}
	if s.notifier == nil {
		return d, false, nil
	}
	sent := s.notifier.Send(ctx, d.Text)
	if !sent {
		s.logger.Warn("economy/politics digest not delivered")
	}
	return d, sent, nil
}

// AnalysisRows renders one country's newest articles as plain text blocks
// for pasting into an external analysis tool.
func (s *NewsService) AnalysisRows(ctx context.Context, country string, days, limit int) ([]string, error) {
	articles, err := s.GetRecent(ctx, country, days, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]string, len(articles))
	for i, a := range articles {
		rows[i] = AnalysisText(a)
	}
	return rows, nil
}

// AnalysisText is the text block of one article.
func AnalysisText(a domain.Article) string {
	summary := a.Summary
	if strings.TrimSpace(summary) == "" {
		summary = "요약 없음"
	}
	section := a.Section
	if section == "" {
		section = domain.SectionGeneral
	}
	return fmt.Sprintf("제목: %s\n출처: %s\n요약: %s\n섹션: %s\n국가: %s\n---",
		a.Title, a.Source, summary, section, a.Country)
}

// Purge deletes articles published more than days ago and drops cached
// reads when anything was removed.
func (s *NewsService) Purge(ctx context.Context, days int) (int64, error) {
	if days < MinDays {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}

	n, err := s.articles.PurgeOlderThan(ctx, days)
	if err != nil {
		return 0, fmt.Errorf("purge articles: %w", err)
	}
	if n > 0 && s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn("clear cache failed", "error", err)
		}
	}

	s.logger.Info("purged articles", "days", days, "deleted", n)
	return n, nil
}

func (s *NewsService) query(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	key := queryKey(q)

	if s.cache != nil {
		var cached []domain.Article
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("cache get failed", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	articles, err := s.articles.QueryRecent(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	if articles == nil {
		articles = []domain.Article{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, articles, s.ttl); err != nil {
			s.logger.Warn("cache set failed", "key", key, "error", err)
		}
	}
	return articles, nil
}

func queryKey(q domain.ArticleQuery) string {
	sections := make([]string, len(q.Sections))
	for i, sec := range q.Sections {
		sections[i] = string(sec)
	}
	country := string(q.Country)
	if country == "" {
		country = "all"
	}
	return cache.Key("articles", country, strings.Join(sections, ","), q.Days, q.Limit)
}

func parseCountry(s string) (domain.Country, error) {
	c, err := domain.ParseCountry(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCountry, s)
	}
	return c, nil
}

func validateWindow(days, limit int) error {
	if days < MinDays || days > MaxDays {
		return fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}

// IsValidationError reports whether err stems from bad caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCountry) ||
		errors.Is(err, ErrInvalidSection) ||
		errors.Is(err, ErrInvalidDays) ||
		errors.Is(err, ErrInvalidLimit)
}
