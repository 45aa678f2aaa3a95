package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yzhyun/NextPicker/internal/collect"
	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/feed"
	"github.com/yzhyun/NextPicker/internal/normalize"
	"github.com/yzhyun/NextPicker/internal/notify"
)

type Feed struct {
	Name string
	URL  string
}

// CountryFeeds is the feed list of one locale and the zone its naive
// timestamps are read in.
type CountryFeeds struct {
	Country  domain.Country
	Location *time.Location
	TZLabel  string
	Feeds    []Feed
}

type IngestConfig struct {
	WindowDays        int
	MaxEntriesPerFeed int
	Countries         []CountryFeeds
}

// IngestService runs the fetch, parse, normalize, collect and store
// pipeline for every configured locale. Publisher, cache and notifier are
// optional.
type IngestService struct {
	fetcher    Fetcher
	articles   ArticleStore
	feeds      FeedStatusStore
	txManager  TransactionManager
	publisher  Publisher
	cache      Cache
	notifier   Notifier
	normalizer *normalize.Normalizer
	registry   *feed.Registry
	logger     *slog.Logger
	config     IngestConfig
	countries  map[domain.Country]CountryFeeds
	now        func() time.Time
}

func NewIngestService(
	fetcher Fetcher,
	articles ArticleStore,
	feeds FeedStatusStore,
	txManager TransactionManager,
	publisher Publisher,
	cache Cache,
	notifier Notifier,
	normalizer *normalize.Normalizer,
	registry *feed.Registry,
	logger *slog.Logger,
	cfg IngestConfig,
) *IngestService {
	if registry == nil {
		registry = feed.DefaultRegistry()
	}
	if normalizer == nil {
		normalizer = normalize.New(normalize.Config{}, nil)
	}
	countries := make(map[domain.Country]CountryFeeds, len(cfg.Countries))
	for _, cf := range cfg.Countries {
		if cf.Location == nil {
			cf.Location = time.UTC
		}
		countries[cf.Country] = cf
	}

	return &IngestService{
		fetcher:    fetcher,
		articles:   articles,
		feeds:      feeds,
		txManager:  txManager,
		publisher:  publisher,
		cache:      cache,
		notifier:   notifier,
		normalizer: normalizer,
		registry:   registry,
		logger:     logger.With("component", "ingest"),
		config:     cfg,
		countries:  countries,
		now:        time.Now,
	}
}

// WithClock replaces the wall clock used for timestamps and the window cutoff.
func (s *IngestService) WithClock(now func() time.Time) *IngestService {
	s.now = now
	return s
}

// RefreshCountry ingests one locale. Feed failures and storage failures are
// reported in the result, never returned.
func (s *IngestService) RefreshCountry(ctx context.Context, country domain.Country) domain.CountryRefresh {
	stats := s.refreshCountry(ctx, country, s.logger)
	if stats.Inserted > 0 || stats.Updated > 0 {
		s.invalidate(ctx)
	}
	return stats
}

// RefreshAll ingests every configured locale concurrently, then invalidates
// cached reads and posts a summary.
func (s *IngestService) RefreshAll(ctx context.Context) domain.RefreshResult {
	runID := runIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	result := domain.RefreshResult{
		RunID:     runID,
		StartedAt: s.now().UTC(),
		Countries: make(map[domain.Country]*domain.CountryRefresh, len(s.config.Countries)),
	}
	logger := s.logger.With("run_id", result.RunID)
	logger.Info("starting refresh", "countries", len(s.config.Countries))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, cf := range s.config.Countries {
		country := cf.Country
		g.Go(func() error {
			stats := s.refreshCountry(ctx, country, logger)
			mu.Lock()
			result.Countries[country] = &stats
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	result.Duration = s.now().Sub(result.StartedAt)

	if result.Changed() {
		s.invalidate(ctx)
	}
	if s.notifier != nil {
		s.notifier.Send(ctx, notify.RefreshSummary(result))
	}

	logger.Info("refresh completed",
		"inserted", result.Inserted(),
		"duration", result.Duration,
	)

	return result
}

func (s *IngestService) refreshCountry(ctx context.Context, country domain.Country, logger *slog.Logger) domain.CountryRefresh {
	start := s.now()
	stats := domain.CountryRefresh{Country: country}
	logger = logger.With("country", country)

	cf, ok := s.countries[country]
	if !ok || len(cf.Feeds) == 0 {
		logger.Warn("no feeds configured")
		return stats
	}

	articles := s.gather(ctx, cf, &stats, logger)

	collected, collection := collect.Collect(articles, s.config.WindowDays, 0, start)
	stats.Collection = collection
	logger.Debug("collected articles",
		"fetched", collection.Fetched,
		"unique", collection.Unique,
		"in_window", collection.InWindow,
	)

	written, err := s.store(ctx, collected, &stats)
	if err != nil {
		logger.Error("store articles failed, batch rolled back", "error", err)
		stats.StorageError = err.Error()
	} else {
		s.publish(ctx, written, &stats, logger)
	}

	stats.Duration = s.now().Sub(start)

	logger.Info("country refreshed",
		"feeds_ok", stats.FeedsOK,
		"feeds_failed", stats.FeedsFailed,
		"skipped", stats.EntriesSkipped,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats
}

// gather fetches every feed of cf and normalizes their entries in feed
// order. Each feed outcome is recorded in feed status.
func (s *IngestService) gather(ctx context.Context, cf CountryFeeds, stats *domain.CountryRefresh, logger *slog.Logger) []domain.Article {
	urls := make([]string, len(cf.Feeds))
	for i, f := range cf.Feeds {
		urls[i] = f.URL
	}

	results := s.fetcher.FetchAll(ctx, urls)

	var articles []domain.Article
	for i, res := range results {
		f := cf.Feeds[i]
		feedLogger := logger.With("feed", f.URL)

		if res.Err != nil {
			stats.FeedsFailed++
			s.record(ctx, f.URL, false, 0, res.Err.Error(), feedLogger)
			continue
		}

		doc, err := feed.Parse(res.Body, f.URL, s.config.MaxEntriesPerFeed)
		if err != nil {
			feedLogger.Warn("feed parse failed", "error", err)
			stats.FeedsFailed++
			s.record(ctx, f.URL, false, 0, err.Error(), feedLogger)
			continue
		}

		strategy := s.registry.Lookup(f.URL)
		fc := normalize.FeedContext{
			FeedURL:  f.URL,
			BaseURL:  doc.BaseURL,
			Source:   sourceName(f, doc),
			Country:  cf.Country,
			Location: cf.Location,
			TZLabel:  cf.TZLabel,
		}

		now := s.now()
		for _, e := range doc.Entries {
			a, err := s.normalizeEntry(e, strategy, fc, now)
			if err != nil {
				stats.EntriesSkipped++
				feedLogger.Warn("entry skipped", "title", e.Title, "error", err)
				continue
			}
			articles = append(articles, a)
		}

		stats.FeedsOK++
		s.record(ctx, f.URL, true, len(doc.Entries), "", feedLogger)
		feedLogger.Debug("feed parsed",
			"strategy", strategy.Name(),
			"entries", len(doc.Entries),
		)
	}

	return articles
}

func (s *IngestService) normalizeEntry(e feed.Entry, strategy feed.Strategy, fc normalize.FeedContext, now time.Time) (a domain.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize entry: panic: %v", r)
		}
	}()
	return s.normalizer.Normalize(e, strategy, fc, now)
}

func (s *IngestService) record(ctx context.Context, feedURL string, success bool, entries int, errMsg string, logger *slog.Logger) {
	if err := s.feeds.Record(ctx, feedURL, success, entries, errMsg); err != nil {
		logger.Warn("record feed status failed", "error", err)
	}
}

type writtenArticle struct {
	article domain.Article
	isNew   bool
}

// store upserts the whole batch in one transaction. Counts are only set on
// stats once the transaction commits.
func (s *IngestService) store(ctx context.Context, articles []domain.Article, stats *domain.CountryRefresh) ([]writtenArticle, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	var (
		written                      []writtenArticle
		inserted, updated, unchanged int
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		written = written[:0]
		inserted, updated, unchanged = 0, 0, 0

		for i := range articles {
			a := &articles[i]
			outcome, err := s.articles.Upsert(txCtx, a)
			if err != nil {
				return fmt.Errorf("upsert article %s: %w", a.URL, err)
			}
			switch outcome {
			case domain.UpsertInserted:
				inserted++
				written = append(written, writtenArticle{article: *a, isNew: true})
			case domain.UpsertUpdated:
				updated++
				written = append(written, writtenArticle{article: *a})
			default:
				unchanged++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Inserted, stats.Updated, stats.Unchanged = inserted, updated, unchanged
	return written, nil
}

func (s *IngestService) publish(ctx context.Context, written []writtenArticle, stats *domain.CountryRefresh, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}
	for i := range written {
		w := &written[i]
		if err := s.publisher.Publish(ctx, &w.article, w.isNew); err != nil {
			logger.Warn("publish article failed", "id", w.article.ID, "error", err)
			continue
		}
		stats.Published++
	}
}

func (s *IngestService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("clear cache failed", "error", err)
	}
}

func sourceName(f Feed, doc *feed.Document) string {
	switch {
	case f.Name != "":
		return f.Name
	case doc.Title != "":
		return doc.Title
	}
	if u, err := url.Parse(f.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return f.URL
}
