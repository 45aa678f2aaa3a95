package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yzhyun/NextPicker/internal/cache"
	"github.com/yzhyun/NextPicker/internal/classifier"
	"github.com/yzhyun/NextPicker/internal/config"
	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/feed"
	"github.com/yzhyun/NextPicker/internal/fetch"
	"github.com/yzhyun/NextPicker/internal/normalize"
	"github.com/yzhyun/NextPicker/internal/notify"
	"github.com/yzhyun/NextPicker/internal/publisher"
	"github.com/yzhyun/NextPicker/internal/service"
	"github.com/yzhyun/NextPicker/internal/storage/sqlstore"
)

// app holds every wired component. close releases them in reverse order.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *sqlx.DB
	memory    *cache.Memory
	ingest    *service.IngestService
	news      *service.NewsService
	runner    *service.Runner
	locations map[domain.Country]*time.Location

	closers []func() error
}

// loadConfig reads the config file and builds the logger it asks for.
func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, setupLogger(cfg.LogLevel), nil
}

// openDB connects and applies pending migrations.
func openDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := sqlstore.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("connected to database", "driver", cfg.Database.Driver)
	return db, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	db, err := openDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	articles := sqlstore.NewArticleStore(db)
	feeds := sqlstore.NewFeedStatusStore(db)
	txManager := sqlstore.NewTransactionManager(db)

	c, err := a.buildCache(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		pub = rabbitMQ
		a.closers = append(a.closers, rabbitMQ.Close)
	}

	var sink notify.Sink = notify.Nop{}
	if cfg.Slack.Enabled {
		sink = notify.NewSlack(notify.SlackConfig{
			Enabled:  true,
			BotToken: cfg.Slack.BotToken,
			Channels: cfg.Slack.Channels,
			APIURL:   cfg.Slack.APIURL,
			Timeout:  cfg.Slack.Timeout,
		}, logger)
	}

	countries, locations, err := countryFeeds(cfg)
	if err != nil {
		a.close()
		return nil, err
	}
	a.locations = locations

	fetcher := fetch.New(fetch.Config{
		Timeout:        cfg.Fetch.Timeout,
		MaxConcurrent:  cfg.Fetch.MaxConcurrent,
		PerHostLimit:   cfg.Fetch.PerHostLimit,
		MaxBodyBytes:   cfg.Fetch.MaxBodyBytes,
		UserAgent:      cfg.Fetch.UserAgent,
		AcceptLanguage: cfg.Fetch.AcceptLanguage,
	}, logger)

	normalizer := normalize.New(normalize.Config{
		TitleMaxLen:   cfg.Ingest.TitleMaxLen,
		SummaryMaxLen: cfg.Ingest.SummaryMaxLen,
	}, classifier.New())

	a.ingest = service.NewIngestService(
		fetcher,
		articles,
		feeds,
		txManager,
		pub,
		c,
		sink,
		normalizer,
		feed.DefaultRegistry(),
		logger,
		service.IngestConfig{
			WindowDays:        cfg.Ingest.WindowDays,
			MaxEntriesPerFeed: cfg.Fetch.MaxEntriesPerFeed,
			Countries:         countries,
		},
	)
	a.news = service.NewNewsService(articles, feeds, c, sink, cfg.Cache.TTL, logger)
	a.runner = service.NewRunner(a.ingest, cfg.Schedule.RunTimeout, logger)

	return a, nil
}

func (a *app) buildCache(ctx context.Context) (service.Cache, error) {
	switch a.cfg.Cache.Backend {
	case "redis":
		client, err := cache.NewRedisClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		r := cache.NewRedis(client, a.cfg.Redis.Prefix)
		a.closers = append(a.closers, r.Close)
		a.logger.Info("using redis cache", "addr", a.cfg.Redis.Addr)
		return r, nil
	default:
		a.memory = cache.NewMemory()
		return a.memory, nil
	}
}

func countryFeeds(cfg *config.Config) ([]service.CountryFeeds, map[domain.Country]*time.Location, error) {
	countries := make([]service.CountryFeeds, 0, len(domain.Countries))
	locations := make(map[domain.Country]*time.Location, len(domain.Countries))

	for _, country := range domain.Countries {
		cc, ok := cfg.Countries[country]
		if !ok {
			continue
		}
		loc, err := cc.Location()
		if err != nil {
			return nil, nil, fmt.Errorf("country %s: %w", country, err)
		}
		locations[country] = loc

		feeds := make([]service.Feed, len(cc.Feeds))
		for i, f := range cc.Feeds {
			feeds[i] = service.Feed{Name: f.Name, URL: f.URL}
		}
		countries = append(countries, service.CountryFeeds{
			Country:  country,
			Location: loc,
			TZLabel:  cc.TZLabel,
			Feeds:    feeds,
		})
	}
	return countries, locations, nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
