package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/fetch"
)

type ArticleStore interface {
	Upsert(ctx context.Context, article *domain.Article) (domain.UpsertOutcome, error)
	QueryRecent(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error)
	CountByCountry(ctx context.Context) (map[domain.Country]int, error)
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

type FeedStatusStore interface {
	Record(ctx context.Context, feedURL string, success bool, entries int, errMsg string) error
	List(ctx context.Context) ([]domain.FeedStatus, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, article *domain.Article, isNew bool) error
	Close() error
}

type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []fetch.Result
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type Notifier interface {
	Send(ctx context.Context, text string) bool
}
