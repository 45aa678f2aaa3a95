package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/service"
)

type NewsReader interface {
	GetLatest(ctx context.Context, days map[domain.Country]int, limit int) (map[domain.Country][]domain.Article, error)
	GetRecent(ctx context.Context, country string, days, limit int) ([]domain.Article, error)
	GetBySection(ctx context.Context, section, country string, days, limit int) ([]domain.Article, error)
	GetEconomyPolitics(ctx context.Context, days, limit int) ([]domain.Article, error)
	AnalysisRows(ctx context.Context, country string, days, limit int) ([]string, error)
	FeedHealth(ctx context.Context) (*service.FeedHealth, error)
	NotifyEconomyPolitics(ctx context.Context, days, limit int) (*service.Digest, bool, error)
	Purge(ctx context.Context, days int) (int64, error)
}

type RefreshRunner interface {
	Start(ctx context.Context) *service.Run
	Current() *service.Run
	Last() *service.Run
}
