//go:build integration

package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yzhyun/NextPicker/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Open(s.ctx, DriverPostgres, connStr)
	s.Require().NoError(err)
	s.Require().NoError(Migrate(s.ctx, db))
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM articles")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM feed_status")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func newArticle(url, title string, published time.Time) *domain.Article {
	return &domain.Article{
		ID:        "id-" + url,
		Title:     title,
		URL:       url,
		Source:    "Example",
		Published: published,
		Summary:   "summary",
		Section:   domain.SectionBusiness,
		Country:   domain.CountryUS,
		LocalTZ:   "ET",
	}
}

func (s *PostgresIntegrationSuite) TestMigrate_Idempotent() {
	s.NoError(Migrate(s.ctx, s.db))
}

func (s *PostgresIntegrationSuite) TestArticleStore_Upsert() {
	store := NewArticleStore(s.db)
	now := time.Now().UTC().Truncate(time.Second)

	outcome, err := store.Upsert(s.ctx, newArticle("https://example.com/a", "Original", now))
	s.Require().NoError(err)
	s.Equal(domain.UpsertInserted, outcome)

	outcome, err = store.Upsert(s.ctx, newArticle("https://example.com/a", "Original", now))
	s.Require().NoError(err)
	s.Equal(domain.UpsertUnchanged, outcome)

	outcome, err = store.Upsert(s.ctx, newArticle("https://example.com/a", "Updated", now))
	s.Require().NoError(err)
	s.Equal(domain.UpsertUpdated, outcome)

	stored, err := store.GetByURL(s.ctx, "https://example.com/a")
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("Updated", stored.Title)
	s.True(now.Equal(stored.Published))
}

func (s *PostgresIntegrationSuite) TestArticleStore_QueryAndPurge() {
	store := NewArticleStore(s.db)
	now := time.Now().UTC().Truncate(time.Second)

	for _, a := range []*domain.Article{
		newArticle("https://example.com/new", "new", now.Add(-time.Hour)),
		newArticle("https://example.com/old", "old", now.Add(-40*24*time.Hour)),
	} {
		_, err := store.Upsert(s.ctx, a)
		s.Require().NoError(err)
	}

	recent, err := store.QueryRecent(s.ctx, domain.ArticleQuery{
		Country:  domain.CountryUS,
		Sections: []domain.Section{domain.SectionBusiness},
		Days:     3,
		Limit:    10,
	})
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal("new", recent[0].Title)

	deleted, err := store.PurgeOlderThan(s.ctx, 30)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	counts, err := store.CountByCountry(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, counts[domain.CountryUS])
}

func (s *PostgresIntegrationSuite) TestFeedStatusStore_Record() {
	store := NewFeedStatusStore(s.db)

	s.Require().NoError(store.Record(s.ctx, "https://example.com/rss", true, 10, ""))
	s.Require().NoError(store.Record(s.ctx, "https://example.com/rss", false, 0, "timeout"))

	list, err := store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(int64(1), list[0].SuccessCount)
	s.Equal(int64(1), list[0].ErrorCount)
	s.Equal("timeout", list[0].LastErrorMessage)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	store := NewArticleStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := store.Upsert(ctx, newArticle("https://example.com/tx", "tx", time.Now())); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM articles"))
	s.Equal(0, count)
}
