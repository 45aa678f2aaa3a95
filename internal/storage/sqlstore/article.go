package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/yzhyun/NextPicker/internal/domain"
)

var articleColumns = []string{
	"id", "title", "url", "source", "published", "summary",
	"section", "country", "local_tz", "created_at", "updated_at",
}

type ArticleStore struct {
	db  *sqlx.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db, sb: builder(db), now: time.Now}
}

// WithClock replaces the clock used for timestamps and cutoffs.
func (s *ArticleStore) WithClock(now func() time.Time) *ArticleStore {
	s.now = now
	return s
}

// Upsert stores a by URL. A new URL is inserted with created_at = now; a
// known one only has title, summary and section rewritten, and only when
// they differ. created_at is never touched after insert. On return a
// carries the stored ID and timestamps.
func (s *ArticleStore) Upsert(ctx context.Context, a *domain.Article) (domain.UpsertOutcome, error) {
	exec := GetExecutor(ctx, s.db)

	existing, err := s.lookup(ctx, exec, a.URL, a.ID)
	if err != nil {
		return "", err
	}

	if existing == nil {
		now := s.clock()
		query, args, err := s.sb.Insert("articles").
			Columns(articleColumns...).
			Values(a.ID, a.Title, a.URL, a.Source, a.Published.UTC().Truncate(time.Microsecond), a.Summary,
				string(a.Section), string(a.Country), a.LocalTZ, now, now).
			Suffix("ON CONFLICT (url) DO NOTHING").
			ToSql()
		if err != nil {
			return "", fmt.Errorf("build insert: %w", err)
		}

		res, err := exec.ExecContext(ctx, query, args...)
		if err != nil {
			return "", fmt.Errorf("insert article: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			a.CreatedAt, a.UpdatedAt = now, now
			return domain.UpsertInserted, nil
		}

		// A concurrent run inserted the same URL first.
		existing, err = s.lookup(ctx, exec, a.URL, a.ID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", fmt.Errorf("insert article %s: no row written", a.URL)
		}
	}

	a.ID = existing.ID
	a.CreatedAt = existing.CreatedAt

	if existing.Title == a.Title && existing.Summary == a.Summary && existing.Section == a.Section {
		a.UpdatedAt = existing.UpdatedAt
		return domain.UpsertUnchanged, nil
	}

	now := s.clock()
	query, args, err := s.sb.Update("articles").
		Set("title", a.Title).
		Set("summary", a.Summary).
		Set("section", string(a.Section)).
		Set("updated_at", now).
		Where(sq.Eq{"id": existing.ID}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build update: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("update article: %w", err)
	}

	a.UpdatedAt = now
	return domain.UpsertUpdated, nil
}

func (s *ArticleStore) lookup(ctx context.Context, exec sqlx.ExtContext, url, id string) (*domain.Article, error) {
	a, err := s.getOne(ctx, exec, sq.Eq{"url": url})
	if err != nil || a != nil || id == "" {
		return a, err
	}
	return s.getOne(ctx, exec, sq.Eq{"id": id})
}

func (s *ArticleStore) getOne(ctx context.Context, exec sqlx.ExtContext, where sq.Eq) (*domain.Article, error) {
	query, args, err := s.sb.Select(articleColumns...).From("articles").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var a domain.Article
	err = sqlx.GetContext(ctx, exec, &a, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	normalizeTimes(&a)
	return &a, nil
}

// GetByURL returns nil, nil when the URL is unknown.
func (s *ArticleStore) GetByURL(ctx context.Context, url string) (*domain.Article, error) {
	return s.getOne(ctx, GetExecutor(ctx, s.db), sq.Eq{"url": url})
}

// QueryRecent lists articles published within q.Days, newest first.
func (s *ArticleStore) QueryRecent(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	cutoff := s.clock().Add(-time.Duration(q.Days) * 24 * time.Hour)

	sel := s.sb.Select(articleColumns...).
		From("articles").
		Where(sq.GtOrEq{"published": cutoff}).
		OrderBy("published DESC", "id")

	if q.Country != "" {
		sel = sel.Where(sq.Eq{"country": string(q.Country)})
	}
	if len(q.Sections) > 0 {
		sections := make([]string, 0, len(q.Sections))
		for _, sec := range q.Sections {
			sections = append(sections, string(sec))
		}
		sel = sel.Where(sq.Eq{"section": sections})
	}
	if q.Limit > 0 {
		sel = sel.Limit(uint64(q.Limit))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	articles := []domain.Article{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &articles, query, args...); err != nil {
		return nil, fmt.Errorf("query recent articles: %w", err)
	}
	for i := range articles {
		normalizeTimes(&articles[i])
	}
	return articles, nil
}

// CountByCountry returns the number of stored articles per country.
func (s *ArticleStore) CountByCountry(ctx context.Context) (map[domain.Country]int, error) {
	query, args, err := s.sb.Select("country", "COUNT(*) AS n").
		From("articles").
		GroupBy("country").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	var rows []struct {
		Country string `db:"country"`
		N       int    `db:"n"`
	}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	out := make(map[domain.Country]int, len(rows))
	for _, r := range rows {
		out[domain.Country(r.Country)] = r.N
	}
	return out, nil
}

// PurgeOlderThan deletes articles published more than days ago.
func (s *ArticleStore) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("purge: days must be positive, got %d", days)
	}
	cutoff := s.clock().Add(-time.Duration(days) * 24 * time.Hour)

	query, args, err := s.sb.Delete("articles").Where(sq.Lt{"published": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge: %w", err)
	}

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge articles: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge rows affected: %w", err)
	}
	return n, nil
}

func (s *ArticleStore) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// normalizeTimes pins scanned timestamps to UTC; drivers differ in the
// location they attach to zone-less columns.
func normalizeTimes(a *domain.Article) {
	a.Published = a.Published.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
}
