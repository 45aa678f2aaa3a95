package sqlstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/yzhyun/NextPicker/internal/domain"
)

type FeedStatusStore struct {
	db  *sqlx.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

func NewFeedStatusStore(db *sqlx.DB) *FeedStatusStore {
	return &FeedStatusStore{db: db, sb: builder(db), now: time.Now}
}

func (s *FeedStatusStore) WithClock(now func() time.Time) *FeedStatusStore {
	s.now = now
	return s
}

// Record notes one fetch attempt. The row is created on first sight;
// afterwards counters accumulate and the last success or error timestamp
// moves forward. A success keeps the previous error message.
func (s *FeedStatusStore) Record(ctx context.Context, feedURL string, success bool, entries int, errMsg string) error {
	now := s.now().UTC().Truncate(time.Microsecond)

	var (
		lastSuccess, lastError *time.Time
		successes, failures    int64
	)
	if success {
		lastSuccess, successes, errMsg = &now, 1, ""
	} else {
		lastError, failures = &now, 1
		if errMsg == "" {
			errMsg = "unknown error"
		}
	}

	query, args, err := s.sb.Insert("feed_status").
		Columns("feed_url", "last_success", "last_error", "last_error_message",
			"success_count", "error_count", "last_entries_count", "created_at", "updated_at").
		Values(feedURL, lastSuccess, lastError, errMsg, successes, failures, entries, now, now).
		Suffix(`ON CONFLICT (feed_url) DO UPDATE SET
			last_success = COALESCE(EXCLUDED.last_success, feed_status.last_success),
			last_error = COALESCE(EXCLUDED.last_error, feed_status.last_error),
			last_error_message = CASE WHEN EXCLUDED.last_error_message = ''
				THEN feed_status.last_error_message ELSE EXCLUDED.last_error_message END,
			success_count = feed_status.success_count + EXCLUDED.success_count,
			error_count = feed_status.error_count + EXCLUDED.error_count,
			last_entries_count = EXCLUDED.last_entries_count,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build feed status upsert: %w", err)
	}

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record feed status: %w", err)
	}
	return nil
}

// List returns every tracked feed ordered by URL.
func (s *FeedStatusStore) List(ctx context.Context) ([]domain.FeedStatus, error) {
	query, args, err := s.sb.Select("feed_url", "last_success", "last_error", "last_error_message",
		"success_count", "error_count", "last_entries_count", "created_at", "updated_at").
		From("feed_status").
		OrderBy("feed_url").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed status list: %w", err)
	}

	statuses := []domain.FeedStatus{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &statuses, query, args...); err != nil {
		return nil, fmt.Errorf("list feed status: %w", err)
	}
	for i := range statuses {
		st := &statuses[i]
		st.CreatedAt, st.UpdatedAt = st.CreatedAt.UTC(), st.UpdatedAt.UTC()
		if st.LastSuccess != nil {
			t := st.LastSuccess.UTC()
			st.LastSuccess = &t
		}
		if st.LastError != nil {
			t := st.LastError.UTC()
			st.LastError = &t
		}
	}
	return statuses, nil
}
