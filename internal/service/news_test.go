package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/service/mocks"
)

type NewsServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	articles *mocks.MockArticleStore
	feeds    *mocks.MockFeedStatusStore
	cache    *mocks.MockCache
	notifier *mocks.MockNotifier

	service *NewsService
	logger  *slog.Logger
}

func (s *NewsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.articles = mocks.NewMockArticleStore(s.ctrl)
	s.feeds = mocks.NewMockFeedStatusStore(s.ctrl)
	s.cache = mocks.NewMockCache(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewNewsService(s.articles, s.feeds, s.cache, s.notifier, 5*time.Minute, s.logger)
}

func (s *NewsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestNewsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NewsServiceTestSuite))
}

func (s *NewsServiceTestSuite) TestValidation() {
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"country", func() error { _, err := s.service.GetRecent(ctx, "JP", 1, 10); return err }, ErrInvalidCountry},
		{"days low", func() error { _, err := s.service.GetRecent(ctx, "US", 0, 10); return err }, ErrInvalidDays},
		{"days high", func() error { _, err := s.service.GetRecent(ctx, "US", 31, 10); return err }, ErrInvalidDays},
		{"limit low", func() error { _, err := s.service.GetRecent(ctx, "KR", 1, 0); return err }, ErrInvalidLimit},
		{"limit high", func() error { _, err := s.service.GetRecent(ctx, "KR", 1, 101); return err }, ErrInvalidLimit},
		{"section", func() error { _, err := s.service.GetBySection(ctx, "weather", "", 1, 10); return err }, ErrInvalidSection},
		{"section country", func() error { _, err := s.service.GetBySection(ctx, "sports", "XX", 1, 10); return err }, ErrInvalidCountry},
		{"economy days", func() error { _, err := s.service.GetEconomyPolitics(ctx, 40, 10); return err }, ErrInvalidDays},
		{"purge days", func() error { _, err := s.service.Purge(ctx, 0); return err }, ErrInvalidDays},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.call()
			s.ErrorIs(err, tt.want)
			s.True(IsValidationError(err))
		})
	}
}

func (s *NewsServiceTestSuite) TestGetRecent_CacheMissThenStore() {
	ctx := context.Background()
	q := domain.ArticleQuery{Country: domain.CountryKR, Days: 2, Limit: 5}
	stored := []domain.Article{{ID: "1", Title: "코스피 상승", Country: domain.CountryKR}}

	s.cache.EXPECT().Get(ctx, "articles:KR::2:5", gomock.Any()).Return(false, nil)
	s.articles.EXPECT().QueryRecent(ctx, q).Return(stored, nil)
	s.cache.EXPECT().Set(ctx, "articles:KR::2:5", stored, 5*time.Minute).Return(nil)

	got, err := s.service.GetRecent(ctx, "kr", 2, 5)

	s.NoError(err)
	s.Equal(stored, got)
}

func (s *NewsServiceTestSuite) TestGetRecent_CacheHitSkipsStore() {
	ctx := context.Background()

	s.cache.EXPECT().Get(ctx, "articles:US::1:30", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, dst any) (bool, error) {
			*dst.(*[]domain.Article) = []domain.Article{{ID: "cached"}}
			return true, nil
		},
	)

	got, err := s.service.GetRecent(ctx, "US", 1, 30)

	s.NoError(err)
	s.Equal([]domain.Article{{ID: "cached"}}, got)
}

func (s *NewsServiceTestSuite) TestGetRecent_CacheErrorFallsThrough() {
	ctx := context.Background()

	s.cache.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	s.articles.EXPECT().QueryRecent(ctx, gomock.Any()).Return(nil, nil)
	s.cache.EXPECT().Set(ctx, gomock.Any(), []domain.Article{}, gomock.Any()).Return(errors.New("redis down"))

	got, err := s.service.GetRecent(ctx, "US", 1, 30)

	s.NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *NewsServiceTestSuite) TestGetRecent_StoreError() {
	ctx := context.Background()

	s.cache.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	s.articles.EXPECT().QueryRecent(ctx, gomock.Any()).Return(nil, errors.New("db gone"))

	_, err := s.service.GetRecent(ctx, "US", 1, 30)

	s.Error(err)
	s.False(IsValidationError(err))
}

func (s *NewsServiceTestSuite) TestGetBySection_AnyCountry() {
	ctx := context.Background()
	s.service.cache = nil

	s.articles.EXPECT().QueryRecent(ctx, domain.ArticleQuery{
		Sections: []domain.Section{domain.SectionSports},
		Days:     7,
		Limit:    50,
	}).Return([]domain.Article{{ID: "a"}}, nil)

	got, err := s.service.GetBySection(ctx, "Sports", "", 7, 50)

	s.NoError(err)
	s.Len(got, 1)
}

func (s *NewsServiceTestSuite) TestEconomyPolitics_KRFirstAndNotify() {
	ctx := context.Background()
	s.service.cache = nil

	kr := domain.Article{ID: "kr", Title: "국회 예산안 통과", URL: "https://kr.example/1", Country: domain.CountryKR, Section: domain.SectionPolitics}
	us := domain.Article{ID: "us", Title: "Fed holds rates", URL: "https://us.example/1", Country: domain.CountryUS, Section: domain.SectionBusiness}

	s.articles.EXPECT().QueryRecent(ctx, domain.ArticleQuery{
		Country: domain.CountryKR, Sections: EconomyPoliticsSections, Days: 1, Limit: 20,
	}).Return([]domain.Article{kr}, nil)
	s.articles.EXPECT().QueryRecent(ctx, domain.ArticleQuery{
		Country: domain.CountryUS, Sections: EconomyPoliticsSections, Days: 1, Limit: 20,
	}).Return([]domain.Article{us}, nil)
	s.notifier.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, text string) bool {
		s.Contains(text, "국회 예산안 통과")
		s.Contains(text, "Fed holds rates")
		return true
	})

	d, sent, err := s.service.NotifyEconomyPolitics(ctx, 1, 20)

	s.NoError(err)
	s.True(sent)
	s.Equal([]domain.Article{kr, us}, d.Articles)
	s.Equal(map[domain.Country]int{domain.CountryKR: 1, domain.CountryUS: 1}, d.Counts)
}

func (s *NewsServiceTestSuite) TestNotifyEconomyPolitics_NoNotifier() {
	ctx := context.Background()
	s.service.cache = nil
	s.service.notifier = nil

	s.articles.EXPECT().QueryRecent(ctx, gomock.Any()).Return(nil, nil).Times(2)

	d, sent, err := s.service.NotifyEconomyPolitics(ctx, 1, 20)

	s.NoError(err)
	s.False(sent)
	s.Empty(d.Articles)
	s.Equal(0, d.Counts[domain.CountryKR])
}

func (s *NewsServiceTestSuite) TestFeedHealth() {
	ctx := context.Background()
	earlier := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	s.feeds.EXPECT().List(ctx).Return([]domain.FeedStatus{
		{FeedURL: "https://a", LastSuccess: &later, LastError: &earlier},
		{FeedURL: "https://b", LastSuccess: &earlier, LastError: &later},
		{FeedURL: "https://c", LastError: &earlier},
		{FeedURL: "https://d", LastSuccess: &earlier},
	}, nil)
	s.articles.EXPECT().CountByCountry(ctx).Return(map[domain.Country]int{domain.CountryUS: 4}, nil)

	h, err := s.service.FeedHealth(ctx)

	s.NoError(err)
	s.Len(h.Feeds, 4)
	s.Equal(2, h.Healthy)
	s.Equal(2, h.Failing)
	s.Equal(4, h.Articles[domain.CountryUS])
}

func (s *NewsServiceTestSuite) TestPurge() {
	ctx := context.Background()

	s.articles.EXPECT().PurgeOlderThan(ctx, 30).Return(int64(12), nil)
	s.cache.EXPECT().Clear(ctx).Return(nil)

	n, err := s.service.Purge(ctx, 30)
	s.NoError(err)
	s.Equal(int64(12), n)

	s.articles.EXPECT().PurgeOlderThan(ctx, 30).Return(int64(0), nil)

	n, err = s.service.Purge(ctx, 30)
	s.NoError(err)
	s.Zero(n)
}

func (s *NewsServiceTestSuite) TestAnalysisRows() {
	ctx := context.Background()
	stored := []domain.Article{
		{Title: "Fed holds rates", Source: "CNBC", Summary: "Rates unchanged.", Section: domain.SectionBusiness, Country: domain.CountryUS},
		{Title: "Quiet day", Source: "NYT", Country: domain.CountryUS},
	}

	s.cache.EXPECT().Get(ctx, "articles:US::3:20", gomock.Any()).Return(false, nil)
	s.articles.EXPECT().QueryRecent(ctx, domain.ArticleQuery{Country: domain.CountryUS, Days: 3, Limit: 20}).Return(stored, nil)
	s.cache.EXPECT().Set(ctx, gomock.Any(), stored, gomock.Any()).Return(nil)

	rows, err := s.service.AnalysisRows(ctx, "us", 3, 20)

	s.Require().NoError(err)
	s.Equal([]string{
		"제목: Fed holds rates\n출처: CNBC\n요약: Rates unchanged.\n섹션: business\n국가: US\n---",
		"제목: Quiet day\n출처: NYT\n요약: 요약 없음\n섹션: general\n국가: US\n---",
	}, rows)
}

func (s *NewsServiceTestSuite) TestAnalysisRows_Validation() {
	_, err := s.service.AnalysisRows(context.Background(), "US", 1, 101)
	s.ErrorIs(err, ErrInvalidLimit)
}
