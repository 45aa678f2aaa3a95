package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/yzhyun/NextPicker/internal/api/mocks"
	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/service"
)

type stubRefresher struct{}

func (stubRefresher) RefreshAll(context.Context) domain.RefreshResult {
	return domain.RefreshResult{
		RunID: "run-1",
		Countries: map[domain.Country]*domain.CountryRefresh{
			domain.CountryUS: {Country: domain.CountryUS, Inserted: 2, FeedsOK: 4, FeedsFailed: 1},
			domain.CountryKR: {Country: domain.CountryKR, Inserted: 5, FeedsOK: 5},
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   string          `json:"error"`
}

type HandlerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	news   *mocks.MockNewsReader
	runner *service.Runner
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.news = mocks.NewMockNewsReader(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.runner = service.NewRunner(stubRefresher{}, time.Minute, logger)

	ny, err := time.LoadLocation("America/New_York")
	s.Require().NoError(err)
	seoul, err := time.LoadLocation("Asia/Seoul")
	s.Require().NoError(err)

	h := NewHandler(s.news, s.runner, map[domain.Country]*time.Location{
		domain.CountryUS: ny,
		domain.CountryKR: seoul,
	}, 30, logger)
	s.router = NewRouter(h, nil, logger)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, target string) (int, envelope) {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func published() time.Time {
	return time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
}

func (s *HandlerTestSuite) TestHealth() {
	code, _ := s.do(http.MethodGet, "/healthz")
	s.Equal(http.StatusOK, code)
}

func (s *HandlerTestSuite) TestGetNews_BothCountriesWithLocalTime() {
	s.news.EXPECT().GetLatest(gomock.Any(), map[domain.Country]int{
		domain.CountryUS: 2,
		domain.CountryKR: 1,
	}, 10).Return(map[domain.Country][]domain.Article{
		domain.CountryUS: {{ID: "us", Country: domain.CountryUS, Published: published()}},
		domain.CountryKR: {{ID: "kr", Country: domain.CountryKR, Published: published()}},
	}, nil)

	code, env := s.do(http.MethodGet, "/api/v1/news?days_us=2&limit=10")

	s.Equal(http.StatusOK, code)
	s.True(env.Success)
	s.Equal(float64(2), env.Meta["total"])
	s.Equal(float64(1), env.Meta["us_count"])

	var views []struct {
		ID             string `json:"id"`
		PublishedLocal string `json:"published_local"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &views))
	s.Require().Len(views, 2)
	s.Equal("us", views[0].ID)
	s.Equal("2025-03-01T10:00:00-05:00", views[0].PublishedLocal)
	s.Equal("2025-03-02T00:00:00+09:00", views[1].PublishedLocal)
}

func (s *HandlerTestSuite) TestGetByCountry_ValidationIs400() {
	s.news.EXPECT().GetRecent(gomock.Any(), "jp", 1, 30).
		Return(nil, errors.Join(service.ErrInvalidCountry, errors.New(`"jp"`)))

	code, env := s.do(http.MethodGet, "/api/v1/news/country/jp")

	s.Equal(http.StatusBadRequest, code)
	s.False(env.Success)
	s.Contains(env.Error, "invalid country")
}

func (s *HandlerTestSuite) TestGetByCountry_BadQueryIs400() {
	code, env := s.do(http.MethodGet, "/api/v1/news/country/us?days=abc")

	s.Equal(http.StatusBadRequest, code)
	s.Contains(env.Error, "days")
}

func (s *HandlerTestSuite) TestGetByCountry_StoreFailureIs500() {
	s.news.EXPECT().GetRecent(gomock.Any(), "us", 3, 5).Return(nil, errors.New("connection refused"))

	code, env := s.do(http.MethodGet, "/api/v1/news/country/us?days=3&limit=5")

	s.Equal(http.StatusInternalServerError, code)
	s.False(env.Success)
	s.Empty(env.Error)
}

func (s *HandlerTestSuite) TestGetBySection() {
	s.news.EXPECT().GetBySection(gomock.Any(), "technology", "kr", 1, 50).
		Return([]domain.Article{{ID: "a", Country: domain.CountryKR}}, nil)

	code, env := s.do(http.MethodGet, "/api/v1/news/section/Technology?country=kr")

	s.Equal(http.StatusOK, code)
	s.Equal("technology", env.Meta["section"])
	s.Equal("KR", env.Meta["country"])
}

func (s *HandlerTestSuite) TestGetEconomyPolitics() {
	s.news.EXPECT().GetEconomyPolitics(gomock.Any(), 1, 20).Return([]domain.Article{
		{ID: "k1", Country: domain.CountryKR},
		{ID: "k2", Country: domain.CountryKR},
		{ID: "u1", Country: domain.CountryUS},
	}, nil)

	code, env := s.do(http.MethodGet, "/api/v1/news/economy-politics")

	s.Equal(http.StatusOK, code)
	s.Equal(float64(2), env.Meta["kr_count"])
	s.Equal(float64(1), env.Meta["us_count"])
}

func (s *HandlerTestSuite) TestAnalysisNews() {
	s.news.EXPECT().AnalysisRows(gomock.Any(), "US", 1, 50).
		Return([]string{"제목: a\n출처: CNBC\n요약: 요약 없음\n섹션: general\n국가: US\n---"}, nil)

	code, env := s.do(http.MethodGet, "/api/v1/analysis/us-news")

	s.Equal(http.StatusOK, code)
	s.Equal(float64(1), env.Meta["count"])
	s.Equal(float64(50), env.Meta["limit"])

	var rows []string
	s.Require().NoError(json.Unmarshal(env.Data, &rows))
	s.Require().Len(rows, 1)
	s.Contains(rows[0], "출처: CNBC")
}

func (s *HandlerTestSuite) TestAnalysisNews_KoreaAndValidation() {
	s.news.EXPECT().AnalysisRows(gomock.Any(), "KR", 2, 101).
		Return(nil, service.ErrInvalidLimit)

	code, env := s.do(http.MethodGet, "/api/v1/analysis/kr-news?days=2&limit=101")

	s.Equal(http.StatusBadRequest, code)
	s.Contains(env.Error, "limit")
}

func (s *HandlerTestSuite) TestRefresh_Wait() {
	code, env := s.do(http.MethodPost, "/api/v1/refresh?wait=true")

	s.Equal(http.StatusOK, code)

	var data struct {
		Inserted map[string]int `json:"inserted"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal(map[string]int{"US": 2, "KR": 5}, data.Inserted)
}

func (s *HandlerTestSuite) TestRefresh_Async() {
	code, env := s.do(http.MethodPost, "/api/v1/refresh")

	s.Equal(http.StatusAccepted, code)

	var data struct {
		RunID string `json:"run_id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.NotEmpty(data.RunID)

	if run := s.runner.Current(); run != nil {
		<-run.Done()
	}
	code, env = s.do(http.MethodGet, "/api/v1/refresh/status")
	s.Equal(http.StatusOK, code)
	s.Contains(string(env.Data), data.RunID)
}

func (s *HandlerTestSuite) TestRefresh_BadWait() {
	code, _ := s.do(http.MethodPost, "/api/v1/refresh?wait=maybe")
	s.Equal(http.StatusBadRequest, code)
}

func (s *HandlerTestSuite) TestFeedHealth() {
	s.news.EXPECT().FeedHealth(gomock.Any()).Return(&service.FeedHealth{
		Feeds:    []domain.FeedStatus{{FeedURL: "https://a"}, {FeedURL: "https://b"}},
		Articles: map[domain.Country]int{domain.CountryUS: 3},
		Healthy:  1,
		Failing:  1,
	}, nil)

	code, env := s.do(http.MethodGet, "/api/v1/feeds/health")

	s.Equal(http.StatusOK, code)
	s.Equal(float64(1), env.Meta["failing"])
}

func (s *HandlerTestSuite) TestNotifyEconomyPolitics() {
	s.news.EXPECT().NotifyEconomyPolitics(gomock.Any(), 1, 20).Return(&service.Digest{
		Counts: map[domain.Country]int{domain.CountryKR: 3, domain.CountryUS: 2},
	}, false, nil)

	code, env := s.do(http.MethodPost, "/api/v1/notifications/economy-politics")

	s.Equal(http.StatusOK, code)
	s.Equal("Economy/politics notification not delivered", env.Message)

	var data map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal(float64(5), data["total"])
	s.Equal(false, data["sent"])
}

func (s *HandlerTestSuite) TestPurge_DefaultsToRetention() {
	s.news.EXPECT().Purge(gomock.Any(), 30).Return(int64(7), nil)

	code, env := s.do(http.MethodPost, "/api/v1/cleanup/purge")

	s.Equal(http.StatusOK, code)
	s.Equal("Purged 7 articles", env.Message)
}

func (s *HandlerTestSuite) TestNotFound() {
	code, env := s.do(http.MethodGet, "/api/v1/nope")

	s.Equal(http.StatusNotFound, code)
	s.False(env.Success)
}
