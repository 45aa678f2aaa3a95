package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yzhyun/NextPicker/internal/domain"
	"github.com/yzhyun/NextPicker/internal/service"
)

type Handler struct {
	news          NewsReader
	runner        RefreshRunner
	locations     map[domain.Country]*time.Location
	retentionDays int
	logger        *slog.Logger
}

func NewHandler(
	news NewsReader,
	runner RefreshRunner,
	locations map[domain.Country]*time.Location,
	retentionDays int,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		news:          news,
		runner:        runner,
		locations:     locations,
		retentionDays: retentionDays,
		logger:        logger.With("component", "api"),
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// GetNews serves both countries, each with its own window.
func (h *Handler) GetNews(c *gin.Context) {
	daysUS, err := intQuery(c, "days_us", 1, service.ErrInvalidDays)
	if err != nil {
		h.handleError(c, err, "failed to get news")
		return
	}
	daysKR, err := intQuery(c, "days_kr", 1, service.ErrInvalidDays)
	if err != nil {
		h.handleError(c, err, "failed to get news")
		return
	}
	limit, err := intQuery(c, "limit", 30, service.ErrInvalidLimit)
	if err != nil {
		h.handleError(c, err, "failed to get news")
		return
	}

	byCountry, err := h.news.GetLatest(c.Request.Context(), map[domain.Country]int{
		domain.CountryUS: daysUS,
		domain.CountryKR: daysKR,
	}, limit)
	if err != nil {
		h.handleError(c, err, "failed to get news")
		return
	}

	us, kr := byCountry[domain.CountryUS], byCountry[domain.CountryKR]
	all := append(h.views(us), h.views(kr)...)

	ok(c, http.StatusOK, fmt.Sprintf("Retrieved %d news articles", len(all)), all, gin.H{
		"total":    len(all),
		"us_count": len(us),
		"kr_count": len(kr),
		"days_us":  daysUS,
		"days_kr":  daysKR,
		"limit":    limit,
	})
}

func (h *Handler) GetByCountry(c *gin.Context) {
	country := c.Param("country")
	days, limit, err := window(c, 1, 30)
	if err != nil {
		h.handleError(c, err, "failed to get news")
		return
	}

	articles, err := h.news.GetRecent(c.Request.Context(), country, days, limit)
	if err != nil {
		h.handleError(c, err, "failed to get news")
		return
	}

	country = strings.ToUpper(country)
	ok(c, http.StatusOK, fmt.Sprintf("Retrieved %d %s news articles", len(articles), country), h.views(articles), gin.H{
		"total":   len(articles),
		"country": country,
		"days":    days,
		"limit":   limit,
	})
}

func (h *Handler) GetBySection(c *gin.Context) {
	section := strings.ToLower(c.Param("section"))
	country := c.Query("country")
	days, limit, err := window(c, 1, 50)
	if err != nil {
		h.handleError(c, err, "failed to get section news")
		return
	}

	articles, err := h.news.GetBySection(c.Request.Context(), section, country, days, limit)
	if err != nil {
		h.handleError(c, err, "failed to get section news")
		return
	}

	meta := gin.H{
		"total":   len(articles),
		"section": section,
		"days":    days,
		"limit":   limit,
	}
	if country != "" {
		meta["country"] = strings.ToUpper(country)
	}
	ok(c, http.StatusOK, fmt.Sprintf("Retrieved %d %s news articles", len(articles), section), h.views(articles), meta)
}

func (h *Handler) GetEconomyPolitics(c *gin.Context) {
	days, limit, err := window(c, 1, 20)
	if err != nil {
		h.handleError(c, err, "failed to get economy/politics news")
		return
	}

	articles, err := h.news.GetEconomyPolitics(c.Request.Context(), days, limit)
	if err != nil {
		h.handleError(c, err, "failed to get economy/politics news")
		return
	}

	counts := countByCountry(articles)
	ok(c, http.StatusOK, fmt.Sprintf("Retrieved %d economy/politics news articles", len(articles)), h.views(articles), gin.H{
		"total":    len(articles),
		"kr_count": counts[domain.CountryKR],
		"us_count": counts[domain.CountryUS],
		"days":     days,
		"limit":    limit,
	})
}

// Refresh starts a refresh, or joins the one in flight. With wait=true it
// blocks until the run ends or the client goes away.
func (h *Handler) Refresh(c *gin.Context) {
	wait, err := strconv.ParseBool(c.DefaultQuery("wait", "false"))
	if err != nil {
		fail(c, http.StatusBadRequest, "wait must be true or false", err)
		return
	}

	run := h.runner.Start(c.Request.Context())
	if !wait {
		ok(c, http.StatusAccepted, "Refresh started", runView(run), nil)
		return
	}

	result, err := run.Wait(c.Request.Context())
	if errors.Is(err, service.ErrRefreshPanicked) {
		h.handleError(c, err, "refresh failed")
		return
	}
	if err != nil {
		ok(c, http.StatusAccepted, "Refresh still running", runView(run), nil)
		return
	}

	ok(c, http.StatusOK, "Refresh completed", gin.H{
		"run_id":    result.RunID,
		"inserted":  result.Inserted(),
		"countries": result.Countries,
	}, gin.H{
		"duration_ms": result.Duration.Milliseconds(),
	})
}

func (h *Handler) RefreshStatus(c *gin.Context) {
	data := gin.H{"running": false}
	if run := h.runner.Current(); run != nil {
		data["running"] = true
		data["current"] = runView(run)
	}
	if run := h.runner.Last(); run != nil {
		data["last"] = runView(run)
	}
	ok(c, http.StatusOK, "Refresh status", data, nil)
}

// AnalysisNews serves text blocks of one country's articles for external
// analysis tools.
func (h *Handler) AnalysisNews(country domain.Country) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, limit, err := window(c, 1, 50)
		if err != nil {
			h.handleError(c, err, "failed to get news for analysis")
			return
		}

		rows, err := h.news.AnalysisRows(c.Request.Context(), string(country), days, limit)
		if err != nil {
			h.handleError(c, err, "failed to get news for analysis")
			return
		}

		ok(c, http.StatusOK, fmt.Sprintf("Retrieved %d %s news articles for analysis", len(rows), country), rows, gin.H{
			"count": len(rows),
			"days":  days,
			"limit": limit,
		})
	}
}

func (h *Handler) FeedHealth(c *gin.Context) {
	health, err := h.news.FeedHealth(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "failed to get feed health")
		return
	}

	ok(c, http.StatusOK, fmt.Sprintf("Retrieved status of %d feeds", len(health.Feeds)), health.Feeds, gin.H{
		"healthy":  health.Healthy,
		"failing":  health.Failing,
		"articles": health.Articles,
	})
}

func (h *Handler) NotifyEconomyPolitics(c *gin.Context) {
	days, limit, err := window(c, 1, 20)
	if err != nil {
		h.handleError(c, err, "failed to send economy/politics notification")
		return
	}

	digest, sent, err := h.news.NotifyEconomyPolitics(c.Request.Context(), days, limit)
	if err != nil {
		h.handleError(c, err, "failed to send economy/politics notification")
		return
	}

	message := "Economy/politics notification sent"
	if !sent {
		message = "Economy/politics notification not delivered"
	}
	total := digest.Counts[domain.CountryKR] + digest.Counts[domain.CountryUS]
	ok(c, http.StatusOK, message, gin.H{
		"KR":    digest.Counts[domain.CountryKR],
		"US":    digest.Counts[domain.CountryUS],
		"total": total,
		"sent":  sent,
	}, gin.H{
		"days":  days,
		"limit": limit,
	})
}

func (h *Handler) Purge(c *gin.Context) {
	days, err := intQuery(c, "days", h.retentionDays, service.ErrInvalidDays)
	if err != nil {
		h.handleError(c, err, "failed to purge articles")
		return
	}

	n, err := h.news.Purge(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, err, "failed to purge articles")
		return
	}

	ok(c, http.StatusOK, fmt.Sprintf("Purged %d articles", n), gin.H{"deleted": n}, gin.H{"days": days})
}

// handleError answers 400 for caller mistakes and 500 for everything else.
func (h *Handler) handleError(c *gin.Context, err error, message string) {
	if service.IsValidationError(err) {
		fail(c, http.StatusBadRequest, message, err)
		return
	}
	h.logger.Error(message, "path", c.FullPath(), "error", err)
	fail(c, http.StatusInternalServerError, message, nil)
}

func window(c *gin.Context, defDays, defLimit int) (int, int, error) {
	days, err := intQuery(c, "days", defDays, service.ErrInvalidDays)
	if err != nil {
		return 0, 0, err
	}
	limit, err := intQuery(c, "limit", defLimit, service.ErrInvalidLimit)
	if err != nil {
		return 0, 0, err
	}
	return days, limit, nil
}

// intQuery reads an integer query parameter, wrapping parse failures in
// sentinel so they map to 400.
func intQuery(c *gin.Context, name string, def int, sentinel error) (int, error) {
	raw, present := c.GetQuery(name)
	if !present || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", sentinel, name, raw)
	}
	return v, nil
}

func runView(run *service.Run) gin.H {
	v := gin.H{
		"run_id":     run.ID,
		"started_at": run.StartedAt,
	}
	select {
	case <-run.Done():
		v["done"] = true
	default:
		v["done"] = false
	}
	return v
}

func countByCountry(articles []domain.Article) map[domain.Country]int {
	out := make(map[domain.Country]int, len(domain.Countries))
	for _, a := range articles {
		out[a.Country]++
	}
	return out
}
