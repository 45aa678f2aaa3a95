package api

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yzhyun/NextPicker/internal/domain"
)

func NewRouter(h *Handler, allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowCreds := !(len(allowedOrigins) == 1 && allowedOrigins[0] == "*")

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(notFound)
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	{
		news := v1.Group("/news")
		news.GET("", h.GetNews)
		news.GET("/country/:country", h.GetByCountry)
		news.GET("/section/:section", h.GetBySection)
		news.GET("/economy-politics", h.GetEconomyPolitics)

		analysis := v1.Group("/analysis")
		analysis.GET("/us-news", h.AnalysisNews(domain.CountryUS))
		analysis.GET("/kr-news", h.AnalysisNews(domain.CountryKR))

		v1.POST("/refresh", h.Refresh)
		v1.GET("/refresh/status", h.RefreshStatus)
		v1.GET("/feeds/health", h.FeedHealth)
		v1.POST("/notifications/economy-politics", h.NotifyEconomyPolitics)
		v1.POST("/cleanup/purge", h.Purge)
	}

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
