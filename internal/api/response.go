package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yzhyun/NextPicker/internal/domain"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    gin.H  `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any, meta gin.H) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func fail(c *gin.Context, status int, message string, err error) {
	resp := Response{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// ArticleView is an article as served, with its publish time rendered in
// the zone of its country.
type ArticleView struct {
	domain.Article
	PublishedLocal string `json:"published_local"`
}

func (h *Handler) views(articles []domain.Article) []ArticleView {
	out := make([]ArticleView, len(articles))
	for i, a := range articles {
		loc := h.locations[a.Country]
		if loc == nil {
			loc = time.UTC
		}
		out[i] = ArticleView{
			Article:        a,
			PublishedLocal: a.Published.In(loc).Format(time.RFC3339),
		}
	}
	return out
}

func notFound(c *gin.Context) {
	fail(c, http.StatusNotFound, "route not found", nil)
}
