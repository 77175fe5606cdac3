package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RedirectResolverInterface interface {
	Resolve(ctx context.Context, redirectID, token, ip, userAgent string) (string, error)
}

// RedirectHandler обслуживает переходы по трекинговым ссылкам
type RedirectHandler struct {
	redirectService RedirectResolverInterface
}

func NewRedirectHandler(redirectService RedirectResolverInterface) *RedirectHandler {
	return &RedirectHandler{
		redirectService: redirectService,
	}
}

// Follow записывает попадание и перенаправляет на страницу оценки
func (h *RedirectHandler) Follow(c *gin.Context) {
	redirectID := c.Param("redirectId")
	token := c.Query("t")

	target, err := h.redirectService.Resolve(
		c.Request.Context(),
		redirectID,
		token,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve redirect"})
		return
	}

	c.Redirect(http.StatusFound, target)
}
