package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"vipreviews/internal/app/reviews/entity"
)

type SettingsServiceInterface interface {
	Get(ctx context.Context) (*entity.SettingsResponse, error)
	Update(ctx context.Context, req *entity.UpdateSettingsRequest) (*entity.SettingsResponse, error)
	GetPlatformURLs(ctx context.Context) (entity.PlatformURLs, error)
}

type SettingsHandler struct {
	settingsService SettingsServiceInterface
	validator       *validator.Validate
}

func NewSettingsHandler(settingsService SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		validator:       validator.New(),
	}
}

// Get возвращает текущие настройки
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Update сохраняет переданные секции настроек
func (h *SettingsHandler) Update(c *gin.Context) {
	var req entity.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Platforms возвращает публичные ссылки на внешние платформы
func (h *SettingsHandler) Platforms(c *gin.Context) {
	urls, err := h.settingsService.GetPlatformURLs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load platforms"})
		return
	}

	c.JSON(http.StatusOK, urls)
}
