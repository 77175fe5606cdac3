package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/service"
)

type SendServiceInterface interface {
	Send(ctx context.Context, req *entity.SendReviewRequest) (*entity.SendResult, error)
	List(ctx context.Context, limit int) ([]entity.ReviewRequest, error)
}

type FeedbackReaderInterface interface {
	ListFeedback(ctx context.Context, limit int) ([]entity.PrivateFeedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*entity.PrivateFeedback, error)
}

type RedirectReaderInterface interface {
	List(ctx context.Context, filter entity.RedirectFilter, limit int) ([]entity.RedirectEvent, error)
}

type StatsServiceInterface interface {
	Get(ctx context.Context) (*entity.DashboardStats, error)
}

// ReviewRequestHandler обслуживает админские операции над review requests
type ReviewRequestHandler struct {
	sendService     SendServiceInterface
	feedbackService FeedbackReaderInterface
	redirectService RedirectReaderInterface
	statsService    StatsServiceInterface
	validator       *validator.Validate
}

func NewReviewRequestHandler(
	sendService SendServiceInterface,
	feedbackService FeedbackReaderInterface,
	redirectService RedirectReaderInterface,
	statsService StatsServiceInterface,
) *ReviewRequestHandler {
	return &ReviewRequestHandler{
		sendService:     sendService,
		feedbackService: feedbackService,
		redirectService: redirectService,
		statsService:    statsService,
		validator:       validator.New(),
	}
}

// Send запускает рассылку приглашений
func (h *ReviewRequestHandler) Send(c *gin.Context) {
	var req entity.SendReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	result, err := h.sendService.Send(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChannel):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel"})
		case errors.Is(err, service.ErrManifestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Manifest not found"})
		case errors.Is(err, service.ErrContactNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		case errors.Is(err, service.ErrNoContacts):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Manifest has no contacts"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send review requests"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// List возвращает последние review requests
func (h *ReviewRequestHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 100)

	requests, err := h.sendService.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list review requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// ListFeedback возвращает последние private feedback
func (h *ReviewRequestHandler) ListFeedback(c *gin.Context) {
	limit := queryInt(c, "limit", 100)

	feedback, err := h.feedbackService.ListFeedback(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"total":    len(feedback),
	})
}

// GetFeedback возвращает один private feedback
func (h *ReviewRequestHandler) GetFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feedback"})
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// ListRedirects возвращает журнал переходов по трекинговым ссылкам
func (h *ReviewRequestHandler) ListRedirects(c *gin.Context) {
	filter := entity.RedirectFilter{
		RedirectID: c.Query("redirectId"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}
	limit := queryInt(c, "limit", 100)

	events, err := h.redirectService.List(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list redirect events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

// DashboardStats возвращает агрегаты дашборда
func (h *ReviewRequestHandler) DashboardStats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func queryInt(c *gin.Context, name string, defaultValue int) int {
	if raw := c.Query(name); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return defaultValue
}
