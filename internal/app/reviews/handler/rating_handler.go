package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/service"
)

type RatingServiceInterface interface {
	GetPage(ctx context.Context, token string) (*entity.RatingPageResponse, error)
	Submit(ctx context.Context, req *entity.SubmitRatingRequest) (*entity.SubmitRatingResponse, error)
	TrackPublicClick(ctx context.Context, req *entity.TrackClickRequest) error
	SubmitPrivateFeedback(ctx context.Context, req *entity.PrivateFeedbackRequest) error
	SubmitClientRating(ctx context.Context, clientID uuid.UUID, req *entity.ClientRatingRequest) (*entity.Rating, error)
	GetClientRating(ctx context.Context, clientID uuid.UUID) (*entity.Rating, error)
}

type RatingHandler struct {
	ratingService RatingServiceInterface
	validator     *validator.Validate
}

func NewRatingHandler(ratingService RatingServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

// GetPage возвращает данные страницы оценки по токену
func (h *RatingHandler) GetPage(c *gin.Context) {
	token := c.Param("token")

	page, err := h.ratingService.GetPage(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or unknown token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rating page"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Submit принимает оценку по токену
func (h *RatingHandler) Submit(c *gin.Context) {
	var req entity.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	response, err := h.ratingService.Submit(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or unknown token"})
			return
		}
		if errors.Is(err, service.ErrAlreadySubmitted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Rating already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// TrackPublicClick фиксирует клик по внешней платформе
func (h *RatingHandler) TrackPublicClick(c *gin.Context) {
	var req entity.TrackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.ratingService.TrackPublicClick(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or unknown token"})
			return
		}
		if errors.Is(err, service.ErrInvalidPlatform) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid platform"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track click"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Click tracked"})
}

// SubmitPrivateFeedback сохраняет внутренний отзыв
func (h *RatingHandler) SubmitPrivateFeedback(c *gin.Context) {
	var req entity.PrivateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.ratingService.SubmitPrivateFeedback(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or unknown token"})
			return
		}
		if errors.Is(err, service.ErrNoRating) {
			c.JSON(http.StatusConflict, gin.H{"error": "Rating must be submitted first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Feedback saved"})
}

// SubmitClientRating принимает самостоятельную оценку клиента
func (h *RatingHandler) SubmitClientRating(c *gin.Context) {
	clientID, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.ClientRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	rating, err := h.ratingService.SubmitClientRating(c.Request.Context(), clientID, &req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Rating already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// GetClientRating возвращает оценку клиента
func (h *RatingHandler) GetClientRating(c *gin.Context) {
	clientID, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rating, err := h.ratingService.GetClientRating(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rating"})
		return
	}

	c.JSON(http.StatusOK, rating)
}

// accountID извлекает идентификатор учётной записи из контекста Gin
func accountID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("account_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
