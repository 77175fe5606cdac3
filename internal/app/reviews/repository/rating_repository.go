package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository создает новый репозиторий оценок
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create вставляет оценку. Повторная вставка для того же review request
// или клиента упирается в частичный уникальный индекс: проигравший
// конкурентной гонки получает ErrDuplicateRating, данные не затираются.
func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	result := r.db.WithContext(ctx).Create(rating)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateRating
		}
		return fmt.Errorf("failed to create rating: %w", result.Error)
	}
	return nil
}

// GetByReviewRequest получает оценку, привязанную к review request
func (r *ratingRepository) GetByReviewRequest(ctx context.Context, requestID uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	result := r.db.WithContext(ctx).First(&rating, "review_request_id = ?", requestID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rating: %w", result.Error)
	}

	return &rating, nil
}

// GetByClient получает самостоятельную оценку клиента
func (r *ratingRepository) GetByClient(ctx context.Context, clientID uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	result := r.db.WithContext(ctx).First(&rating, "client_id = ?", clientID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client rating: %w", result.Error)
	}

	return &rating, nil
}
