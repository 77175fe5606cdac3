package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type reviewRequestRepository struct {
	db *gorm.DB
}

// NewReviewRequestRepository создает новый репозиторий review requests
func NewReviewRequestRepository(db *gorm.DB) ReviewRequestRepository {
	return &reviewRequestRepository{db: db}
}

// Create создает новую запись review request со статусом sent.
// Уникальность токена гарантирует индекс uk_review_requests_token.
func (r *reviewRequestRepository) Create(ctx context.Context, request *entity.ReviewRequest) error {
	result := r.db.WithContext(ctx).Create(request)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateToken
		}
		return fmt.Errorf("failed to create review request: %w", result.Error)
	}
	return nil
}

// GetByID получает review request по ID
func (r *reviewRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReviewRequest, error) {
	var request entity.ReviewRequest
	result := r.db.WithContext(ctx).First(&request, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review request: %w", result.Error)
	}

	return &request, nil
}

// GetByToken получает review request по токену вместе с контактом
func (r *reviewRequestRepository) GetByToken(ctx context.Context, token string) (*entity.ReviewRequest, error) {
	var request entity.ReviewRequest
	result := r.db.WithContext(ctx).
		Preload("Contact").
		First(&request, "token = ?", token)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review request by token: %w", result.Error)
	}

	return &request, nil
}

// GetByRedirectID получает review request по идентификатору трекинговой ссылки
func (r *reviewRequestRepository) GetByRedirectID(ctx context.Context, redirectID string) (*entity.ReviewRequest, error) {
	var request entity.ReviewRequest
	result := r.db.WithContext(ctx).First(&request, "redirect_id = ?", redirectID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review request by redirect id: %w", result.Error)
	}

	return &request, nil
}

// MarkFailed переводит запись в статус failed после неудачной отправки
func (r *reviewRequestRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.ReviewRequest{}).
		Where("id = ?", id).
		Update("status", entity.RequestStatusFailed)

	if result.Error != nil {
		return fmt.Errorf("failed to mark review request failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List возвращает последние review requests с контактом и манифестом
func (r *reviewRequestRepository) List(ctx context.Context, limit int) ([]entity.ReviewRequest, error) {
	var requests []entity.ReviewRequest
	result := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Manifest").
		Order("sent_at DESC").
		Limit(limit).
		Find(&requests)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list review requests: %w", result.Error)
	}

	return requests, nil
}

// DeleteByManifest удаляет все review requests манифеста.
// Зависимые ratings, feedback и клики удаляются каскадом по FK.
func (r *reviewRequestRepository) DeleteByManifest(ctx context.Context, manifestID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("manifest_id = ?", manifestID).
		Delete(&entity.ReviewRequest{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete review requests by manifest: %w", result.Error)
	}

	return nil
}
