package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vipreviews/internal/app/reviews/entity"
)

type privateFeedbackRepository struct {
	db *gorm.DB
}

// NewPrivateFeedbackRepository создает новый репозиторий внутренних отзывов
func NewPrivateFeedbackRepository(db *gorm.DB) PrivateFeedbackRepository {
	return &privateFeedbackRepository{db: db}
}

// Upsert создает или перезаписывает отзыв по ключу review_request_id.
// Повторная отправка заменяет текст (last write wins), истории нет.
func (r *privateFeedbackRepository) Upsert(ctx context.Context, feedback *entity.PrivateFeedback) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "review_request_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "comments", "submitted_at",
		}),
	}).Create(feedback)

	if result.Error != nil {
		return fmt.Errorf("failed to upsert private feedback: %w", result.Error)
	}

	return nil
}

// GetByReviewRequest получает отзыв по review request
func (r *privateFeedbackRepository) GetByReviewRequest(ctx context.Context, requestID uuid.UUID) (*entity.PrivateFeedback, error) {
	var feedback entity.PrivateFeedback
	result := r.db.WithContext(ctx).First(&feedback, "review_request_id = ?", requestID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get private feedback: %w", result.Error)
	}

	return &feedback, nil
}

// GetByID получает отзыв по ID вместе с review request и контактом
func (r *privateFeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PrivateFeedback, error) {
	var feedback entity.PrivateFeedback
	result := r.db.WithContext(ctx).
		Preload("ReviewRequest").
		Preload("ReviewRequest.Contact").
		First(&feedback, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get private feedback: %w", result.Error)
	}

	return &feedback, nil
}

// List возвращает последние отзывы
func (r *privateFeedbackRepository) List(ctx context.Context, limit int) ([]entity.PrivateFeedback, error) {
	var feedback []entity.PrivateFeedback
	result := r.db.WithContext(ctx).
		Preload("ReviewRequest").
		Preload("ReviewRequest.Contact").
		Order("submitted_at DESC").
		Limit(limit).
		Find(&feedback)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list private feedback: %w", result.Error)
	}

	return feedback, nil
}

type publicClickRepository struct {
	db *gorm.DB
}

// NewPublicClickRepository создает новый репозиторий кликов по платформам
func NewPublicClickRepository(db *gorm.DB) PublicClickRepository {
	return &publicClickRepository{db: db}
}

// Create добавляет запись о клике. Журнал append-only: ограничений
// уникальности нет, повторные клики допустимы.
func (r *publicClickRepository) Create(ctx context.Context, click *entity.PublicReviewClick) error {
	result := r.db.WithContext(ctx).Create(click)
	if result.Error != nil {
		return fmt.Errorf("failed to create public review click: %w", result.Error)
	}
	return nil
}

// CountByPlatform возвращает количество кликов по каждой платформе
func (r *publicClickRepository) CountByPlatform(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Platform string
		Count    int64
	}

	var rows []row
	result := r.db.WithContext(ctx).
		Model(&entity.PublicReviewClick{}).
		Select("platform, count(*) as count").
		Group("platform").
		Scan(&rows)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to count clicks by platform: %w", result.Error)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Platform] = r.Count
	}

	return counts, nil
}
