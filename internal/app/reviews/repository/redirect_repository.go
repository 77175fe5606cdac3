package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type redirectEventRepository struct {
	db *gorm.DB
}

// NewRedirectEventRepository создает новый репозиторий журнала переходов
func NewRedirectEventRepository(db *gorm.DB) RedirectEventRepository {
	return &redirectEventRepository{db: db}
}

// Create добавляет запись о переходе. Журнал append-only:
// записи не обновляются и не удаляются по одной.
func (r *redirectEventRepository) Create(ctx context.Context, event *entity.RedirectEvent) error {
	result := r.db.WithContext(ctx).Create(event)
	if result.Error != nil {
		return fmt.Errorf("failed to create redirect event: %w", result.Error)
	}
	return nil
}

// List возвращает последние переходы с учётом фильтров
func (r *redirectEventRepository) List(ctx context.Context, filter entity.RedirectFilter, limit int) ([]entity.RedirectEvent, error) {
	query := r.db.WithContext(ctx).Model(&entity.RedirectEvent{})

	if filter.RedirectID != "" {
		query = query.Where("redirect_id = ?", filter.RedirectID)
	}
	if filter.From != nil {
		query = query.Where("hit_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("hit_at <= ?", *filter.To)
	}

	var events []entity.RedirectEvent
	result := query.Order("hit_at DESC").Limit(limit).Find(&events)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list redirect events: %w", result.Error)
	}

	return events, nil
}

// Count возвращает общее количество переходов
func (r *redirectEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.RedirectEvent{}).Count(&count)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to count redirect events: %w", result.Error)
	}

	return count, nil
}
