package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository создает новый репозиторий агрегатов дашборда
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

// CountRequestsByStatus возвращает количество review requests по статусам
func (r *statsRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	result := r.db.WithContext(ctx).
		Model(&entity.ReviewRequest{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&rows)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to count requests by status: %w", result.Error)
	}

	return toMap(rows), nil
}

// CountRequestsByChannel возвращает количество review requests по каналам
func (r *statsRepository) CountRequestsByChannel(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	result := r.db.WithContext(ctx).
		Model(&entity.ReviewRequest{}).
		Select("channel as key, count(*) as count").
		Group("channel").
		Scan(&rows)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to count requests by channel: %w", result.Error)
	}

	return toMap(rows), nil
}

// RatingStats возвращает количество и среднее значение оценок
func (r *statsRepository) RatingStats(ctx context.Context) (int64, float64, error) {
	type row struct {
		Count   int64
		Average float64
	}

	var stats row
	result := r.db.WithContext(ctx).
		Model(&entity.Rating{}).
		Select("count(*) as count, coalesce(avg(value), 0) as average").
		Scan(&stats)

	if result.Error != nil {
		return 0, 0, fmt.Errorf("failed to get rating stats: %w", result.Error)
	}

	return stats.Count, stats.Average, nil
}

// CountPrivateFeedback возвращает количество внутренних отзывов
func (r *statsRepository) CountPrivateFeedback(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.PrivateFeedback{}).Count(&count)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to count private feedback: %w", result.Error)
	}

	return count, nil
}

func toMap(rows []groupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Count
	}
	return m
}
