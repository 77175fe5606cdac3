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

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository создает новый репозиторий настроек
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get возвращает JSON-значение настройки по ключу
func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var setting entity.Setting
	result := r.db.WithContext(ctx).First(&setting, "key = ?", key)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get setting: %w", result.Error)
	}

	return setting.Value, nil
}

// Set создает или перезаписывает настройку по ключу
func (r *settingsRepository) Set(ctx context.Context, key string, value string) error {
	setting := entity.Setting{
		ID:    uuid.New(),
		Key:   key,
		Value: value,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting)

	if result.Error != nil {
		return fmt.Errorf("failed to set setting: %w", result.Error)
	}

	return nil
}
