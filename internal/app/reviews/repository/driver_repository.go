package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository создает новый репозиторий водителей
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

// Create создает водителя. Номер машины уникален.
func (r *driverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	result := r.db.WithContext(ctx).Create(driver)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateDriver
		}
		return fmt.Errorf("failed to create driver: %w", result.Error)
	}
	return nil
}

// GetByID получает водителя по ID
func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	var driver entity.Driver
	result := r.db.WithContext(ctx).First(&driver, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", result.Error)
	}

	return &driver, nil
}

// Update обновляет водителя
func (r *driverRepository) Update(ctx context.Context, driver *entity.Driver) error {
	result := r.db.WithContext(ctx).Model(driver).
		Where("id = ?", driver.ID).
		Updates(map[string]interface{}{
			"name":         driver.Name,
			"car_make":     driver.CarMake,
			"car_model":    driver.CarModel,
			"car_year":     driver.CarYear,
			"vehicle_type": driver.VehicleType,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update driver: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет водителя
func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Driver{}, "id = ?", id)

	if result.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List возвращает водителей по номеру машины
func (r *driverRepository) List(ctx context.Context) ([]entity.Driver, error) {
	var drivers []entity.Driver
	result := r.db.WithContext(ctx).Order("vip_car_num ASC").Find(&drivers)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", result.Error)
	}

	return drivers, nil
}
