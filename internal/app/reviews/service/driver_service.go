package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
)

// DriverService управляет ростером водителей
type DriverService struct {
	drivers repository.DriverRepository
}

func NewDriverService(drivers repository.DriverRepository) *DriverService {
	return &DriverService{drivers: drivers}
}

// Create добавляет водителя. Номер машины уникален.
func (s *DriverService) Create(ctx context.Context, req *entity.CreateDriverRequest) (*entity.Driver, error) {
	driver := &entity.Driver{
		ID:          uuid.New(),
		VipCarNum:   req.VipCarNum,
		Name:        req.Name,
		CarMake:     req.CarMake,
		CarModel:    req.CarModel,
		CarYear:     req.CarYear,
		VehicleType: req.VehicleType,
	}

	if err := s.drivers.Create(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicateDriver) {
			return nil, ErrDriverExists
		}
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}
	return driver, nil
}

// Get возвращает водителя по ID
func (s *DriverService) Get(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load driver: %w", err)
	}
	return driver, nil
}

// Update обновляет переданные поля водителя
func (s *DriverService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateDriverRequest) (*entity.Driver, error) {
	driver, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.CarMake != nil {
		driver.CarMake = *req.CarMake
	}
	if req.CarModel != nil {
		driver.CarModel = *req.CarModel
	}
	if req.CarYear != nil {
		driver.CarYear = *req.CarYear
	}
	if req.VehicleType != nil {
		driver.VehicleType = *req.VehicleType
	}

	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}
	return driver, nil
}

// Delete удаляет водителя
func (s *DriverService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.drivers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return nil
}

// List возвращает весь ростер
func (s *DriverService) List(ctx context.Context) ([]entity.Driver, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}
