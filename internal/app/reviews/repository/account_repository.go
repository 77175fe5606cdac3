package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository создает новый репозиторий учётных записей
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// GetAdminByEmail получает администратора по email
func (r *accountRepository) GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	result := r.db.WithContext(ctx).First(&admin, "email = ?", email)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", result.Error)
	}

	return &admin, nil
}

// CreateAdmin создает администратора
func (r *accountRepository) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	result := r.db.WithContext(ctx).Create(admin)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create admin: %w", result.Error)
	}
	return nil
}

// GetClientByEmail получает клиента по email
func (r *accountRepository) GetClientByEmail(ctx context.Context, email string) (*entity.Client, error) {
	var client entity.Client
	result := r.db.WithContext(ctx).First(&client, "email = ?", email)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", result.Error)
	}

	return &client, nil
}

// GetClientByID получает клиента по ID
func (r *accountRepository) GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	result := r.db.WithContext(ctx).First(&client, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", result.Error)
	}

	return &client, nil
}

// CreateClient создает клиента
func (r *accountRepository) CreateClient(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Create(client)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create client: %w", result.Error)
	}
	return nil
}

// UpdateClient обновляет клиента
func (r *accountRepository) UpdateClient(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Model(client).
		Where("id = ?", client.ID).
		Updates(map[string]interface{}{
			"email":         client.Email,
			"password_hash": client.PasswordHash,
			"name":          client.Name,
			"active":        client.Active,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update client: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteClient удаляет клиента
func (r *accountRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id)

	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListClients возвращает клиентов от новых к старым
func (r *accountRepository) ListClients(ctx context.Context) ([]entity.Client, error) {
	var clients []entity.Client
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&clients)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list clients: %w", result.Error)
	}

	return clients, nil
}
