package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

type manifestRepository struct {
	db *gorm.DB
}

// NewManifestRepository создает новый репозиторий манифестов и контактов
func NewManifestRepository(db *gorm.DB) ManifestRepository {
	return &manifestRepository{db: db}
}

// Create создает новый манифест
func (r *manifestRepository) Create(ctx context.Context, manifest *entity.Manifest) error {
	result := r.db.WithContext(ctx).Create(manifest)
	if result.Error != nil {
		return fmt.Errorf("failed to create manifest: %w", result.Error)
	}
	return nil
}

// GetByID получает манифест по ID
func (r *manifestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Manifest, error) {
	var manifest entity.Manifest
	result := r.db.WithContext(ctx).First(&manifest, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get manifest: %w", result.Error)
	}

	return &manifest, nil
}

// List возвращает манифесты от новых к старым
func (r *manifestRepository) List(ctx context.Context) ([]entity.Manifest, error) {
	var manifests []entity.Manifest
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&manifests)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", result.Error)
	}

	return manifests, nil
}

// Delete удаляет манифест
func (r *manifestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Manifest{}, "id = ?", id)

	if result.Error != nil {
		return fmt.Errorf("failed to delete manifest: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CreateContacts вставляет контакты манифеста батчем
func (r *manifestRepository) CreateContacts(ctx context.Context, contacts []entity.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).CreateInBatches(contacts, 200)
	if result.Error != nil {
		return fmt.Errorf("failed to create contacts: %w", result.Error)
	}

	return nil
}

// GetContact получает контакт по ID
func (r *manifestRepository) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	result := r.db.WithContext(ctx).First(&contact, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", result.Error)
	}

	return &contact, nil
}

// ContactsByManifest возвращает все контакты манифеста в порядке создания
func (r *manifestRepository) ContactsByManifest(ctx context.Context, manifestID uuid.UUID) ([]entity.Contact, error) {
	var contacts []entity.Contact
	result := r.db.WithContext(ctx).
		Where("manifest_id = ?", manifestID).
		Order("created_at ASC").
		Find(&contacts)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get contacts by manifest: %w", result.Error)
	}

	return contacts, nil
}

// DeleteContactsByManifest удаляет все контакты манифеста
func (r *manifestRepository) DeleteContactsByManifest(ctx context.Context, manifestID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("manifest_id = ?", manifestID).
		Delete(&entity.Contact{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete contacts by manifest: %w", result.Error)
	}

	return nil
}
