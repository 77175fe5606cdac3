package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/pkg/logger"
)

// ManifestService импортирует CSV манифесты и управляет их жизненным циклом
type ManifestService struct {
	manifests repository.ManifestRepository
	requests  repository.ReviewRequestRepository
}

func NewManifestService(
	manifests repository.ManifestRepository,
	requests repository.ReviewRequestRepository,
) *ManifestService {
	return &ManifestService{
		manifests: manifests,
		requests:  requests,
	}
}

// Import разбирает CSV и сохраняет манифест с контактами.
// Колонки имени, телефона и email распознаются по заголовкам,
// остальные поля строки сохраняются в Extra как JSON.
func (s *ManifestService) Import(ctx context.Context, name string, reader io.Reader) (*entity.ManifestWithContacts, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("failed to read manifest header: %w", err)
	}

	cols := newColumnMap(header)

	manifest := &entity.Manifest{
		ID:   uuid.New(),
		Name: name,
	}
	if rawCols, err := json.Marshal(header); err == nil {
		manifest.Columns = string(rawCols)
	}

	var contacts []entity.Contact
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest row: %w", err)
		}

		contact := cols.contact(row)
		if contact.Name == "" && contact.Phone == "" && contact.Email == "" {
			continue
		}
		contact.ID = uuid.New()
		contact.ManifestID = manifest.ID
		contacts = append(contacts, contact)
	}

	if len(contacts) == 0 {
		return nil, ErrEmptyManifest
	}

	if err := s.manifests.Create(ctx, manifest); err != nil {
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}
	if err := s.manifests.CreateContacts(ctx, contacts); err != nil {
		return nil, fmt.Errorf("failed to save manifest contacts: %w", err)
	}

	logger.Info().
		Str("manifest_id", manifest.ID.String()).
		Str("name", name).
		Int("contacts", len(contacts)).
		Msg("Manifest imported")

	return &entity.ManifestWithContacts{
		Manifest: *manifest,
		Contacts: contacts,
	}, nil
}

// List возвращает все манифесты
func (s *ManifestService) List(ctx context.Context) ([]entity.Manifest, error) {
	manifests, err := s.manifests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list manifests: %w", err)
	}
	return manifests, nil
}

// Get возвращает манифест с контактами
func (s *ManifestService) Get(ctx context.Context, id uuid.UUID) (*entity.ManifestWithContacts, error) {
	manifest, err := s.manifests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	contacts, err := s.manifests.ContactsByManifest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest contacts: %w", err)
	}

	return &entity.ManifestWithContacts{
		Manifest: *manifest,
		Contacts: contacts,
	}, nil
}

// Delete удаляет манифест вместе с контактами и review requests.
// Порядок: сначала зависимые записи, затем сам манифест.
func (s *ManifestService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.manifests.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrManifestNotFound
		}
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	if err := s.requests.DeleteByManifest(ctx, id); err != nil {
		return fmt.Errorf("failed to delete manifest review requests: %w", err)
	}
	if err := s.manifests.DeleteContactsByManifest(ctx, id); err != nil {
		return fmt.Errorf("failed to delete manifest contacts: %w", err)
	}
	if err := s.manifests.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete manifest: %w", err)
	}

	logger.Info().Str("manifest_id", id.String()).Msg("Manifest deleted")
	return nil
}

// columnMap сопоставляет известные роли колонок их индексам
type columnMap struct {
	header     []string
	firstName  int
	lastName   int
	name       int
	phone      int
	email      int
}

// newColumnMap распознаёт роли колонок по заголовкам CSV.
// Поддерживаются заголовки ростеров (PassengerFirstName и т.п.)
// и обобщённые (name, phone, email).
func newColumnMap(header []string) columnMap {
	cols := columnMap{
		header:    header,
		firstName: -1,
		lastName:  -1,
		name:      -1,
		phone:     -1,
		email:     -1,
	}

	for i, raw := range header {
		key := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case key == "passengerfirstname" || key == "firstname" || key == "first_name":
			cols.firstName = i
		case key == "passengerlastname" || key == "lastname" || key == "last_name":
			cols.lastName = i
		case key == "passengercellphonenumber" || strings.Contains(key, "phone"):
			if cols.phone == -1 {
				cols.phone = i
			}
		case key == "passengeremailaddress" || strings.Contains(key, "email"):
			if cols.email == -1 {
				cols.email = i
			}
		case key == "name" || strings.Contains(key, "passenger name"):
			if cols.name == -1 {
				cols.name = i
			}
		}
	}

	return cols
}

// contact собирает контакт из строки CSV
func (c columnMap) contact(row []string) entity.Contact {
	contact := entity.Contact{
		Name:  c.value(row, c.name),
		Phone: strings.TrimSpace(c.value(row, c.phone)),
		Email: strings.TrimSpace(c.value(row, c.email)),
	}

	if contact.Name == "" {
		first := c.value(row, c.firstName)
		last := c.value(row, c.lastName)
		contact.Name = strings.TrimSpace(first + " " + last)
	}

	extra := make(map[string]string)
	for i, raw := range row {
		if i == c.name || i == c.firstName || i == c.lastName || i == c.phone || i == c.email {
			continue
		}
		if i < len(c.header) && strings.TrimSpace(raw) != "" {
			extra[c.header[i]] = raw
		}
	}
	if len(extra) > 0 {
		if rawExtra, err := json.Marshal(extra); err == nil {
			contact.Extra = string(rawExtra)
		}
	}

	return contact
}

func (c columnMap) value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
