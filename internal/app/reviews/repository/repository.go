package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateToken  = errors.New("token already exists")
	ErrDuplicateRating = errors.New("rating already exists")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateDriver = errors.New("driver already exists")
)

// ReviewRequestRepository определяет методы для работы с review requests
type ReviewRequestRepository interface {
	Create(ctx context.Context, request *entity.ReviewRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReviewRequest, error)
	GetByToken(ctx context.Context, token string) (*entity.ReviewRequest, error)
	GetByRedirectID(ctx context.Context, redirectID string) (*entity.ReviewRequest, error)
	MarkFailed(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]entity.ReviewRequest, error)
	DeleteByManifest(ctx context.Context, manifestID uuid.UUID) error
}

// RatingRepository определяет методы для работы с оценками
type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	GetByReviewRequest(ctx context.Context, requestID uuid.UUID) (*entity.Rating, error)
	GetByClient(ctx context.Context, clientID uuid.UUID) (*entity.Rating, error)
}

// PrivateFeedbackRepository определяет методы для работы с внутренними отзывами
type PrivateFeedbackRepository interface {
	Upsert(ctx context.Context, feedback *entity.PrivateFeedback) error
	GetByReviewRequest(ctx context.Context, requestID uuid.UUID) (*entity.PrivateFeedback, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PrivateFeedback, error)
	List(ctx context.Context, limit int) ([]entity.PrivateFeedback, error)
}

// PublicClickRepository определяет методы для журнала кликов по платформам
type PublicClickRepository interface {
	Create(ctx context.Context, click *entity.PublicReviewClick) error
	CountByPlatform(ctx context.Context) (map[string]int64, error)
}

// RedirectEventRepository определяет методы для журнала переходов
type RedirectEventRepository interface {
	Create(ctx context.Context, event *entity.RedirectEvent) error
	List(ctx context.Context, filter entity.RedirectFilter, limit int) ([]entity.RedirectEvent, error)
	Count(ctx context.Context) (int64, error)
}

// ManifestRepository определяет методы для манифестов и их контактов
type ManifestRepository interface {
	Create(ctx context.Context, manifest *entity.Manifest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Manifest, error)
	List(ctx context.Context) ([]entity.Manifest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateContacts(ctx context.Context, contacts []entity.Contact) error
	GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	ContactsByManifest(ctx context.Context, manifestID uuid.UUID) ([]entity.Contact, error)
	DeleteContactsByManifest(ctx context.Context, manifestID uuid.UUID) error
}

// AccountRepository определяет методы для учётных записей администраторов и клиентов
type AccountRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
	CreateAdmin(ctx context.Context, admin *entity.Admin) error
	GetClientByEmail(ctx context.Context, email string) (*entity.Client, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	CreateClient(ctx context.Context, client *entity.Client) error
	UpdateClient(ctx context.Context, client *entity.Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ListClients(ctx context.Context) ([]entity.Client, error)
}

// DriverRepository определяет методы для ростера водителей
type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	Update(ctx context.Context, driver *entity.Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Driver, error)
}

// SettingsRepository определяет методы для хранилища настроек
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// StatsRepository определяет агрегатные запросы для дашборда
type StatsRepository interface {
	CountRequestsByStatus(ctx context.Context) (map[string]int64, error)
	CountRequestsByChannel(ctx context.Context) (map[string]int64, error)
	RatingStats(ctx context.Context) (count int64, average float64, err error)
	CountPrivateFeedback(ctx context.Context) (int64, error)
}

// isUniqueViolation распознаёт нарушение уникального индекса PostgreSQL
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
