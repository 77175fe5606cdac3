package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vipreviews/internal/app/reviews/entity"
)

// MockReviewRequestRepository - мок репозитория review requests
type MockReviewRequestRepository struct {
	mock.Mock
}

func (m *MockReviewRequestRepository) Create(ctx context.Context, request *entity.ReviewRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReviewRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) GetByToken(ctx context.Context, token string) (*entity.ReviewRequest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) GetByRedirectID(ctx context.Context, redirectID string) (*entity.ReviewRequest, error) {
	args := m.Called(ctx, redirectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) List(ctx context.Context, limit int) ([]entity.ReviewRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) DeleteByManifest(ctx context.Context, manifestID uuid.UUID) error {
	args := m.Called(ctx, manifestID)
	return args.Error(0)
}

// MockRatingRepository - мок репозитория оценок
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByReviewRequest(ctx context.Context, requestID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByClient(ctx context.Context, clientID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

// MockPrivateFeedbackRepository - мок репозитория внутренних отзывов
type MockPrivateFeedbackRepository struct {
	mock.Mock
}

func (m *MockPrivateFeedbackRepository) Upsert(ctx context.Context, feedback *entity.PrivateFeedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockPrivateFeedbackRepository) GetByReviewRequest(ctx context.Context, requestID uuid.UUID) (*entity.PrivateFeedback, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PrivateFeedback), args.Error(1)
}

func (m *MockPrivateFeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PrivateFeedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PrivateFeedback), args.Error(1)
}

func (m *MockPrivateFeedbackRepository) List(ctx context.Context, limit int) ([]entity.PrivateFeedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PrivateFeedback), args.Error(1)
}

// MockPublicClickRepository - мок журнала кликов по платформам
type MockPublicClickRepository struct {
	mock.Mock
}

func (m *MockPublicClickRepository) Create(ctx context.Context, click *entity.PublicReviewClick) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockPublicClickRepository) CountByPlatform(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockRedirectEventRepository - мок журнала переходов
type MockRedirectEventRepository struct {
	mock.Mock
}

func (m *MockRedirectEventRepository) Create(ctx context.Context, event *entity.RedirectEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRedirectEventRepository) List(ctx context.Context, filter entity.RedirectFilter, limit int) ([]entity.RedirectEvent, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RedirectEvent), args.Error(1)
}

func (m *MockRedirectEventRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockManifestRepository - мок репозитория манифестов
type MockManifestRepository struct {
	mock.Mock
}

func (m *MockManifestRepository) Create(ctx context.Context, manifest *entity.Manifest) error {
	args := m.Called(ctx, manifest)
	return args.Error(0)
}

func (m *MockManifestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Manifest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Manifest), args.Error(1)
}

func (m *MockManifestRepository) List(ctx context.Context) ([]entity.Manifest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Manifest), args.Error(1)
}

func (m *MockManifestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManifestRepository) CreateContacts(ctx context.Context, contacts []entity.Contact) error {
	args := m.Called(ctx, contacts)
	return args.Error(0)
}

func (m *MockManifestRepository) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockManifestRepository) ContactsByManifest(ctx context.Context, manifestID uuid.UUID) ([]entity.Contact, error) {
	args := m.Called(ctx, manifestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contact), args.Error(1)
}

func (m *MockManifestRepository) DeleteContactsByManifest(ctx context.Context, manifestID uuid.UUID) error {
	args := m.Called(ctx, manifestID)
	return args.Error(0)
}

// MockAccountRepository - мок репозитория учётных записей
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}

func (m *MockAccountRepository) CreateAdmin(ctx context.Context, admin *entity.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAccountRepository) GetClientByEmail(ctx context.Context, email string) (*entity.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockAccountRepository) GetClientByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockAccountRepository) CreateClient(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateClient(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) ListClients(ctx context.Context) ([]entity.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Client), args.Error(1)
}

// MockDriverRepository - мок репозитория водителей
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Driver), args.Error(1)
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *entity.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) List(ctx context.Context) ([]entity.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Driver), args.Error(1)
}

// MockSettingsRepository - мок хранилища настроек
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockStatsRepository - мок агрегатных запросов
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) CountRequestsByChannel(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStatsRepository) RatingStats(ctx context.Context) (int64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

func (m *MockStatsRepository) CountPrivateFeedback(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessagePublisher - мок Kafka продюсера
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessageSender - мок провайдера доставки
type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) Send(ctx context.Context, destination, subject, body string) error {
	args := m.Called(ctx, destination, subject, body)
	return args.Error(0)
}

func (m *MockMessageSender) Mode() string {
	args := m.Called()
	return args.String(0)
}
