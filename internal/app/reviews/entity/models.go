package entity

import (
	"time"

	"github.com/google/uuid"
)

// Channel представляет канал доставки review request
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Valid проверяет, что канал известен
func (c Channel) Valid() bool {
	return c == ChannelSMS || c == ChannelEmail
}

// RequestStatus представляет статус review request
// Единственный переход после создания: sent -> failed
type RequestStatus string

const (
	RequestStatusSent      RequestStatus = "sent"
	RequestStatusDelivered RequestStatus = "delivered"
	RequestStatusFailed    RequestStatus = "failed"
)

// Platform представляет внешнюю платформу отзывов
type Platform string

const (
	PlatformGoogle      Platform = "google"
	PlatformYelp        Platform = "yelp"
	PlatformTripAdvisor Platform = "tripadvisor"
)

// Valid проверяет, что платформа известна
func (p Platform) Valid() bool {
	return p == PlatformGoogle || p == PlatformYelp || p == PlatformTripAdvisor
}

// RatingSource различает оценку по ссылке и самостоятельную оценку клиента
type RatingSource string

const (
	RatingSourceRequest RatingSource = "request"
	RatingSourceClient  RatingSource = "client"
)

// Manifest представляет загруженный список контактов
type Manifest struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Columns   string    `json:"columns" gorm:"type:text"` // Исходные колонки CSV (JSON массив)
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Manifest) TableName() string {
	return "manifests"
}

// Contact представляет одного получателя из манифеста
type Contact struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ManifestID uuid.UUID `json:"manifest_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"type:varchar(255)"`
	Phone      string    `json:"phone" gorm:"type:varchar(32)"`
	Email      string    `json:"email" gorm:"type:varchar(255)"`
	Extra      string    `json:"extra,omitempty" gorm:"type:text"` // Остальные поля строки CSV (JSON объект)
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ReviewRequest представляет одно выданное приглашение оценить поездку.
// Токен уникален и неизменен после выдачи.
type ReviewRequest struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	ContactID  uuid.UUID     `json:"contact_id" gorm:"type:uuid;not null;index"`
	ManifestID uuid.UUID     `json:"manifest_id" gorm:"type:uuid;not null;index:idx_review_requests_manifest_sent,priority:1"`
	Token      string        `json:"token" gorm:"type:char(48);not null;uniqueIndex:uk_review_requests_token"`
	Channel    Channel       `json:"channel" gorm:"type:varchar(10);not null"`
	Status     RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'sent'"`
	RedirectID *string       `json:"redirect_id,omitempty" gorm:"type:varchar(64)"`
	SentAt     time.Time     `json:"sent_at" gorm:"autoCreateTime;index:idx_review_requests_manifest_sent,priority:2,sort:desc"`

	Contact  *Contact  `json:"contact,omitempty" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Manifest *Manifest `json:"manifest,omitempty" gorm:"foreignKey:ManifestID;constraint:OnDelete:CASCADE"`
}

func (ReviewRequest) TableName() string {
	return "review_requests"
}

// Rating представляет одну оценку. Два варианта:
//   - source=request: оценка по ссылке, заполнен ReviewRequestID и Value
//   - source=client: самостоятельная оценка клиента, заполнены ClientID,
//     DriverRating и VehicleRating, Value - округлённое среднее
//
// Уникальность по ключу варианта обеспечивается частичными индексами БД.
type Rating struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewRequestID *uuid.UUID   `json:"review_request_id,omitempty" gorm:"type:uuid;uniqueIndex:uk_ratings_review_request,where:review_request_id IS NOT NULL"`
	ClientID        *uuid.UUID   `json:"client_id,omitempty" gorm:"type:uuid;uniqueIndex:uk_ratings_client,where:client_id IS NOT NULL"`
	Source          RatingSource `json:"source" gorm:"type:varchar(10);not null;default:'request'"`
	Value           int          `json:"value" gorm:"not null;check:value >= 1 AND value <= 5"`
	DriverRating    *int         `json:"driver_rating,omitempty" gorm:"check:driver_rating IS NULL OR (driver_rating >= 1 AND driver_rating <= 5)"`
	VehicleRating   *int         `json:"vehicle_rating,omitempty" gorm:"check:vehicle_rating IS NULL OR (vehicle_rating >= 1 AND vehicle_rating <= 5)"`
	PublicComment   string       `json:"public_comment" gorm:"type:text"`
	SubmittedAt     time.Time    `json:"submitted_at" gorm:"autoCreateTime"`

	ReviewRequest *ReviewRequest `json:"review_request,omitempty" gorm:"foreignKey:ReviewRequestID;constraint:OnDelete:CASCADE"`
}

func (Rating) TableName() string {
	return "ratings"
}

// PrivateFeedback представляет внутренний отзыв по одному review request.
// Повторная отправка перезаписывает текст (last write wins).
type PrivateFeedback struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewRequestID uuid.UUID `json:"review_request_id" gorm:"type:uuid;not null;uniqueIndex:uk_private_feedback_review_request"`
	Name            string    `json:"name" gorm:"type:varchar(255)"`
	Email           string    `json:"email" gorm:"type:varchar(255)"`
	Comments        string    `json:"comments" gorm:"type:text"`
	SubmittedAt     time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	ReviewRequest *ReviewRequest `json:"review_request,omitempty" gorm:"foreignKey:ReviewRequestID;constraint:OnDelete:CASCADE"`
}

func (PrivateFeedback) TableName() string {
	return "private_feedback"
}

// PublicReviewClick представляет один клик по внешней платформе (append-only)
type PublicReviewClick struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ReviewRequestID uuid.UUID `json:"review_request_id" gorm:"type:uuid;not null;index"`
	Platform        Platform  `json:"platform" gorm:"type:varchar(20);not null"`
	ClickedAt       time.Time `json:"clicked_at" gorm:"autoCreateTime"`
}

func (PublicReviewClick) TableName() string {
	return "public_review_clicks"
}

// RedirectEvent представляет одно попадание по трекинговой ссылке (append-only)
type RedirectEvent struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	RedirectID      string     `json:"redirect_id" gorm:"type:varchar(64);not null;index:idx_redirect_events_redirect_hit,priority:1"`
	ReviewRequestID *uuid.UUID `json:"review_request_id,omitempty" gorm:"type:uuid;index"`
	IP              string     `json:"ip" gorm:"type:varchar(64)"`
	UserAgent       string     `json:"user_agent" gorm:"type:text"`
	HitAt           time.Time  `json:"hit_at" gorm:"autoCreateTime;index:idx_redirect_events_redirect_hit,priority:2,sort:desc"`
}

func (RedirectEvent) TableName() string {
	return "redirect_events"
}

// Admin представляет учётную запись администратора
type Admin struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Admin) TableName() string {
	return "admins"
}

// Client представляет учётную запись клиента
type Client struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Client) TableName() string {
	return "clients"
}

// Driver представляет водителя из ростера
type Driver struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VipCarNum   string    `json:"vip_car_num" gorm:"type:varchar(32);not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	CarMake     string    `json:"car_make" gorm:"type:varchar(64)"`
	CarModel    string    `json:"car_model" gorm:"type:varchar(64)"`
	CarYear     string    `json:"car_year" gorm:"type:varchar(8)"`
	VehicleType string    `json:"vehicle_type" gorm:"type:varchar(16)"` // Sedan, SUV, Luxury
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Driver) TableName() string {
	return "drivers"
}

// Setting представляет одну запись настроек (значение - JSON)
type Setting struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Key       string    `json:"key" gorm:"type:varchar(64);not null;uniqueIndex"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Setting) TableName() string {
	return "settings"
}

// ReviewFlowEvent представляет событие жизненного цикла для Kafka
type ReviewFlowEvent struct {
	EventType       string    `json:"event_type"` // REQUEST_SENT, RATING_SUBMITTED, PUBLIC_CLICK
	ReviewRequestID string    `json:"review_request_id"`
	Token           string    `json:"token,omitempty"`
	Channel         Channel   `json:"channel,omitempty"`
	Status          string    `json:"status,omitempty"`
	Rating          int       `json:"rating,omitempty"`
	Platform        Platform  `json:"platform,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
