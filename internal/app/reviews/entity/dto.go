package entity

import (
	"time"

	"github.com/google/uuid"
)

// SendReviewRequest - запрос на массовую или одиночную рассылку.
// Указывается либо ManifestID (все контакты манифеста), либо ContactID.
type SendReviewRequest struct {
	ManifestID     *uuid.UUID `json:"manifestId" validate:"required_without=ContactID"`
	ContactID      *uuid.UUID `json:"contactId" validate:"required_without=ManifestID"`
	Channel        string     `json:"channel" validate:"required,oneof=sms email"`
	Message        string     `json:"message" validate:"omitempty,max=1000"`
	TrackRedirects bool       `json:"trackRedirects"`
}

// SendResult - агрегат рассылки
type SendResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// RatingPageResponse - данные для страницы оценки
type RatingPageResponse struct {
	AlreadySubmitted bool   `json:"alreadySubmitted"`
	Rating           int    `json:"rating,omitempty"`
	Title            string `json:"title,omitempty"`
	Subtitle         string `json:"subtitle,omitempty"`
	ContactName      string `json:"contactName,omitempty"`
	ContactEmail     string `json:"contactEmail,omitempty"`
}

// SubmitRatingRequest - отправка оценки по токену
type SubmitRatingRequest struct {
	Token           string `json:"token" validate:"required,len=48,hexadecimal"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	PublicComment   string `json:"publicComment" validate:"omitempty,max=2000"`
	PrivateFeedback string `json:"privateFeedback" validate:"omitempty,max=5000"`
}

// SubmitRatingResponse - подтверждение с маршрутом дальнейшего шага
type SubmitRatingResponse struct {
	ThankYouMessage string `json:"thankYouMessage"`
	Route           string `json:"route"` // public или private
}

// TrackClickRequest - фиксация клика по внешней платформе
type TrackClickRequest struct {
	Token    string `json:"token" validate:"required,len=48,hexadecimal"`
	Platform string `json:"platform" validate:"required,oneof=google yelp tripadvisor"`
}

// PrivateFeedbackRequest - отправка внутреннего отзыва
type PrivateFeedbackRequest struct {
	Token    string `json:"token" validate:"required,len=48,hexadecimal"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Comments string `json:"comments" validate:"required,max=5000"`
}

// ClientRatingRequest - самостоятельная оценка клиента.
// Итоговое значение - округлённое среднее двух под-оценок.
type ClientRatingRequest struct {
	DriverRating  int    `json:"driverRating" validate:"required,min=1,max=5"`
	VehicleRating int    `json:"vehicleRating" validate:"required,min=1,max=5"`
	PublicComment string `json:"publicComment" validate:"omitempty,max=2000"`
}

// LoginRequest - вход администратора или клиента
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin client"`
}

// LoginResponse - выданный токен и данные учётной записи
type LoginResponse struct {
	Token string      `json:"token"`
	Role  string      `json:"role"`
	User  AccountInfo `json:"user"`
}

// AccountInfo - публичные поля учётной записи
type AccountInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// CreateClientRequest - создание клиента администратором
type CreateClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=120"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	Active   *bool  `json:"active"`
}

// UpdateClientRequest - обновление клиента
type UpdateClientRequest struct {
	Email    string  `json:"email" validate:"omitempty,email"`
	Password string  `json:"password" validate:"omitempty,min=8,max=120"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Active   *bool   `json:"active"`
}

// CreateDriverRequest - создание водителя
type CreateDriverRequest struct {
	VipCarNum   string `json:"vipCarNum" validate:"required,max=32"`
	Name        string `json:"name" validate:"required,max=255"`
	CarMake     string `json:"carMake" validate:"omitempty,max=64"`
	CarModel    string `json:"carModel" validate:"omitempty,max=64"`
	CarYear     string `json:"carYear" validate:"omitempty,max=8"`
	VehicleType string `json:"vehicleType" validate:"omitempty,oneof=Sedan SUV Luxury"`
}

// UpdateDriverRequest - обновление водителя
type UpdateDriverRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	CarMake     *string `json:"carMake" validate:"omitempty,max=64"`
	CarModel    *string `json:"carModel" validate:"omitempty,max=64"`
	CarYear     *string `json:"carYear" validate:"omitempty,max=8"`
	VehicleType *string `json:"vehicleType" validate:"omitempty,oneof=Sedan SUV Luxury"`
}

// RatingPageSettings - копия страницы оценки и порог маршрутизации
type RatingPageSettings struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ThankYouMessage string `json:"thankYouMessage"`
	Threshold       int    `json:"threshold"` // Оценка >= Threshold уходит в public promotion
}

// PlatformURLs - ссылки на внешние платформы отзывов
type PlatformURLs struct {
	Google      string `json:"google"`
	Yelp        string `json:"yelp"`
	TripAdvisor string `json:"tripAdvisor"`
}

// UpdateSettingsRequest - частичное обновление настроек
type UpdateSettingsRequest struct {
	RatingPage   *RatingPageSettings `json:"ratingPage"`
	PlatformURLs *PlatformURLs       `json:"platformUrls"`
}

// SettingsResponse - текущие настройки
type SettingsResponse struct {
	RatingPage   RatingPageSettings `json:"ratingPage"`
	PlatformURLs PlatformURLs       `json:"platformUrls"`
}

// RedirectFilter - фильтры аудита переходов
type RedirectFilter struct {
	RedirectID string
	From       *time.Time
	To         *time.Time
}

// DashboardStats - агрегаты для дашборда
type DashboardStats struct {
	RequestsTotal     int64            `json:"requestsTotal"`
	RequestsByStatus  map[string]int64 `json:"requestsByStatus"`
	RequestsByChannel map[string]int64 `json:"requestsByChannel"`
	RatingsTotal      int64            `json:"ratingsTotal"`
	RatingsAverage    float64          `json:"ratingsAverage"`
	ClicksByPlatform  map[string]int64 `json:"clicksByPlatform"`
	PrivateFeedback   int64            `json:"privateFeedback"`
	RedirectHits      int64            `json:"redirectHits"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

// ManifestWithContacts - манифест вместе с контактами
type ManifestWithContacts struct {
	Manifest
	Contacts []Contact `json:"contacts"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
