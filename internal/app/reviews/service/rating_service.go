package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/infrastructure"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/pkg/logger"
	"vipreviews/pkg/metrics"
)

// Маршруты дальнейшего шага после оценки
const (
	RoutePublic  = "public"
	RoutePrivate = "private"
)

// RatingService принимает оценки и маршрутизирует дальнейший шаг:
// высокие оценки уходят на внешние платформы, низкие - во внутренний отзыв.
type RatingService struct {
	requests  repository.ReviewRequestRepository
	ratings   repository.RatingRepository
	feedback  repository.PrivateFeedbackRepository
	clicks    repository.PublicClickRepository
	settings  *SettingsService
	publisher infrastructure.MessagePublisher
}

func NewRatingService(
	requests repository.ReviewRequestRepository,
	ratings repository.RatingRepository,
	feedback repository.PrivateFeedbackRepository,
	clicks repository.PublicClickRepository,
	settings *SettingsService,
	publisher infrastructure.MessagePublisher,
) *RatingService {
	return &RatingService{
		requests:  requests,
		ratings:   ratings,
		feedback:  feedback,
		clicks:    clicks,
		settings:  settings,
		publisher: publisher,
	}
}

// GetPage возвращает данные страницы оценки по токену
func (s *RatingService) GetPage(ctx context.Context, token string) (*entity.RatingPageResponse, error) {
	request, err := s.requestByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	pageSettings, err := s.settings.GetRatingPage(ctx)
	if err != nil {
		return nil, err
	}

	response := &entity.RatingPageResponse{
		Title:    pageSettings.Title,
		Subtitle: pageSettings.Subtitle,
	}
	if request.Contact != nil {
		response.ContactName = request.Contact.Name
		response.ContactEmail = request.Contact.Email
	}

	rating, err := s.ratings.GetByReviewRequest(ctx, request.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing rating: %w", err)
	}
	if rating != nil {
		response.AlreadySubmitted = true
		response.Rating = rating.Value
	}

	return response, nil
}

// Submit принимает оценку по токену. Повторная отправка отклоняется:
// гонка двух запросов разрешается уникальным индексом БД, проигравший
// получает ErrAlreadySubmitted.
func (s *RatingService) Submit(ctx context.Context, req *entity.SubmitRatingRequest) (*entity.SubmitRatingResponse, error) {
	request, err := s.requestByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	rating := &entity.Rating{
		ID:              uuid.New(),
		ReviewRequestID: &request.ID,
		Source:          entity.RatingSourceRequest,
		Value:           req.Rating,
		PublicComment:   req.PublicComment,
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicateRating) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	metrics.RecordRating(string(entity.RatingSourceRequest), req.Rating)

	pageSettings, err := s.settings.GetRatingPage(ctx)
	if err != nil {
		return nil, err
	}

	route := RoutePrivate
	if req.Rating >= pageSettings.Threshold {
		route = RoutePublic
	}

	// Низкая оценка может сразу принести текст внутреннего отзыва
	if route == RoutePrivate && req.PrivateFeedback != "" {
		feedback := &entity.PrivateFeedback{
			ID:              uuid.New(),
			ReviewRequestID: request.ID,
			Comments:        req.PrivateFeedback,
		}
		if request.Contact != nil {
			feedback.Name = request.Contact.Name
			feedback.Email = request.Contact.Email
		}
		if err := s.feedback.Upsert(ctx, feedback); err != nil {
			logger.Error().Err(err).
				Str("review_request_id", request.ID.String()).
				Msg("Failed to save private feedback with rating")
		} else {
			metrics.PrivateFeedbackSaved.Inc()
		}
	}

	publishEvent(ctx, s.publisher, entity.ReviewFlowEvent{
		EventType:       eventRatingSubmitted,
		ReviewRequestID: request.ID.String(),
		Token:           request.Token,
		Rating:          req.Rating,
		Timestamp:       time.Now(),
	})

	logger.Info().
		Str("review_request_id", request.ID.String()).
		Int("rating", req.Rating).
		Str("route", route).
		Msg("Rating submitted")

	return &entity.SubmitRatingResponse{
		ThankYouMessage: pageSettings.ThankYouMessage,
		Route:           route,
	}, nil
}

// TrackPublicClick фиксирует клик по внешней платформе (append-only)
func (s *RatingService) TrackPublicClick(ctx context.Context, req *entity.TrackClickRequest) error {
	platform := entity.Platform(req.Platform)
	if !platform.Valid() {
		return ErrInvalidPlatform
	}

	request, err := s.requestByToken(ctx, req.Token)
	if err != nil {
		return err
	}

	click := &entity.PublicReviewClick{
		ID:              uuid.New(),
		ReviewRequestID: request.ID,
		Platform:        platform,
	}
	if err := s.clicks.Create(ctx, click); err != nil {
		return fmt.Errorf("failed to save public click: %w", err)
	}

	metrics.PublicClicksTracked.WithLabelValues(string(platform)).Inc()

	publishEvent(ctx, s.publisher, entity.ReviewFlowEvent{
		EventType:       eventPublicClick,
		ReviewRequestID: request.ID.String(),
		Platform:        platform,
		Timestamp:       time.Now(),
	})
	return nil
}

// SubmitPrivateFeedback сохраняет внутренний отзыв. Требует уже
// отправленной оценки по токену, повторная отправка перезаписывает текст.
func (s *RatingService) SubmitPrivateFeedback(ctx context.Context, req *entity.PrivateFeedbackRequest) error {
	request, err := s.requestByToken(ctx, req.Token)
	if err != nil {
		return err
	}

	if _, err := s.ratings.GetByReviewRequest(ctx, request.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoRating
		}
		return fmt.Errorf("failed to check rating: %w", err)
	}

	feedback := &entity.PrivateFeedback{
		ID:              uuid.New(),
		ReviewRequestID: request.ID,
		Name:            req.Name,
		Email:           req.Email,
		Comments:        req.Comments,
	}
	if err := s.feedback.Upsert(ctx, feedback); err != nil {
		return fmt.Errorf("failed to save private feedback: %w", err)
	}

	metrics.PrivateFeedbackSaved.Inc()
	logger.Info().
		Str("review_request_id", request.ID.String()).
		Msg("Private feedback saved")
	return nil
}

// ListFeedback возвращает последние private feedback для админки
func (s *RatingService) ListFeedback(ctx context.Context, limit int) ([]entity.PrivateFeedback, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	feedback, err := s.feedback.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list private feedback: %w", err)
	}
	return feedback, nil
}

// GetFeedback возвращает один private feedback с review request
func (s *RatingService) GetFeedback(ctx context.Context, id uuid.UUID) (*entity.PrivateFeedback, error) {
	feedback, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load private feedback: %w", err)
	}
	return feedback, nil
}

// SubmitClientRating сохраняет самостоятельную оценку клиента.
// Итоговое значение - округлённое среднее оценок водителя и автомобиля.
func (s *RatingService) SubmitClientRating(ctx context.Context, clientID uuid.UUID, req *entity.ClientRatingRequest) (*entity.Rating, error) {
	value := int(math.Round(float64(req.DriverRating+req.VehicleRating) / 2))

	rating := &entity.Rating{
		ID:            uuid.New(),
		ClientID:      &clientID,
		Source:        entity.RatingSourceClient,
		Value:         value,
		DriverRating:  &req.DriverRating,
		VehicleRating: &req.VehicleRating,
		PublicComment: req.PublicComment,
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicateRating) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to save client rating: %w", err)
	}

	metrics.RecordRating(string(entity.RatingSourceClient), value)
	logger.Info().
		Str("client_id", clientID.String()).
		Int("rating", value).
		Msg("Client rating submitted")
	return rating, nil
}

// GetClientRating возвращает оценку клиента, если она была отправлена
func (s *RatingService) GetClientRating(ctx context.Context, clientID uuid.UUID) (*entity.Rating, error) {
	rating, err := s.ratings.GetByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load client rating: %w", err)
	}
	return rating, nil
}

// requestByToken ищет review request по токену
func (s *RatingService) requestByToken(ctx context.Context, token string) (*entity.ReviewRequest, error) {
	if len(token) != tokenBytes*2 {
		return nil, ErrInvalidToken
	}
	request, err := s.requests.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load review request: %w", err)
	}
	return request, nil
}
