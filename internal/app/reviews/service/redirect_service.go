package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/pkg/logger"
	"vipreviews/pkg/metrics"
)

// RedirectService журналирует переходы по трекинговым ссылкам.
// Неизвестный redirect id не ошибка: попадание фиксируется анонимно,
// а посетитель в любом случае уходит на страницу оценки.
type RedirectService struct {
	requests  repository.ReviewRequestRepository
	events    repository.RedirectEventRepository
	publicURL string
}

func NewRedirectService(
	requests repository.ReviewRequestRepository,
	events repository.RedirectEventRepository,
	publicURL string,
) *RedirectService {
	return &RedirectService{
		requests:  requests,
		events:    events,
		publicURL: publicURL,
	}
}

// Resolve записывает попадание и возвращает адрес перенаправления.
// Токен из query-параметра имеет приоритет при построении цели.
func (s *RedirectService) Resolve(ctx context.Context, redirectID, token, ip, userAgent string) (string, error) {
	event := &entity.RedirectEvent{
		ID:         uuid.New(),
		RedirectID: redirectID,
		IP:         ip,
		UserAgent:  userAgent,
	}

	resolvedToken := token
	resolved := false
	if token != "" {
		if request, err := s.requests.GetByToken(ctx, token); err == nil {
			event.ReviewRequestID = &request.ID
			resolved = true
		}
	}
	if !resolved {
		// Поиск владельца ссылки по самому redirect id
		if request, err := s.findByRedirectID(ctx, redirectID); err == nil && request != nil {
			event.ReviewRequestID = &request.ID
			resolvedToken = request.Token
			resolved = true
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		// Журнал не должен ломать переход посетителя
		logger.Error().Err(err).Str("redirect_id", redirectID).Msg("Failed to record redirect hit")
	}
	metrics.RedirectHits.WithLabelValues(fmt.Sprintf("%t", resolved)).Inc()

	if resolvedToken != "" {
		return fmt.Sprintf("%s/r/%s", s.publicURL, resolvedToken), nil
	}
	return s.publicURL, nil
}

// List возвращает журнал переходов с фильтрами
func (s *RedirectService) List(ctx context.Context, filter entity.RedirectFilter, limit int) ([]entity.RedirectEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	events, err := s.events.List(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list redirect events: %w", err)
	}
	return events, nil
}

// findByRedirectID ищет review request по идентификатору трекинговой ссылки
func (s *RedirectService) findByRedirectID(ctx context.Context, redirectID string) (*entity.ReviewRequest, error) {
	return s.requests.GetByRedirectID(ctx, redirectID)
}
