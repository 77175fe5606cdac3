package service

import (
	"context"
	"encoding/json"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/infrastructure"
	"vipreviews/pkg/logger"
)

const (
	eventRequestSent     = "REQUEST_SENT"
	eventRatingSubmitted = "RATING_SUBMITTED"
	eventPublicClick     = "PUBLIC_CLICK"
)

// publishEvent отправляет событие жизненного цикла в Kafka.
// Ошибка публикации логируется и не прерывает основную операцию.
func publishEvent(ctx context.Context, publisher infrastructure.MessagePublisher, event entity.ReviewFlowEvent) {
	if publisher == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal review flow event")
		return
	}

	if err := publisher.PublishMessage(ctx, []byte(event.ReviewRequestID), payload); err != nil {
		logger.Error().Err(err).
			Str("event_type", event.EventType).
			Str("review_request_id", event.ReviewRequestID).
			Msg("Failed to publish review flow event")
	}
}
