package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/infrastructure"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/pkg/logger"
)

// Попытки пересоздания токена при коллизии уникального индекса
const tokenCreateAttempts = 3

// SendService выполняет рассылку приглашений оценить поездку.
// Запись review request создаётся до попытки доставки, поэтому токен
// остаётся действительным даже при сбое провайдера.
type SendService struct {
	requests   repository.ReviewRequestRepository
	manifests  repository.ManifestRepository
	dispatcher *Dispatcher
	publisher  infrastructure.MessagePublisher
	publicURL  string
	apiURL     string
}

func NewSendService(
	requests repository.ReviewRequestRepository,
	manifests repository.ManifestRepository,
	dispatcher *Dispatcher,
	publisher infrastructure.MessagePublisher,
	publicURL string,
	apiURL string,
) *SendService {
	return &SendService{
		requests:   requests,
		manifests:  manifests,
		dispatcher: dispatcher,
		publisher:  publisher,
		publicURL:  publicURL,
		apiURL:     apiURL,
	}
}

// Send рассылает приглашения контактам манифеста или одному контакту.
// Сбой одного получателя не прерывает обработку остальных.
func (s *SendService) Send(ctx context.Context, req *entity.SendReviewRequest) (*entity.SendResult, error) {
	channel := entity.Channel(req.Channel)
	if !channel.Valid() {
		return nil, ErrInvalidChannel
	}

	contacts, manifestID, err := s.resolveContacts(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &entity.SendResult{}
	for i := range contacts {
		if err := s.sendOne(ctx, &contacts[i], manifestID, channel, req.Message, req.TrackRedirects); err != nil {
			result.Failed++
			logger.Warn().Err(err).
				Str("contact_id", contacts[i].ID.String()).
				Str("channel", string(channel)).
				Msg("Failed to send review request")
			continue
		}
		result.Sent++
	}

	logger.Info().
		Int("sent", result.Sent).
		Int("failed", result.Failed).
		Str("channel", string(channel)).
		Str("mode", s.dispatcher.Mode(channel)).
		Msg("Review request batch completed")

	return result, nil
}

// List возвращает последние review requests для админки
func (s *SendService) List(ctx context.Context, limit int) ([]entity.ReviewRequest, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	requests, err := s.requests.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list review requests: %w", err)
	}
	return requests, nil
}

// resolveContacts определяет получателей рассылки
func (s *SendService) resolveContacts(ctx context.Context, req *entity.SendReviewRequest) ([]entity.Contact, uuid.UUID, error) {
	if req.ContactID != nil {
		contact, err := s.manifests.GetContact(ctx, *req.ContactID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, uuid.Nil, ErrContactNotFound
			}
			return nil, uuid.Nil, fmt.Errorf("failed to load contact: %w", err)
		}
		return []entity.Contact{*contact}, contact.ManifestID, nil
	}

	if req.ManifestID == nil {
		return nil, uuid.Nil, ErrManifestNotFound
	}

	if _, err := s.manifests.GetByID(ctx, *req.ManifestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, uuid.Nil, ErrManifestNotFound
		}
		return nil, uuid.Nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	contacts, err := s.manifests.ContactsByManifest(ctx, *req.ManifestID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	if len(contacts) == 0 {
		return nil, uuid.Nil, ErrNoContacts
	}
	return contacts, *req.ManifestID, nil
}

// sendOne выдаёт токен, сохраняет запись и отправляет приглашение одному контакту
func (s *SendService) sendOne(ctx context.Context, contact *entity.Contact, manifestID uuid.UUID, channel entity.Channel, message string, trackRedirects bool) error {
	destination := s.destinationFor(contact, channel)
	if destination == "" {
		return ErrNoDestination
	}

	request, err := s.createRequest(ctx, contact, manifestID, channel, trackRedirects)
	if err != nil {
		return err
	}

	link := s.ratingLink(request)
	if err := s.dispatcher.Dispatch(ctx, channel, destination, message, link); err != nil {
		if markErr := s.requests.MarkFailed(ctx, request.ID); markErr != nil {
			logger.Error().Err(markErr).
				Str("review_request_id", request.ID.String()).
				Msg("Failed to mark review request as failed")
		}
		return err
	}

	publishEvent(ctx, s.publisher, entity.ReviewFlowEvent{
		EventType:       eventRequestSent,
		ReviewRequestID: request.ID.String(),
		Token:           request.Token,
		Channel:         channel,
		Status:          string(entity.RequestStatusSent),
		Timestamp:       time.Now(),
	})
	return nil
}

// createRequest сохраняет review request, пересоздавая токен при коллизии
func (s *SendService) createRequest(ctx context.Context, contact *entity.Contact, manifestID uuid.UUID, channel entity.Channel, trackRedirects bool) (*entity.ReviewRequest, error) {
	for attempt := 0; attempt < tokenCreateAttempts; attempt++ {
		token, err := generateToken()
		if err != nil {
			return nil, err
		}

		request := &entity.ReviewRequest{
			ID:         uuid.New(),
			ContactID:  contact.ID,
			ManifestID: manifestID,
			Token:      token,
			Channel:    channel,
			Status:     entity.RequestStatusSent,
		}

		if trackRedirects {
			redirectID, err := generateRedirectID()
			if err != nil {
				return nil, err
			}
			request.RedirectID = &redirectID
		}

		err = s.requests.Create(ctx, request)
		if err == nil {
			return request, nil
		}
		if !errors.Is(err, repository.ErrDuplicateToken) {
			return nil, fmt.Errorf("failed to create review request: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to create review request: token collisions exhausted %d attempts", tokenCreateAttempts)
}

// destinationFor возвращает адрес доставки контакта для канала
func (s *SendService) destinationFor(contact *entity.Contact, channel entity.Channel) string {
	switch channel {
	case entity.ChannelSMS:
		return contact.Phone
	case entity.ChannelEmail:
		return contact.Email
	}
	return ""
}

// ratingLink строит ссылку приглашения: трекинговую или прямую
func (s *SendService) ratingLink(request *entity.ReviewRequest) string {
	if request.RedirectID != nil {
		return fmt.Sprintf("%s/go/%s", s.apiURL, *request.RedirectID)
	}
	return fmt.Sprintf("%s/r/%s", s.publicURL, request.Token)
}
