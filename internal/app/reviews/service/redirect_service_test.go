package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/internal/app/reviews/repository/mocks"
)

func newRedirectService() (*RedirectService, *mocks.MockReviewRequestRepository, *mocks.MockRedirectEventRepository) {
	requests := new(mocks.MockReviewRequestRepository)
	events := new(mocks.MockRedirectEventRepository)
	return NewRedirectService(requests, events, "http://localhost:3000"), requests, events
}

func TestResolve_WithToken(t *testing.T) {
	service, requests, events := newRedirectService()
	ctx := context.Background()
	requestID := uuid.New()

	requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID, Token: testToken()}, nil)
	events.On("Create", ctx, mock.AnythingOfType("*entity.RedirectEvent")).Return(nil)

	target, err := service.Resolve(ctx, "r-abc123", testToken(), "203.0.113.7", "Mozilla/5.0")

	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/r/"+testToken(), target)
	events.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(event *entity.RedirectEvent) bool {
		return event.RedirectID == "r-abc123" &&
			event.ReviewRequestID != nil &&
			*event.ReviewRequestID == requestID &&
			event.IP == "203.0.113.7"
	}))
}

func TestResolve_TokenUnknown_FallsBackToRedirectID(t *testing.T) {
	service, requests, events := newRedirectService()
	ctx := context.Background()
	requestID := uuid.New()

	requests.On("GetByToken", ctx, testToken()).Return(nil, repository.ErrNotFound)
	requests.On("GetByRedirectID", ctx, "r-abc123").Return(&entity.ReviewRequest{ID: requestID, Token: testToken()}, nil)
	events.On("Create", ctx, mock.Anything).Return(nil)

	target, err := service.Resolve(ctx, "r-abc123", testToken(), "", "")

	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/r/"+testToken(), target)
}

func TestResolve_UnknownRedirect_RecordsAnonymously(t *testing.T) {
	service, requests, events := newRedirectService()
	ctx := context.Background()

	requests.On("GetByRedirectID", ctx, "r-unknown").Return(nil, repository.ErrNotFound)
	events.On("Create", ctx, mock.Anything).Return(nil)

	target, err := service.Resolve(ctx, "r-unknown", "", "198.51.100.1", "curl/8.0")

	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", target)
	events.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(event *entity.RedirectEvent) bool {
		return event.RedirectID == "r-unknown" && event.ReviewRequestID == nil
	}))
}

func TestResolve_JournalErrorDoesNotBlockVisitor(t *testing.T) {
	service, requests, events := newRedirectService()
	ctx := context.Background()

	requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: uuid.New(), Token: testToken()}, nil)
	events.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	target, err := service.Resolve(ctx, "r-abc123", testToken(), "", "")

	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/r/"+testToken(), target)
}

func TestRedirectList_LimitClamped(t *testing.T) {
	service, _, events := newRedirectService()
	ctx := context.Background()

	events.On("List", ctx, entity.RedirectFilter{}, 100).Return([]entity.RedirectEvent{}, nil)

	_, err := service.List(ctx, entity.RedirectFilter{}, 10000)

	assert.NoError(t, err)
	events.AssertCalled(t, "List", ctx, entity.RedirectFilter{}, 100)
}
