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

type ratingServiceFixture struct {
	requests  *mocks.MockReviewRequestRepository
	ratings   *mocks.MockRatingRepository
	feedback  *mocks.MockPrivateFeedbackRepository
	clicks    *mocks.MockPublicClickRepository
	settings  *mocks.MockSettingsRepository
	publisher *mocks.MockMessagePublisher
	service   *RatingService
}

func newRatingFixture() *ratingServiceFixture {
	f := &ratingServiceFixture{
		requests:  new(mocks.MockReviewRequestRepository),
		ratings:   new(mocks.MockRatingRepository),
		feedback:  new(mocks.MockPrivateFeedbackRepository),
		clicks:    new(mocks.MockPublicClickRepository),
		settings:  new(mocks.MockSettingsRepository),
		publisher: new(mocks.MockMessagePublisher),
	}
	settingsService := NewSettingsService(f.settings, nil)
	f.service = NewRatingService(f.requests, f.ratings, f.feedback, f.clicks, settingsService, f.publisher)
	return f
}

// Настройки отсутствуют в БД, действуют значения по умолчанию (порог 4)
func (f *ratingServiceFixture) withDefaultSettings(ctx context.Context) {
	f.settings.On("Get", ctx, "ratingPage").Return("", repository.ErrNotFound)
}

func testToken() string {
	return "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
}

func TestGetPage_Success(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{
		ID:      requestID,
		Token:   testToken(),
		Contact: &entity.Contact{Name: "Alice", Email: "alice@example.com"},
	}, nil)
	f.withDefaultSettings(ctx)
	f.ratings.On("GetByReviewRequest", ctx, requestID).Return(nil, repository.ErrNotFound)

	page, err := f.service.GetPage(ctx, testToken())

	assert.NoError(t, err)
	assert.False(t, page.AlreadySubmitted)
	assert.Equal(t, "How was your experience?", page.Title)
	assert.Equal(t, "Alice", page.ContactName)
}

func TestGetPage_AlreadySubmitted(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID}, nil)
	f.withDefaultSettings(ctx)
	f.ratings.On("GetByReviewRequest", ctx, requestID).Return(&entity.Rating{Value: 5}, nil)

	page, err := f.service.GetPage(ctx, testToken())

	assert.NoError(t, err)
	assert.True(t, page.AlreadySubmitted)
	assert.Equal(t, 5, page.Rating)
}

func TestGetPage_UnknownToken(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.requests.On("GetByToken", ctx, testToken()).Return(nil, repository.ErrNotFound)

	page, err := f.service.GetPage(ctx, testToken())

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, page)
}

func TestGetPage_MalformedToken(t *testing.T) {
	f := newRatingFixture()

	page, err := f.service.GetPage(context.Background(), "short")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, page)
	f.requests.AssertNotCalled(t, "GetByToken", mock.Anything, mock.Anything)
}

func TestSubmit_HighRating_RoutesPublic(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID, Token: testToken()}, nil)
	f.withDefaultSettings(ctx)
	f.ratings.On("Create", ctx, mock.AnythingOfType("*entity.Rating")).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := f.service.Submit(ctx, &entity.SubmitRatingRequest{
		Token:  testToken(),
		Rating: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, RoutePublic, response.Route)
	assert.Equal(t, "Thank you for your feedback!", response.ThankYouMessage)
	f.feedback.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSubmit_LowRating_RoutesPrivate(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID, Token: testToken()}, nil)
	f.withDefaultSettings(ctx)
	f.ratings.On("Create", ctx, mock.Anything).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := f.service.Submit(ctx, &entity.SubmitRatingRequest{
		Token:  testToken(),
		Rating: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, RoutePrivate, response.Route)
}

func TestSubmit_ThresholdBoundary(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID}, nil)
	f.withDefaultSettings(ctx)
	f.ratings.On("Create", ctx, mock.Anything).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Оценка равна порогу, уходит в public
	response, err := f.service.Submit(ctx, &entity.SubmitRatingRequest{
		Token:  testToken(),
		Rating: 4,
	})

	assert.NoError(t, err)
	assert.Equal(t, RoutePublic, response.Route)
}

func TestSubmit_LowRatingWithFeedback_SavesFeedback(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{
		ID:      requestID,
		Contact: &entity.Contact{Name: "Bob", Email: "bob@example.com"},
	}, nil)
	f.withDefaultSettings(ctx)
	f.ratings.On("Create", ctx, mock.Anything).Return(nil)
	f.feedback.On("Upsert", ctx, mock.AnythingOfType("*entity.PrivateFeedback")).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := f.service.Submit(ctx, &entity.SubmitRatingRequest{
		Token:           testToken(),
		Rating:          1,
		PrivateFeedback: "Driver was late",
	})

	assert.NoError(t, err)
	assert.Equal(t, RoutePrivate, response.Route)
	f.feedback.AssertCalled(t, "Upsert", ctx, mock.MatchedBy(func(fb *entity.PrivateFeedback) bool {
		return fb.Comments == "Driver was late" && fb.Name == "Bob"
	}))
}

func TestSubmit_Duplicate(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID}, nil)
	f.ratings.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateRating)

	response, err := f.service.Submit(ctx, &entity.SubmitRatingRequest{
		Token:  testToken(),
		Rating: 5,
	})

	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Nil(t, response)
	f.publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrackPublicClick_Success(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID}, nil)
	f.clicks.On("Create", ctx, mock.AnythingOfType("*entity.PublicReviewClick")).Return(nil)
	f.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	err := f.service.TrackPublicClick(ctx, &entity.TrackClickRequest{
		Token:    testToken(),
		Platform: "google",
	})

	assert.NoError(t, err)
	f.clicks.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(click *entity.PublicReviewClick) bool {
		return click.Platform == entity.PlatformGoogle && click.ReviewRequestID == requestID
	}))
}

func TestTrackPublicClick_InvalidPlatform(t *testing.T) {
	f := newRatingFixture()

	err := f.service.TrackPublicClick(context.Background(), &entity.TrackClickRequest{
		Token:    testToken(),
		Platform: "facebook",
	})

	assert.ErrorIs(t, err, ErrInvalidPlatform)
	f.clicks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitPrivateFeedback_RequiresRating(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID}, nil)
	f.ratings.On("GetByReviewRequest", ctx, requestID).Return(nil, repository.ErrNotFound)

	err := f.service.SubmitPrivateFeedback(ctx, &entity.PrivateFeedbackRequest{
		Token:    testToken(),
		Comments: "Too slow",
	})

	assert.ErrorIs(t, err, ErrNoRating)
	f.feedback.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSubmitPrivateFeedback_OverwritesPrevious(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	requestID := uuid.New()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: requestID}, nil)
	f.ratings.On("GetByReviewRequest", ctx, requestID).Return(&entity.Rating{Value: 2}, nil)
	f.feedback.On("Upsert", ctx, mock.Anything).Return(nil)

	err := f.service.SubmitPrivateFeedback(ctx, &entity.PrivateFeedbackRequest{
		Token:    testToken(),
		Name:     "Carol",
		Comments: "Updated comments",
	})

	assert.NoError(t, err)
	f.feedback.AssertCalled(t, "Upsert", ctx, mock.MatchedBy(func(fb *entity.PrivateFeedback) bool {
		return fb.ReviewRequestID == requestID && fb.Comments == "Updated comments"
	}))
}

func TestSubmitClientRating_AveragesAndRounds(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	clientID := uuid.New()

	f.ratings.On("Create", ctx, mock.Anything).Return(nil)

	// (5 + 4) / 2 = 4.5, округляется до 5
	rating, err := f.service.SubmitClientRating(ctx, clientID, &entity.ClientRatingRequest{
		DriverRating:  5,
		VehicleRating: 4,
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, rating.Value)
	assert.Equal(t, entity.RatingSourceClient, rating.Source)
	assert.Equal(t, clientID, *rating.ClientID)
}

func TestSubmitClientRating_Duplicate(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.ratings.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateRating)

	rating, err := f.service.SubmitClientRating(ctx, uuid.New(), &entity.ClientRatingRequest{
		DriverRating:  3,
		VehicleRating: 3,
	})

	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Nil(t, rating)
}

func TestSubmit_RepoError(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	f.requests.On("GetByToken", ctx, testToken()).Return(&entity.ReviewRequest{ID: uuid.New()}, nil)
	f.ratings.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	response, err := f.service.Submit(ctx, &entity.SubmitRatingRequest{
		Token:  testToken(),
		Rating: 3,
	})

	assert.Error(t, err)
	assert.Nil(t, response)
}
