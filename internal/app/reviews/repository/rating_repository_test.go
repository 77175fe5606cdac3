package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vipreviews/internal/app/reviews/entity"
)

// RatingRepositoryTestSuite тестовый suite для репозитория оценок
type RatingRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  RatingRepository
	sqlDB *sql.DB
}

func TestRatingRepositorySuite(t *testing.T) {
	suite.Run(t, new(RatingRepositoryTestSuite))
}

func (s *RatingRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewRatingRepository(s.db)
}

func (s *RatingRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *RatingRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	requestID := uuid.New()
	rating := &entity.Rating{
		ID:              uuid.New(),
		ReviewRequestID: &requestID,
		Source:          entity.RatingSourceRequest,
		Value:           5,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ratings"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	err := s.repo.Create(ctx, rating)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// Повторная оценка того же review request упирается в частичный
// уникальный индекс, существующая запись не затирается
func (s *RatingRepositoryTestSuite) TestCreate_DuplicateForRequest() {
	ctx := context.Background()
	requestID := uuid.New()
	rating := &entity.Rating{
		ID:              uuid.New(),
		ReviewRequestID: &requestID,
		Source:          entity.RatingSourceRequest,
		Value:           1,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ratings"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_ratings_review_request"})
	s.mock.ExpectRollback()

	err := s.repo.Create(ctx, rating)

	s.ErrorIs(err, ErrDuplicateRating)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestCreate_DuplicateForClient() {
	ctx := context.Background()
	clientID := uuid.New()
	driverRating := 4
	vehicleRating := 5
	rating := &entity.Rating{
		ID:            uuid.New(),
		ClientID:      &clientID,
		Source:        entity.RatingSourceClient,
		Value:         5,
		DriverRating:  &driverRating,
		VehicleRating: &vehicleRating,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "ratings"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_ratings_client"})
	s.mock.ExpectRollback()

	err := s.repo.Create(ctx, rating)

	s.ErrorIs(err, ErrDuplicateRating)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestGetByReviewRequest_Success() {
	ctx := context.Background()
	ratingID := uuid.New()
	requestID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "review_request_id", "client_id", "source", "value", "public_comment", "submitted_at"}).
		AddRow(ratingID, requestID, nil, "request", 4, "Nice ride", time.Now())

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ratings" WHERE review_request_id = $1`)).
		WithArgs(requestID, 1).
		WillReturnRows(rows)

	rating, err := s.repo.GetByReviewRequest(ctx, requestID)

	s.NoError(err)
	s.Equal(ratingID, rating.ID)
	s.Equal(4, rating.Value)
	s.Equal(entity.RatingSourceRequest, rating.Source)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RatingRepositoryTestSuite) TestGetByReviewRequest_NotFound() {
	ctx := context.Background()
	requestID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ratings" WHERE review_request_id = $1`)).
		WithArgs(requestID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	rating, err := s.repo.GetByReviewRequest(ctx, requestID)

	s.ErrorIs(err, ErrNotFound)
	s.Nil(rating)
	s.NoError(s.mock.ExpectationsWereMet())
}
