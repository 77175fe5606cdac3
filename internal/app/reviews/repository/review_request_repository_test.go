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

// ReviewRequestRepositoryTestSuite тестовый suite для PostgreSQL repository
type ReviewRequestRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ReviewRequestRepository
	sqlDB *sql.DB
}

func TestReviewRequestRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRequestRepositoryTestSuite))
}

func (s *ReviewRequestRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewReviewRequestRepository(s.db)
}

func (s *ReviewRequestRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

const suiteToken = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

// ===================== Create Tests =====================

func (s *ReviewRequestRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	request := &entity.ReviewRequest{
		ID:         uuid.New(),
		ContactID:  uuid.New(),
		ManifestID: uuid.New(),
		Token:      suiteToken,
		Channel:    entity.ChannelSMS,
		Status:     entity.RequestStatusSent,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "review_requests"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	err := s.repo.Create(ctx, request)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRequestRepositoryTestSuite) TestCreate_DuplicateToken() {
	ctx := context.Background()
	request := &entity.ReviewRequest{
		ID:         uuid.New(),
		ContactID:  uuid.New(),
		ManifestID: uuid.New(),
		Token:      suiteToken,
		Channel:    entity.ChannelEmail,
		Status:     entity.RequestStatusSent,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "review_requests"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_review_requests_token"})
	s.mock.ExpectRollback()

	err := s.repo.Create(ctx, request)

	s.ErrorIs(err, ErrDuplicateToken)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByToken Tests =====================

func (s *ReviewRequestRepositoryTestSuite) TestGetByToken_Success() {
	ctx := context.Background()
	requestID := uuid.New()
	contactID := uuid.New()
	manifestID := uuid.New()
	sentAt := time.Now()

	requestRows := sqlmock.NewRows([]string{"id", "contact_id", "manifest_id", "token", "channel", "status", "redirect_id", "sent_at"}).
		AddRow(requestID, contactID, manifestID, suiteToken, "sms", "sent", nil, sentAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "review_requests" WHERE token = $1`)).
		WithArgs(suiteToken, 1).
		WillReturnRows(requestRows)

	contactRows := sqlmock.NewRows([]string{"id", "manifest_id", "name", "phone", "email"}).
		AddRow(contactID, manifestID, "Alice", "+15550001111", "alice@example.com")

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contacts" WHERE "contacts"."id" = $1`)).
		WithArgs(contactID).
		WillReturnRows(contactRows)

	request, err := s.repo.GetByToken(ctx, suiteToken)

	s.NoError(err)
	s.Equal(requestID, request.ID)
	s.Equal(entity.ChannelSMS, request.Channel)
	s.NotNil(request.Contact)
	s.Equal("Alice", request.Contact.Name)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRequestRepositoryTestSuite) TestGetByToken_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "review_requests" WHERE token = $1`)).
		WithArgs(suiteToken, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	request, err := s.repo.GetByToken(ctx, suiteToken)

	s.ErrorIs(err, ErrNotFound)
	s.Nil(request)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByRedirectID Tests =====================

func (s *ReviewRequestRepositoryTestSuite) TestGetByRedirectID_Success() {
	ctx := context.Background()
	requestID := uuid.New()
	redirectID := "r-1a2b3c4d5e6f7a8b"

	rows := sqlmock.NewRows([]string{"id", "contact_id", "manifest_id", "token", "channel", "status", "redirect_id", "sent_at"}).
		AddRow(requestID, uuid.New(), uuid.New(), suiteToken, "sms", "sent", redirectID, time.Now())

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "review_requests" WHERE redirect_id = $1`)).
		WithArgs(redirectID, 1).
		WillReturnRows(rows)

	request, err := s.repo.GetByRedirectID(ctx, redirectID)

	s.NoError(err)
	s.Equal(requestID, request.ID)
	s.Equal(redirectID, *request.RedirectID)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== MarkFailed Tests =====================

func (s *ReviewRequestRepositoryTestSuite) TestMarkFailed_Success() {
	ctx := context.Background()
	requestID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "review_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.MarkFailed(ctx, requestID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ReviewRequestRepositoryTestSuite) TestMarkFailed_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "review_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.MarkFailed(ctx, uuid.New())

	s.ErrorIs(err, ErrNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== DeleteByManifest Tests =====================

func (s *ReviewRequestRepositoryTestSuite) TestDeleteByManifest_Success() {
	ctx := context.Background()
	manifestID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "review_requests" WHERE manifest_id = $1`)).
		WithArgs(manifestID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	s.mock.ExpectCommit()

	err := s.repo.DeleteByManifest(ctx, manifestID)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}
