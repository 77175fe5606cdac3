package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SettingsRepositoryTestSuite тестовый suite для хранилища настроек
type SettingsRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  SettingsRepository
	sqlDB *sql.DB
}

func TestSettingsRepositorySuite(t *testing.T) {
	suite.Run(t, new(SettingsRepositoryTestSuite))
}

func (s *SettingsRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewSettingsRepository(s.db)
}

func (s *SettingsRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *SettingsRepositoryTestSuite) TestGet_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "key", "value", "updated_at"}).
		AddRow(uuid.New(), "ratingPage", `{"title":"Rate us","threshold":4}`, time.Now())

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "settings" WHERE key = $1`)).
		WithArgs("ratingPage", 1).
		WillReturnRows(rows)

	value, err := s.repo.Get(ctx, "ratingPage")

	s.NoError(err)
	s.Contains(value, "Rate us")
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SettingsRepositoryTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "settings" WHERE key = $1`)).
		WithArgs("platforms", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	value, err := s.repo.Get(ctx, "platforms")

	s.ErrorIs(err, ErrNotFound)
	s.Empty(value)
	s.NoError(s.mock.ExpectationsWereMet())
}

// Set выполняет upsert по ключу: повторная запись перезаписывает значение
func (s *SettingsRepositoryTestSuite) TestSet_Upsert() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "settings"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Set(ctx, "ratingPage", `{"title":"Updated"}`)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}
