package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/internal/app/reviews/repository/mocks"
	"vipreviews/internal/app/reviews/util"
)

const testJWTSecret = "test-secret"

func TestLogin_Admin_Success(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	hash, err := util.HashPassword("admin1234")
	require.NoError(t, err)

	accounts.On("GetAdminByEmail", ctx, "admin@gmail.com").Return(&entity.Admin{
		ID:           uuid.New(),
		Email:        "admin@gmail.com",
		PasswordHash: hash,
		Name:         "Administrator",
	}, nil)

	response, err := service.Login(ctx, &entity.LoginRequest{
		Email:    "admin@gmail.com",
		Password: "admin1234",
		Role:     "admin",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "admin", response.Role)

	claims, err := service.ValidateToken(response.Token)
	assert.NoError(t, err)
	assert.Equal(t, util.RoleAdmin, claims.Role)
}

func TestLogin_Admin_WrongPassword(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	hash, err := util.HashPassword("correct-password")
	require.NoError(t, err)

	accounts.On("GetAdminByEmail", ctx, "admin@gmail.com").Return(&entity.Admin{
		ID:           uuid.New(),
		Email:        "admin@gmail.com",
		PasswordHash: hash,
	}, nil)

	response, err := service.Login(ctx, &entity.LoginRequest{
		Email:    "admin@gmail.com",
		Password: "wrong-password",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, response)
}

func TestLogin_UnknownEmail(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	accounts.On("GetAdminByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)

	response, err := service.Login(ctx, &entity.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, response)
}

func TestLogin_DisabledClient(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	hash, err := util.HashPassword("client-pass")
	require.NoError(t, err)

	accounts.On("GetClientByEmail", ctx, "client@example.com").Return(&entity.Client{
		ID:           uuid.New(),
		Email:        "client@example.com",
		PasswordHash: hash,
		Active:       false,
	}, nil)

	response, err := service.Login(ctx, &entity.LoginRequest{
		Email:    "client@example.com",
		Password: "client-pass",
		Role:     "client",
	})

	assert.ErrorIs(t, err, ErrAccountDisabled)
	assert.Nil(t, response)
}

func TestSeedAccounts_CreatesMissingAdmin(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	accounts.On("GetAdminByEmail", ctx, "admin@gmail.com").Return(nil, repository.ErrNotFound)
	accounts.On("CreateAdmin", ctx, mock.MatchedBy(func(admin *entity.Admin) bool {
		return admin.Email == "admin@gmail.com" && admin.PasswordHash != "admin1234"
	})).Return(nil)

	err := service.SeedAccounts(ctx, "admin@gmail.com", "admin1234", "", "")

	assert.NoError(t, err)
	accounts.AssertCalled(t, "CreateAdmin", ctx, mock.Anything)
}

func TestSeedAccounts_SkipsExistingAdmin(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	accounts.On("GetAdminByEmail", ctx, "admin@gmail.com").Return(&entity.Admin{ID: uuid.New()}, nil)

	err := service.SeedAccounts(ctx, "admin@gmail.com", "admin1234", "", "")

	assert.NoError(t, err)
	accounts.AssertNotCalled(t, "CreateAdmin", mock.Anything, mock.Anything)
}

func TestCreateClient_DuplicateEmail(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()

	accounts.On("CreateClient", ctx, mock.Anything).Return(repository.ErrDuplicateEmail)

	client, err := service.CreateClient(ctx, &entity.CreateClientRequest{
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, client)
}

func TestUpdateClient_PartialUpdate(t *testing.T) {
	accounts := new(mocks.MockAccountRepository)
	service := NewAuthService(accounts, testJWTSecret)
	ctx := context.Background()
	clientID := uuid.New()

	accounts.On("GetClientByID", ctx, clientID).Return(&entity.Client{
		ID:     clientID,
		Email:  "old@example.com",
		Name:   "Old Name",
		Active: true,
	}, nil)

	inactive := false
	accounts.On("UpdateClient", ctx, mock.MatchedBy(func(client *entity.Client) bool {
		return client.Email == "old@example.com" && !client.Active
	})).Return(nil)

	client, err := service.UpdateClient(ctx, clientID, &entity.UpdateClientRequest{Active: &inactive})

	assert.NoError(t, err)
	assert.False(t, client.Active)
	assert.Equal(t, "Old Name", client.Name)
}
