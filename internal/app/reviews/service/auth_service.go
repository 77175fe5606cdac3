package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository"
	"vipreviews/internal/app/reviews/util"
	"vipreviews/pkg/logger"
)

const tokenDuration = 24 * time.Hour

// AuthService выполняет вход администраторов и клиентов
// и управляет учётными записями клиентов.
type AuthService struct {
	accounts repository.AccountRepository
	jwt      *util.JWTManager
}

func NewAuthService(accounts repository.AccountRepository, jwtSecret string) *AuthService {
	return &AuthService{
		accounts: accounts,
		jwt:      util.NewJWTManager(jwtSecret, tokenDuration),
	}
}

// Login проверяет учётные данные и выдаёт JWT с ролью
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	switch req.Role {
	case util.RoleAdmin:
		return s.loginAdmin(ctx, req)
	case util.RoleClient:
		return s.loginClient(ctx, req)
	}
	return nil, ErrInvalidCredentials
}

func (s *AuthService) loginAdmin(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	admin, err := s.accounts.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if err := util.CheckPassword(req.Password, admin.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Email, util.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info().Str("email", admin.Email).Str("role", util.RoleAdmin).Msg("Login successful")
	return &entity.LoginResponse{
		Token: token,
		Role:  util.RoleAdmin,
		User: entity.AccountInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
		},
	}, nil
}

func (s *AuthService) loginClient(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	client, err := s.accounts.GetClientByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	if err := util.CheckPassword(req.Password, client.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !client.Active {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(client.ID, client.Email, util.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info().Str("email", client.Email).Str("role", util.RoleClient).Msg("Login successful")
	return &entity.LoginResponse{
		Token: token,
		Role:  util.RoleClient,
		User: entity.AccountInfo{
			ID:    client.ID,
			Email: client.Email,
			Name:  client.Name,
		},
	}, nil
}

// ValidateToken проверяет JWT и возвращает claims
func (s *AuthService) ValidateToken(token string) (*util.JWTClaims, error) {
	return s.jwt.ValidateToken(token)
}

// SeedAccounts создаёт стартового администратора и, при наличии
// учётных данных, тестового клиента. Повторный запуск ничего не меняет.
func (s *AuthService) SeedAccounts(ctx context.Context, adminEmail, adminPassword, clientEmail, clientPassword string) error {
	if adminEmail != "" && adminPassword != "" {
		if _, err := s.accounts.GetAdminByEmail(ctx, adminEmail); errors.Is(err, repository.ErrNotFound) {
			hash, err := util.HashPassword(adminPassword)
			if err != nil {
				return err
			}
			admin := &entity.Admin{
				ID:           uuid.New(),
				Email:        adminEmail,
				PasswordHash: hash,
				Name:         "Administrator",
			}
			if err := s.accounts.CreateAdmin(ctx, admin); err != nil {
				return fmt.Errorf("failed to seed admin account: %w", err)
			}
			logger.Info().Str("email", adminEmail).Msg("Seeded admin account")
		}
	}

	if clientEmail != "" && clientPassword != "" {
		if _, err := s.accounts.GetClientByEmail(ctx, clientEmail); errors.Is(err, repository.ErrNotFound) {
			if _, err := s.CreateClient(ctx, &entity.CreateClientRequest{
				Email:    clientEmail,
				Password: clientPassword,
				Name:     "Test Client",
			}); err != nil {
				return fmt.Errorf("failed to seed client account: %w", err)
			}
			logger.Info().Str("email", clientEmail).Msg("Seeded client account")
		}
	}

	return nil
}

// CreateClient создаёт учётную запись клиента
func (s *AuthService) CreateClient(ctx context.Context, req *entity.CreateClientRequest) (*entity.Client, error) {
	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	client := &entity.Client{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Active:       true,
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := s.accounts.CreateClient(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// UpdateClient обновляет учётную запись клиента
func (s *AuthService) UpdateClient(ctx context.Context, id uuid.UUID, req *entity.UpdateClientRequest) (*entity.Client, error) {
	client, err := s.accounts.GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Active != nil {
		client.Active = *req.Active
	}
	if req.Password != "" {
		hash, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		client.PasswordHash = hash
	}

	if err := s.accounts.UpdateClient(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient удаляет учётную запись клиента
func (s *AuthService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// ListClients возвращает все учётные записи клиентов
func (s *AuthService) ListClients(ctx context.Context) ([]entity.Client, error) {
	clients, err := s.accounts.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
