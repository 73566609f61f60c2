package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/pollapp-api/internal/config"
	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
	"github.com/yourusername/pollapp-api/pkg/auth"
)

// RegisterInput: данные для регистрации
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// TokenResult: выпущенный access токен
type TokenResult struct {
	AccessToken string
	TokenType   string
}

// AuthService предоставляет методы для регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	authConfig config.AuthConfig
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		authConfig: authConfig,
	}
}

// Register создает пользователя. Роль admin выдается только именам из конфигурации.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	user := &entity.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Role:     entity.RoleUser,
	}
	if s.authConfig.IsAdminUsername(user.Username) {
		user.Role = entity.RoleAdmin
	}

	// Пароль хешируется в BeforeSave
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь ID=%d username=%s role=%s", user.ID, user.Username, user.Role)
	return user, nil
}

// Login проверяет учетные данные и выпускает access токен
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для username=%s", username)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(auth.Identity{
		Username: user.Username,
		ID:       user.ID,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &TokenResult{AccessToken: token, TokenType: "bearer"}, nil
}
