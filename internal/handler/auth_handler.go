package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/handler/dto"
	"github.com/yourusername/pollapp-api/internal/service"
)

// AuthUseCase: операции регистрации и входа
type AuthUseCase interface {
	Register(ctx context.Context, input service.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*service.TokenResult, error)
}

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authService AuthUseCase
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService AuthUseCase) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register обрабатывает регистрацию
// POST /api/auth/
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Token выдает access токен по имени и паролю (form или JSON)
// POST /api/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}
