package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/handler/dto"
)

// UserUseCase: операции над пользователями
type UserUseCase interface {
	GetUserByID(ctx context.Context, userID uint) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService UserUseCase
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService UserUseCase) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me возвращает текущего пользователя
// GET /api/user/
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), identity.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// List возвращает всех пользователей
// GET /api/user/all
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		response = append(response, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, response)
}

// ChangePassword меняет пароль текущего пользователя
// PUT /api/user/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), identity.ID, req.Password, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
