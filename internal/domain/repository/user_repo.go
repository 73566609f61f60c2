package repository

import (
	"context"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	// ListByIDs возвращает только существующих пользователей из списка
	ListByIDs(ctx context.Context, ids []uint) ([]entity.User, error)
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
}
