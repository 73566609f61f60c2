package repository

import (
	"context"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

// CompetitionRepository определяет методы для работы с соревнованиями
type CompetitionRepository interface {
	Create(ctx context.Context, competition *entity.Competition) error
	GetByID(ctx context.Context, id uint) (*entity.Competition, error)
	List(ctx context.Context) ([]entity.Competition, error)
	// ListWithVoteStatus возвращает соревнования, где пользователь участник,
	// с признаком наличия его оценок
	ListWithVoteStatus(ctx context.Context, userID uint) ([]entity.CompetitionVoteStatus, error)
}
