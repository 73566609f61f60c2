package repository

import (
	"context"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

// ScoreRepository определяет методы для работы с оценками
type ScoreRepository interface {
	Exists(ctx context.Context, competitionID, scorerID, scoredID uint) (bool, error)
	// Create возвращает apperrors.ErrConflict, если тройка уже оценена
	Create(ctx context.Context, score *entity.Score) error
	// CreateBatch вставляет все оценки в одной транзакции: либо все, либо ни одной
	CreateBatch(ctx context.Context, scores []entity.Score) error
	List(ctx context.Context) ([]entity.Score, error)
	ListWithScoredUsername(ctx context.Context, competitionID uint) ([]entity.ScoreWithUsername, error)
}
