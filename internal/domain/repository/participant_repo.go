package repository

import (
	"context"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

// ParticipantRepository определяет методы для работы с участниками соревнований
type ParticipantRepository interface {
	CreateBatch(ctx context.Context, participants []entity.Participant) error
	GetByID(ctx context.Context, id uint) (*entity.Participant, error)
	IsParticipant(ctx context.Context, competitionID, userID uint) (bool, error)
	List(ctx context.Context) ([]entity.Participant, error)
	ListByCompetition(ctx context.Context, competitionID uint) ([]entity.ParticipantInfo, error)
	ListUserIDs(ctx context.Context, competitionID uint) ([]uint, error)
	// DeleteWithScores удаляет участника и все оценки, где он оценивал или был оценен
	DeleteWithScores(ctx context.Context, participant *entity.Participant) error
}
