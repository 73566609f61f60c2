package postgres

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

// ParticipantRepo реализует repository.ParticipantRepository
type ParticipantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo создает новый репозиторий участников
func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// CreateBatch добавляет участников одной вставкой
func (r *ParticipantRepo) CreateBatch(ctx context.Context, participants []entity.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Create(&participants).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает участника по ID
func (r *ParticipantRepo) GetByID(ctx context.Context, id uint) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.WithContext(ctx).First(&participant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

// IsParticipant проверяет, записан ли пользователь в соревнование
func (r *ParticipantRepo) IsParticipant(ctx context.Context, competitionID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Participant{}).
		Where("competition_id = ? AND user_id = ?", competitionID, userID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// List возвращает всех участников всех соревнований
func (r *ParticipantRepo) List(ctx context.Context) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := r.db.WithContext(ctx).Order("id").Find(&participants).Error
	return participants, err
}

// ListByCompetition возвращает участников соревнования с именами пользователей
func (r *ParticipantRepo) ListByCompetition(ctx context.Context, competitionID uint) ([]entity.ParticipantInfo, error) {
	var infos []entity.ParticipantInfo
	err := r.db.WithContext(ctx).
		Table("competition_participants AS p").
		Select("p.id, p.user_id, u.username").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.competition_id = ?", competitionID).
		Order("p.id").
		Scan(&infos).Error
	return infos, err
}

// ListUserIDs возвращает ID пользователей, записанных в соревнование
func (r *ParticipantRepo) ListUserIDs(ctx context.Context, competitionID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Participant{}).
		Where("competition_id = ?", competitionID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// DeleteWithScores удаляет участника вместе с его оценками в одной транзакции
func (r *ParticipantRepo) DeleteWithScores(ctx context.Context, participant *entity.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("competition_id = ? AND (scorer_id = ? OR scored_id = ?)",
			participant.CompetitionID, participant.UserID, participant.UserID).
			Delete(&entity.Score{})
		if res.Error != nil {
			return res.Error
		}
		log.Printf("[ParticipantRepo] Удалено оценок: %d (competition=%d, user=%d)",
			res.RowsAffected, participant.CompetitionID, participant.UserID)

		res = tx.Delete(&entity.Participant{}, participant.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
