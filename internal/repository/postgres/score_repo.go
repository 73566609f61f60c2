package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий оценок
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Exists проверяет, оценил ли scorer участника scored в соревновании
func (r *ScoreRepo) Exists(ctx context.Context, competitionID, scorerID, scoredID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Score{}).
		Where("competition_id = ? AND scorer_id = ? AND scored_id = ?", competitionID, scorerID, scoredID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// Create сохраняет одну оценку. Нарушение уникальности тройки -> ErrConflict
func (r *ScoreRepo) Create(ctx context.Context, score *entity.Score) error {
	err := r.db.WithContext(ctx).Create(score).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// CreateBatch вставляет все оценки в одной транзакции
func (r *ScoreRepo) CreateBatch(ctx context.Context, scores []entity.Score) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&scores).Error
	})
}

// List возвращает все оценки
func (r *ScoreRepo) List(ctx context.Context) ([]entity.Score, error) {
	var scores []entity.Score
	err := r.db.WithContext(ctx).Order("id").Find(&scores).Error
	return scores, err
}

// ListWithScoredUsername возвращает оценки соревнования, соединенные с оцененным пользователем.
// Порядок по id оценки задает порядок первого появления участника.
func (r *ScoreRepo) ListWithScoredUsername(ctx context.Context, competitionID uint) ([]entity.ScoreWithUsername, error) {
	var rows []entity.ScoreWithUsername
	err := r.db.WithContext(ctx).
		Table("participant_scores AS s").
		Select("s.scored_id, u.username, s.score, s.feedback").
		Joins("JOIN users u ON u.id = s.scored_id").
		Where("s.competition_id = ?", competitionID).
		Order("s.id").
		Scan(&rows).Error
	return rows, err
}
