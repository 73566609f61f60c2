package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

// CompetitionRepo реализует repository.CompetitionRepository
type CompetitionRepo struct {
	db *gorm.DB
}

// NewCompetitionRepo создает новый репозиторий соревнований
func NewCompetitionRepo(db *gorm.DB) *CompetitionRepo {
	return &CompetitionRepo{db: db}
}

// Create создает новое соревнование
func (r *CompetitionRepo) Create(ctx context.Context, competition *entity.Competition) error {
	return r.db.WithContext(ctx).Create(competition).Error
}

// GetByID возвращает соревнование по ID
func (r *CompetitionRepo) GetByID(ctx context.Context, id uint) (*entity.Competition, error) {
	var competition entity.Competition
	err := r.db.WithContext(ctx).First(&competition, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &competition, nil
}

// List возвращает все соревнования
func (r *CompetitionRepo) List(ctx context.Context) ([]entity.Competition, error) {
	var competitions []entity.Competition
	err := r.db.WithContext(ctx).Order("id").Find(&competitions).Error
	return competitions, err
}

// ListWithVoteStatus одним запросом собирает соревнования пользователя
// и признак EXISTS по его оценкам в каждом из них
func (r *CompetitionRepo) ListWithVoteStatus(ctx context.Context, userID uint) ([]entity.CompetitionVoteStatus, error) {
	var rows []entity.CompetitionVoteStatus
	err := r.db.WithContext(ctx).
		Table("competitions AS c").
		Select(`c.id, c.title, c."desc", c.creator_id,
			EXISTS (
				SELECT 1 FROM participant_scores s
				WHERE s.competition_id = c.id AND s.scorer_id = ?
			) AS has_polled`, userID).
		Joins("JOIN competition_participants p ON p.competition_id = c.id").
		Where("p.user_id = ?", userID).
		Order("c.id").
		Scan(&rows).Error
	return rows, err
}
