package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

// notifyBudget ограничивает общее время отправки писем в одном запросе,
// иначе ретраи уведомлений выходят за WriteTimeout сервера
const notifyBudget = 5 * time.Second

// VotePartition делит соревнования пользователя на те, где он уже оценивал, и остальные
type VotePartition struct {
	HasBeenPolled []entity.Competition `json:"has_been_polled"`
	NotYetVoted   []entity.Competition `json:"not_yet_voted"`
}

// CompetitionService управляет соревнованиями и их составом
type CompetitionService struct {
	competitionRepo repository.CompetitionRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	notifier        ParticipantNotifier
	notifyTimeout   time.Duration
}

// NewCompetitionService создает новый сервис соревнований
func NewCompetitionService(
	competitionRepo repository.CompetitionRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	notifier ParticipantNotifier,
) *CompetitionService {
	if notifier == nil {
		notifier = &NoopNotifier{}
	}
	return &CompetitionService{
		competitionRepo: competitionRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		notifyTimeout:   notifyBudget,
	}
}

// CreateCompetition создает соревнование от имени creatorID
func (s *CompetitionService) CreateCompetition(ctx context.Context, creatorID uint, title, desc string) (*entity.Competition, error) {
	competition := &entity.Competition{
		Title:     title,
		Desc:      desc,
		CreatorID: creatorID,
	}
	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		return nil, fmt.Errorf("create competition: %w", err)
	}
	log.Printf("[CompetitionService] Создано соревнование ID=%d пользователем ID=%d", competition.ID, creatorID)
	return competition, nil
}

// ListCompetitions возвращает все соревнования
func (s *CompetitionService) ListCompetitions(ctx context.Context) ([]entity.Competition, error) {
	return s.competitionRepo.List(ctx)
}

// GetVotePartition возвращает соревнования пользователя, разделенные по наличию его оценок.
// Достаточно одной оценки в соревновании, чтобы оно считалось оцененным.
func (s *CompetitionService) GetVotePartition(ctx context.Context, userID uint) (*VotePartition, error) {
	rows, err := s.competitionRepo.ListWithVoteStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list competitions for user %d: %w", userID, err)
	}

	partition := &VotePartition{
		HasBeenPolled: []entity.Competition{},
		NotYetVoted:   []entity.Competition{},
	}
	for _, row := range rows {
		if row.HasPolled {
			partition.HasBeenPolled = append(partition.HasBeenPolled, row.Competition)
		} else {
			partition.NotYetVoted = append(partition.NotYetVoted, row.Competition)
		}
	}
	return partition, nil
}

// GetCompetition возвращает соревнование вместе со списком участников
func (s *CompetitionService) GetCompetition(ctx context.Context, id uint) (*entity.Competition, []entity.ParticipantInfo, error) {
	competition, err := s.getCompetition(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.participantRepo.ListByCompetition(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list participants of competition %d: %w", id, err)
	}
	return competition, participants, nil
}

// AddParticipants записывает пользователей в соревнование. Добавлять может только создатель.
// Повторы во входном списке и уже записанные пользователи пропускаются.
// Возвращает количество добавленных участников.
func (s *CompetitionService) AddParticipants(ctx context.Context, competitionID, callerID uint, userIDs []uint) (int, error) {
	competition, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return 0, err
	}
	if !competition.IsCreatedBy(callerID) {
		return 0, ErrNotCreator
	}

	unique := uniqueIDs(userIDs)
	if len(unique) == 0 {
		return 0, nil
	}

	users, err := s.userRepo.ListByIDs(ctx, unique)
	if err != nil {
		return 0, fmt.Errorf("load users: %w", err)
	}
	if len(users) != len(unique) {
		return 0, ErrUnknownUsers
	}

	enrolledIDs, err := s.participantRepo.ListUserIDs(ctx, competitionID)
	if err != nil {
		return 0, fmt.Errorf("list enrolled users: %w", err)
	}
	enrolled := make(map[uint]struct{}, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = struct{}{}
	}

	var participants []entity.Participant
	var added []entity.User
	for _, user := range users {
		if _, ok := enrolled[user.ID]; ok {
			continue
		}
		participants = append(participants, entity.Participant{CompetitionID: competitionID, UserID: user.ID})
		added = append(added, user)
	}

	if len(participants) == 0 {
		return 0, nil
	}

	if err := s.participantRepo.CreateBatch(ctx, participants); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return 0, ErrAlreadyParticipant
		}
		return 0, fmt.Errorf("add participants: %w", err)
	}

	notifyCtx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	for _, user := range added {
		if err := s.notifier.NotifyAddedToCompetition(notifyCtx, user, *competition); err != nil {
			// Письмо не критично: участник уже добавлен
			log.Printf("[CompetitionService] Не удалось уведомить пользователя ID=%d: %v", user.ID, err)
		}
	}

	log.Printf("[CompetitionService] В соревнование ID=%d добавлено участников: %d", competitionID, len(participants))
	return len(participants), nil
}

func (s *CompetitionService) getCompetition(ctx context.Context, id uint) (*entity.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("get competition %d: %w", id, err)
	}
	return competition, nil
}

// uniqueIDs убирает повторы, сохраняя порядок
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
