package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
	"github.com/yourusername/pollapp-api/pkg/auth"
)

// ParticipantService управляет записями участников
type ParticipantService struct {
	participantRepo repository.ParticipantRepository
	competitionRepo repository.CompetitionRepository
}

// NewParticipantService создает новый сервис участников
func NewParticipantService(
	participantRepo repository.ParticipantRepository,
	competitionRepo repository.CompetitionRepository,
) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		competitionRepo: competitionRepo,
	}
}

// ListParticipants возвращает все записи участников
func (s *ParticipantService) ListParticipants(ctx context.Context) ([]entity.Participant, error) {
	return s.participantRepo.List(ctx)
}

// RemoveParticipant удаляет участника и его оценки в соревновании.
// Разрешено администратору и создателю соревнования.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, participantID uint, caller auth.Identity) error {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("get participant %d: %w", participantID, err)
	}

	if !caller.IsAdmin() {
		competition, err := s.competitionRepo.GetByID(ctx, participant.CompetitionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrCompetitionNotFound
			}
			return fmt.Errorf("get competition %d: %w", participant.CompetitionID, err)
		}
		if !competition.IsCreatedBy(caller.ID) {
			return ErrRemoveForbidden
		}
	}

	if err := s.participantRepo.DeleteWithScores(ctx, participant); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("delete participant %d: %w", participantID, err)
	}

	log.Printf("[ParticipantService] Участник ID=%d удален пользователем %s (ID=%d)", participantID, caller.Username, caller.ID)
	return nil
}
