package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

// SubmitScoreInput: данные одиночной оценки
type SubmitScoreInput struct {
	CompetitionID uint
	ScorerID      uint
	ScoredID      uint
	Score         int
	Feedback      *string
}

// BulkScoreItem: одна оценка в пакетной отправке
type BulkScoreItem struct {
	ParticipantID uint
	Score         int
	Feedback      *string
}

// ScoreService отвечает за отправку оценок и их агрегацию
type ScoreService struct {
	scoreRepo       repository.ScoreRepository
	participantRepo repository.ParticipantRepository
	competitionRepo repository.CompetitionRepository
	// shuffle подменяется в тестах
	shuffle func(n int, swap func(i, j int))
}

// NewScoreService создает новый сервис оценок
func NewScoreService(
	scoreRepo repository.ScoreRepository,
	participantRepo repository.ParticipantRepository,
	competitionRepo repository.CompetitionRepository,
) *ScoreService {
	return &ScoreService{
		scoreRepo:       scoreRepo,
		participantRepo: participantRepo,
		competitionRepo: competitionRepo,
		shuffle:         rand.Shuffle,
	}
}

// SubmitScore сохраняет одну оценку от scorer участнику scored.
// Порядок проверок: повтор, самооценка, соревнование, участие scored.
func (s *ScoreService) SubmitScore(ctx context.Context, input SubmitScoreInput) (*entity.Score, error) {
	score := &entity.Score{
		CompetitionID: input.CompetitionID,
		ScorerID:      input.ScorerID,
		ScoredID:      input.ScoredID,
		Score:         input.Score,
		Feedback:      input.Feedback,
	}

	exists, err := s.scoreRepo.Exists(ctx, input.CompetitionID, input.ScorerID, input.ScoredID)
	if err != nil {
		return nil, fmt.Errorf("check existing score: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSubmission
	}

	if score.IsSelfScore() {
		return nil, ErrInvalidTarget
	}

	if _, err := s.competitionRepo.GetByID(ctx, input.CompetitionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("get competition %d: %w", input.CompetitionID, err)
	}

	isParticipant, err := s.participantRepo.IsParticipant(ctx, input.CompetitionID, input.ScoredID)
	if err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if !isParticipant {
		return nil, ErrNotAParticipant
	}

	if err := s.scoreRepo.Create(ctx, score); err != nil {
		// Параллельный запрос успел вставить ту же тройку
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrDuplicateSubmission
		}
		log.Printf("[ScoreService] Ошибка сохранения оценки competition=%d scorer=%d scored=%d: %v",
			input.CompetitionID, input.ScorerID, input.ScoredID, err)
		return nil, ErrScoreCreateFailed
	}

	return score, nil
}

// SubmitBulk сохраняет пакет оценок одного scorer атомарно.
// Проверки повтора и самооценки здесь не выполняются.
func (s *ScoreService) SubmitBulk(ctx context.Context, competitionID, scorerID uint, items []BulkScoreItem) (int, error) {
	if len(items) == 0 {
		return 0, ErrEmptyPayload
	}

	// Сравнение до сложения: сумма не должна переполнить int и обойти лимит
	total := 0
	for _, item := range items {
		if item.Score > 0 && total > entity.MaxBulkScoreBudget-item.Score {
			return 0, ErrScoreBudgetExceeded
		}
		total += item.Score
	}

	allowed, err := s.participantRepo.IsParticipant(ctx, competitionID, scorerID)
	if err != nil {
		return 0, fmt.Errorf("check scorer participant: %w", err)
	}
	if !allowed {
		return 0, ErrNotAllowed
	}

	scores := make([]entity.Score, 0, len(items))
	for _, item := range items {
		scores = append(scores, entity.Score{
			CompetitionID: competitionID,
			ScorerID:      scorerID,
			ScoredID:      item.ParticipantID,
			Score:         item.Score,
			Feedback:      item.Feedback,
		})
	}

	if err := s.scoreRepo.CreateBatch(ctx, scores); err != nil {
		log.Printf("[ScoreService] Пакет из %d оценок отклонен (competition=%d scorer=%d): %v",
			len(scores), competitionID, scorerID, err)
		return 0, ErrSubmissionFailed
	}

	log.Printf("[ScoreService] Сохранено %d оценок (competition=%d scorer=%d)", len(scores), competitionID, scorerID)
	return len(scores), nil
}

// AggregateScores группирует оценки соревнования по оцененному участнику.
// Списки оценок и отзывов перемешиваются независимо друг от друга.
func (s *ScoreService) AggregateScores(ctx context.Context, competitionID uint) ([]entity.ParticipantTotal, error) {
	rows, err := s.scoreRepo.ListWithScoredUsername(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list scores for competition %d: %w", competitionID, err)
	}

	totals := make([]entity.ParticipantTotal, 0)
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.ScoredID]
		if !ok {
			totals = append(totals, entity.ParticipantTotal{
				ID:        row.ScoredID,
				Username:  row.Username,
				Scores:    []int{},
				Feedbacks: []*string{},
			})
			i = len(totals) - 1
			index[row.ScoredID] = i
		}
		t := &totals[i]
		t.Scores = append(t.Scores, row.Score)
		t.Feedbacks = append(t.Feedbacks, row.Feedback)
		t.TotalScore += row.Score
	}

	for i := range totals {
		scores := totals[i].Scores
		feedbacks := totals[i].Feedbacks
		s.shuffle(len(scores), func(a, b int) { scores[a], scores[b] = scores[b], scores[a] })
		s.shuffle(len(feedbacks), func(a, b int) { feedbacks[a], feedbacks[b] = feedbacks[b], feedbacks[a] })
	}

	return totals, nil
}

// ListScores возвращает все сырые оценки (только для администраторов)
func (s *ScoreService) ListScores(ctx context.Context) ([]entity.Score, error) {
	return s.scoreRepo.List(ctx)
}
