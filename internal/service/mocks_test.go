package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []uint) ([]entity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

// MockCompetitionRepository реализует repository.CompetitionRepository
type MockCompetitionRepository struct {
	mock.Mock
}

func (m *MockCompetitionRepository) Create(ctx context.Context, competition *entity.Competition) error {
	args := m.Called(ctx, competition)
	return args.Error(0)
}

func (m *MockCompetitionRepository) GetByID(ctx context.Context, id uint) (*entity.Competition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Competition), args.Error(1)
}

func (m *MockCompetitionRepository) List(ctx context.Context) ([]entity.Competition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Competition), args.Error(1)
}

func (m *MockCompetitionRepository) ListWithVoteStatus(ctx context.Context, userID uint) ([]entity.CompetitionVoteStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompetitionVoteStatus), args.Error(1)
}

// MockParticipantRepository реализует repository.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) CreateBatch(ctx context.Context, participants []entity.Participant) error {
	args := m.Called(ctx, participants)
	return args.Error(0)
}

func (m *MockParticipantRepository) GetByID(ctx context.Context, id uint) (*entity.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Participant), args.Error(1)
}

func (m *MockParticipantRepository) IsParticipant(ctx context.Context, competitionID, userID uint) (bool, error) {
	args := m.Called(ctx, competitionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepository) List(ctx context.Context) ([]entity.Participant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ListByCompetition(ctx context.Context, competitionID uint) ([]entity.ParticipantInfo, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ParticipantInfo), args.Error(1)
}

func (m *MockParticipantRepository) ListUserIDs(ctx context.Context, competitionID uint) ([]uint, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockParticipantRepository) DeleteWithScores(ctx context.Context, participant *entity.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

// MockScoreRepository реализует repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Exists(ctx context.Context, competitionID, scorerID, scoredID uint) (bool, error) {
	args := m.Called(ctx, competitionID, scorerID, scoredID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScoreRepository) Create(ctx context.Context, score *entity.Score) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepository) CreateBatch(ctx context.Context, scores []entity.Score) error {
	args := m.Called(ctx, scores)
	return args.Error(0)
}

func (m *MockScoreRepository) List(ctx context.Context) ([]entity.Score, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Score), args.Error(1)
}

func (m *MockScoreRepository) ListWithScoredUsername(ctx context.Context, competitionID uint) ([]entity.ScoreWithUsername, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ScoreWithUsername), args.Error(1)
}

// MockNotifier реализует ParticipantNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAddedToCompetition(ctx context.Context, user entity.User, competition entity.Competition) error {
	args := m.Called(ctx, user, competition)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}
