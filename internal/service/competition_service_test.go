package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
)

type competitionServiceMocks struct {
	competitionRepo *MockCompetitionRepository
	participantRepo *MockParticipantRepository
	userRepo        *MockUserRepository
	notifier        *MockNotifier
}

func createTestCompetitionService() (*CompetitionService, competitionServiceMocks) {
	m := competitionServiceMocks{
		competitionRepo: new(MockCompetitionRepository),
		participantRepo: new(MockParticipantRepository),
		userRepo:        new(MockUserRepository),
		notifier:        new(MockNotifier),
	}
	return NewCompetitionService(m.competitionRepo, m.participantRepo, m.userRepo, m.notifier), m
}

func TestCompetitionService_CreateCompetition(t *testing.T) {
	// Arrange
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("Create", ctx, mock.MatchedBy(func(c *entity.Competition) bool {
		return c.Title == "Demo day" && c.CreatorID == 4
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Competition).ID = 12
	}).Return(nil)

	// Act
	competition, err := svc.CreateCompetition(ctx, 4, "Demo day", "pitch")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(12), competition.ID)
	assert.Equal(t, "pitch", competition.Desc)
	m.competitionRepo.AssertExpectations(t)
}

func TestCompetitionService_GetVotePartition(t *testing.T) {
	// Arrange: в C1 пользователь уже оценивал, в C2 нет
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("ListWithVoteStatus", ctx, uint(5)).Return([]entity.CompetitionVoteStatus{
		{Competition: entity.Competition{ID: 1, Title: "C1"}, HasPolled: true},
		{Competition: entity.Competition{ID: 2, Title: "C2"}, HasPolled: false},
	}, nil)

	// Act
	partition, err := svc.GetVotePartition(ctx, 5)

	// Assert
	require.NoError(t, err)
	require.Len(t, partition.HasBeenPolled, 1)
	require.Len(t, partition.NotYetVoted, 1)
	assert.Equal(t, uint(1), partition.HasBeenPolled[0].ID)
	assert.Equal(t, uint(2), partition.NotYetVoted[0].ID)
}

func TestCompetitionService_GetVotePartition_NoCompetitions(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("ListWithVoteStatus", ctx, uint(5)).Return([]entity.CompetitionVoteStatus{}, nil)

	partition, err := svc.GetVotePartition(ctx, 5)

	require.NoError(t, err)
	assert.NotNil(t, partition.HasBeenPolled)
	assert.NotNil(t, partition.NotYetVoted)
	assert.Empty(t, partition.HasBeenPolled)
}

func TestCompetitionService_GetCompetition_NotFound(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(9)).Return(nil, apperrors.ErrNotFound)

	_, _, err := svc.GetCompetition(ctx, 9)

	assert.ErrorIs(t, err, ErrCompetitionNotFound)
}

func TestCompetitionService_GetCompetition_WithParticipants(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(&entity.Competition{ID: 1, Title: "C1"}, nil)
	m.participantRepo.On("ListByCompetition", ctx, uint(1)).Return([]entity.ParticipantInfo{
		{ID: 3, UserID: 7, Username: "alice"},
	}, nil)

	competition, participants, err := svc.GetCompetition(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "C1", competition.Title)
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].Username)
}

func TestCompetitionService_AddParticipants_Success(t *testing.T) {
	// Arrange: 7 уже участник, 8 повторяется во входе
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	competition := &entity.Competition{ID: 1, Title: "C1", CreatorID: 4}
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(competition, nil)
	m.userRepo.On("ListByIDs", ctx, []uint{7, 8, 9}).Return([]entity.User{
		{ID: 7, Username: "u7", Email: "u7@example.com"},
		{ID: 8, Username: "u8", Email: "u8@example.com"},
		{ID: 9, Username: "u9", Email: "u9@example.com"},
	}, nil)
	m.participantRepo.On("ListUserIDs", ctx, uint(1)).Return([]uint{7}, nil)
	m.participantRepo.On("CreateBatch", ctx, []entity.Participant{
		{CompetitionID: 1, UserID: 8},
		{CompetitionID: 1, UserID: 9},
	}).Return(nil)
	m.notifier.On("NotifyAddedToCompetition", mock.Anything, mock.AnythingOfType("entity.User"), *competition).Return(nil)

	// Act
	count, err := svc.AddParticipants(ctx, 1, 4, []uint{7, 8, 8, 9})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	m.participantRepo.AssertExpectations(t)
	m.notifier.AssertNumberOfCalls(t, "NotifyAddedToCompetition", 2)
}

func TestCompetitionService_AddParticipants_NotCreator(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(&entity.Competition{ID: 1, CreatorID: 4}, nil)

	_, err := svc.AddParticipants(ctx, 1, 5, []uint{7})

	assert.ErrorIs(t, err, ErrNotCreator)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	m.participantRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCompetitionService_AddParticipants_CompetitionMissing(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.AddParticipants(ctx, 1, 4, []uint{7})

	assert.ErrorIs(t, err, ErrCompetitionNotFound)
}

func TestCompetitionService_AddParticipants_UnknownUser(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(&entity.Competition{ID: 1, CreatorID: 4}, nil)
	m.userRepo.On("ListByIDs", ctx, []uint{7, 404}).Return([]entity.User{{ID: 7}}, nil)

	_, err := svc.AddParticipants(ctx, 1, 4, []uint{7, 404})

	assert.ErrorIs(t, err, ErrUnknownUsers)
	m.participantRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCompetitionService_AddParticipants_NotificationFailureIgnored(t *testing.T) {
	// Arrange: письмо не ушло, но участник добавлен
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	competition := &entity.Competition{ID: 1, CreatorID: 4}
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(competition, nil)
	m.userRepo.On("ListByIDs", ctx, []uint{8}).Return([]entity.User{{ID: 8}}, nil)
	m.participantRepo.On("ListUserIDs", ctx, uint(1)).Return([]uint{}, nil)
	m.participantRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)
	m.notifier.On("NotifyAddedToCompetition", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	// Act
	count, err := svc.AddParticipants(ctx, 1, 4, []uint{8})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCompetitionService_AddParticipants_ConcurrentEnrollment(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(&entity.Competition{ID: 1, CreatorID: 4}, nil)
	m.userRepo.On("ListByIDs", ctx, []uint{8}).Return([]entity.User{{ID: 8}}, nil)
	m.participantRepo.On("ListUserIDs", ctx, uint(1)).Return([]uint{}, nil)
	m.participantRepo.On("CreateBatch", ctx, mock.Anything).Return(apperrors.ErrConflict)

	_, err := svc.AddParticipants(ctx, 1, 4, []uint{8})

	assert.ErrorIs(t, err, ErrAlreadyParticipant)
	m.notifier.AssertNotCalled(t, "NotifyAddedToCompetition", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompetitionService_AddParticipants_AllAlreadyEnrolled(t *testing.T) {
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(&entity.Competition{ID: 1, CreatorID: 4}, nil)
	m.userRepo.On("ListByIDs", ctx, []uint{7}).Return([]entity.User{{ID: 7}}, nil)
	m.participantRepo.On("ListUserIDs", ctx, uint(1)).Return([]uint{7}, nil)

	count, err := svc.AddParticipants(ctx, 1, 4, []uint{7})

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	m.participantRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestCompetitionService_AddParticipants_NotificationsShareDeadline(t *testing.T) {
	// Arrange: все письма запроса укладываются в один общий дедлайн
	svc, m := createTestCompetitionService()
	ctx := context.Background()
	competition := &entity.Competition{ID: 1, CreatorID: 4}
	m.competitionRepo.On("GetByID", ctx, uint(1)).Return(competition, nil)
	m.userRepo.On("ListByIDs", ctx, []uint{8, 9}).Return([]entity.User{{ID: 8}, {ID: 9}}, nil)
	m.participantRepo.On("ListUserIDs", ctx, uint(1)).Return([]uint{}, nil)
	m.participantRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)

	var deadlines []time.Time
	m.notifier.On("NotifyAddedToCompetition", mock.MatchedBy(func(c context.Context) bool {
		deadline, ok := c.Deadline()
		if ok {
			deadlines = append(deadlines, deadline)
		}
		return ok
	}), mock.Anything, mock.Anything).Return(nil)

	// Act
	start := time.Now()
	count, err := svc.AddParticipants(ctx, 1, 4, []uint{8, 9})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	m.notifier.AssertNumberOfCalls(t, "NotifyAddedToCompetition", 2)
	require.NotEmpty(t, deadlines)
	for _, d := range deadlines {
		assert.Equal(t, deadlines[0], d)
		assert.WithinDuration(t, start.Add(notifyBudget), d, time.Second)
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
