package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/middleware"
	"github.com/yourusername/pollapp-api/internal/service"
	"github.com/yourusername/pollapp-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// withIdentity кладет личность так же, как RequireAuth
func withIdentity(c *gin.Context, identity auth.Identity) {
	c.Set(middleware.IdentityKey, identity)
	c.Set(middleware.UserIDKey, identity.ID)
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

var testUser = auth.Identity{ID: 7, Username: "alice", Role: entity.RoleUser}

// ============================================================================
// Моки use case интерфейсов
// ============================================================================

type mockScoreUseCase struct {
	mock.Mock
}

func (m *mockScoreUseCase) SubmitScore(ctx context.Context, input service.SubmitScoreInput) (*entity.Score, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Score), args.Error(1)
}

func (m *mockScoreUseCase) SubmitBulk(ctx context.Context, competitionID, scorerID uint, items []service.BulkScoreItem) (int, error) {
	args := m.Called(ctx, competitionID, scorerID, items)
	return args.Int(0), args.Error(1)
}

func (m *mockScoreUseCase) AggregateScores(ctx context.Context, competitionID uint) ([]entity.ParticipantTotal, error) {
	args := m.Called(ctx, competitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ParticipantTotal), args.Error(1)
}

func (m *mockScoreUseCase) ListScores(ctx context.Context) ([]entity.Score, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Score), args.Error(1)
}

type mockCompetitionUseCase struct {
	mock.Mock
}

func (m *mockCompetitionUseCase) CreateCompetition(ctx context.Context, creatorID uint, title, desc string) (*entity.Competition, error) {
	args := m.Called(ctx, creatorID, title, desc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Competition), args.Error(1)
}

func (m *mockCompetitionUseCase) ListCompetitions(ctx context.Context) ([]entity.Competition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Competition), args.Error(1)
}

func (m *mockCompetitionUseCase) GetVotePartition(ctx context.Context, userID uint) (*service.VotePartition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VotePartition), args.Error(1)
}

func (m *mockCompetitionUseCase) GetCompetition(ctx context.Context, id uint) (*entity.Competition, []entity.ParticipantInfo, error) {
	args := m.Called(ctx, id)
	var competition *entity.Competition
	if v := args.Get(0); v != nil {
		competition = v.(*entity.Competition)
	}
	var participants []entity.ParticipantInfo
	if v := args.Get(1); v != nil {
		participants = v.([]entity.ParticipantInfo)
	}
	return competition, participants, args.Error(2)
}

func (m *mockCompetitionUseCase) AddParticipants(ctx context.Context, competitionID, callerID uint, userIDs []uint) (int, error) {
	args := m.Called(ctx, competitionID, callerID, userIDs)
	return args.Int(0), args.Error(1)
}

type mockParticipantUseCase struct {
	mock.Mock
}

func (m *mockParticipantUseCase) ListParticipants(ctx context.Context) ([]entity.Participant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Participant), args.Error(1)
}

func (m *mockParticipantUseCase) RemoveParticipant(ctx context.Context, participantID uint, caller auth.Identity) error {
	args := m.Called(ctx, participantID, caller)
	return args.Error(0)
}

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, input service.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, username, password string) (*service.TokenResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenResult), args.Error(1)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) GetUserByID(ctx context.Context, userID uint) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserUseCase) ListUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *mockUserUseCase) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}
