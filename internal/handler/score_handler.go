package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/handler/dto"
	"github.com/yourusername/pollapp-api/internal/service"
)

// ScoreUseCase: операции над оценками
type ScoreUseCase interface {
	SubmitScore(ctx context.Context, input service.SubmitScoreInput) (*entity.Score, error)
	SubmitBulk(ctx context.Context, competitionID, scorerID uint, items []service.BulkScoreItem) (int, error)
	AggregateScores(ctx context.Context, competitionID uint) ([]entity.ParticipantTotal, error)
	ListScores(ctx context.Context) ([]entity.Score, error)
}

// ScoreHandler обрабатывает отправку оценок
type ScoreHandler struct {
	scoreService ScoreUseCase
}

// NewScoreHandler создает новый обработчик оценок
func NewScoreHandler(scoreService ScoreUseCase) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// List возвращает все оценки (только для администраторов)
// GET /api/competitions/participant/score/
func (h *ScoreHandler) List(c *gin.Context) {
	scores, err := h.scoreService.ListScores(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if scores == nil {
		scores = []entity.Score{}
	}
	c.JSON(http.StatusOK, scores)
}

// Create сохраняет одну оценку от текущего пользователя
// POST /api/competitions/participant/score/create/:comp_id/:scored_id
func (h *ScoreHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	competitionID := c.MustGet("competitionID").(uint)
	scoredID := c.MustGet("scoredID").(uint)

	var req dto.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	score, err := h.scoreService.SubmitScore(c.Request.Context(), service.SubmitScoreInput{
		CompetitionID: competitionID,
		ScorerID:      identity.ID,
		ScoredID:      scoredID,
		Score:         *req.Score,
		Feedback:      req.Feedback,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, score)
}

// BulkCreate сохраняет пакет оценок от текущего пользователя
// POST /api/competitions/participant/score/bulk-create/:competition_id
func (h *ScoreHandler) BulkCreate(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	competitionID := c.MustGet("competitionID").(uint)

	var req dto.BulkScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]service.BulkScoreItem, 0, len(req.Polls))
	for _, p := range req.Polls {
		items = append(items, service.BulkScoreItem{
			ParticipantID: p.ParticipantID,
			Score:         *p.Score,
			Feedback:      p.Feedback,
		})
	}

	count, err := h.scoreService.SubmitBulk(c.Request.Context(), competitionID, identity.ID, items)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkScoreResponse{Status: "ok", Count: count})
}
