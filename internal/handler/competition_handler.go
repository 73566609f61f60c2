package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/internal/handler/dto"
	"github.com/yourusername/pollapp-api/internal/service"
)

// CompetitionUseCase: операции над соревнованиями
type CompetitionUseCase interface {
	CreateCompetition(ctx context.Context, creatorID uint, title, desc string) (*entity.Competition, error)
	ListCompetitions(ctx context.Context) ([]entity.Competition, error)
	GetVotePartition(ctx context.Context, userID uint) (*service.VotePartition, error)
	GetCompetition(ctx context.Context, id uint) (*entity.Competition, []entity.ParticipantInfo, error)
	AddParticipants(ctx context.Context, competitionID, callerID uint, userIDs []uint) (int, error)
}

// CompetitionHandler обрабатывает запросы по соревнованиям
type CompetitionHandler struct {
	competitionService CompetitionUseCase
	scoreService       ScoreUseCase
}

// NewCompetitionHandler создает новый обработчик соревнований
func NewCompetitionHandler(competitionService CompetitionUseCase, scoreService ScoreUseCase) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
		scoreService:       scoreService,
	}
}

// Create создает соревнование от имени текущего пользователя
// POST /api/competitions/create
func (h *CompetitionHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	competition, err := h.competitionService.CreateCompetition(c.Request.Context(), identity.ID, req.Title, req.Desc)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateCompetitionResponse{
		ID:      competition.ID,
		Message: "Competition created successfully",
	})
}

// ListForUser делит соревнования пользователя на оцененные и нет
// GET /api/competitions/
func (h *CompetitionHandler) ListForUser(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	partition, err := h.competitionService.GetVotePartition(c.Request.Context(), identity.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, partition)
}

// ListAll возвращает все соревнования
// GET /api/competitions/all
func (h *CompetitionHandler) ListAll(c *gin.Context) {
	competitions, err := h.competitionService.ListCompetitions(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if competitions == nil {
		competitions = []entity.Competition{}
	}
	c.JSON(http.StatusOK, competitions)
}

// Get возвращает соревнование с участниками
// GET /api/competitions/:id
func (h *CompetitionHandler) Get(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)

	competition, participants, err := h.competitionService.GetCompetition(c.Request.Context(), competitionID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCompetitionDetailResponse(competition, participants))
}

// AddParticipants записывает пользователей в соревнование
// POST /api/competitions/:id/participant/add
func (h *CompetitionHandler) AddParticipants(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	competitionID := c.MustGet("competitionID").(uint)

	var req dto.AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	count, err := h.competitionService.AddParticipants(c.Request.Context(), competitionID, identity.ID, req.UserIDs)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AddParticipantsResponse{
		Message: "Participants added successfully",
		Count:   count,
	})
}

// Scores возвращает агрегированные оценки соревнования
// GET /api/competitions/:id/scores
func (h *CompetitionHandler) Scores(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)

	totals, err := h.scoreService.AggregateScores(c.Request.Context(), competitionID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// ExportScores выгружает агрегированные оценки в CSV или Excel
// GET /api/competitions/:id/scores/export?format=csv|xlsx
func (h *CompetitionHandler) ExportScores(c *gin.Context) {
	competitionID := c.MustGet("competitionID").(uint)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	// Выгрузка несуществующего соревнования дает 404, а не пустой файл
	if _, _, err := h.competitionService.GetCompetition(c.Request.Context(), competitionID); err != nil {
		handleError(c, err)
		return
	}

	totals, err := h.scoreService.AggregateScores(c.Request.Context(), competitionID)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("competition_%d_scores_%s", competitionID, time.Now().Format("2006-01-02"))
	switch format {
	case "xlsx":
		exportScoresXLSX(c, totals, filename)
	default:
		exportScoresCSV(c, totals, filename)
	}
}
