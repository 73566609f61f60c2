package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pollapp-api/internal/domain/entity"
	"github.com/yourusername/pollapp-api/pkg/auth"
)

// ParticipantUseCase: операции над участниками
type ParticipantUseCase interface {
	ListParticipants(ctx context.Context) ([]entity.Participant, error)
	RemoveParticipant(ctx context.Context, participantID uint, caller auth.Identity) error
}

// ParticipantHandler обрабатывает запросы по участникам
type ParticipantHandler struct {
	participantService ParticipantUseCase
}

// NewParticipantHandler создает новый обработчик участников
func NewParticipantHandler(participantService ParticipantUseCase) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// List возвращает все записи участников
// GET /api/competitions/participant/
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.participantService.ListParticipants(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if participants == nil {
		participants = []entity.Participant{}
	}
	c.JSON(http.StatusOK, participants)
}

// Delete удаляет участника вместе с его оценками
// DELETE /api/competitions/participant/:id
// DELETE /api/competitions/participant/score/:id
func (h *ParticipantHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	participantID := c.MustGet("participantID").(uint)

	if err := h.participantService.RemoveParticipant(c.Request.Context(), participantID, identity); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
