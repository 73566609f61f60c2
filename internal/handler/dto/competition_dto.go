package dto

import "github.com/yourusername/pollapp-api/internal/domain/entity"

// CreateCompetitionRequest: тело создания соревнования
type CreateCompetitionRequest struct {
	Title string `json:"title" binding:"required"`
	Desc  string `json:"desc"`
}

// CreateCompetitionResponse: ответ на создание соревнования
type CreateCompetitionResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// CompetitionDetail: соревнование со списком участников
type CompetitionDetail struct {
	ID           uint                     `json:"id"`
	Title        string                   `json:"title"`
	Desc         string                   `json:"desc"`
	CreatorID    uint                     `json:"creator_id"`
	Participants []entity.ParticipantInfo `json:"participants"`
}

// CompetitionDetailResponse оборачивает детали под ключ "competitions"
type CompetitionDetailResponse struct {
	Competitions CompetitionDetail `json:"competitions"`
}

// NewCompetitionDetailResponse собирает ответ с участниками
func NewCompetitionDetailResponse(c *entity.Competition, participants []entity.ParticipantInfo) CompetitionDetailResponse {
	if participants == nil {
		participants = []entity.ParticipantInfo{}
	}
	return CompetitionDetailResponse{
		Competitions: CompetitionDetail{
			ID:           c.ID,
			Title:        c.Title,
			Desc:         c.Desc,
			CreatorID:    c.CreatorID,
			Participants: participants,
		},
	}
}

// AddParticipantsRequest: список пользователей для записи
type AddParticipantsRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1,dive,gt=0"`
}

// AddParticipantsResponse: результат записи участников
type AddParticipantsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
