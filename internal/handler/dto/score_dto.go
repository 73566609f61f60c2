package dto

// ScoreRequest: одиночная оценка.
// Колонка score имеет тип INTEGER, поэтому значения вне int32 отклоняются при разборе.
type ScoreRequest struct {
	Score    *int    `json:"score" binding:"required,min=-2147483648,max=2147483647"`
	Feedback *string `json:"feedback" binding:"required"`
}

// BulkScoreItem: элемент пакетной оценки, отзыв необязателен
type BulkScoreItem struct {
	ParticipantID uint    `json:"participant_id" binding:"required"`
	Score         *int    `json:"score" binding:"required,min=-2147483648,max=2147483647"`
	Feedback      *string `json:"feedback"`
}

// BulkScoreRequest: пакет оценок. Пустой список отклоняется сервисом.
type BulkScoreRequest struct {
	Polls []BulkScoreItem `json:"polls" binding:"dive"`
}

// BulkScoreResponse: результат пакетной отправки
type BulkScoreResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
