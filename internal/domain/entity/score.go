package entity

// MaxBulkScoreBudget: верхняя граница суммы оценок в одной пакетной отправке
const MaxBulkScoreBudget = 1000

// Score: оценка, которую один участник (scorer) поставил другому (scored).
// На тройку (competition_id, scorer_id, scored_id) приходится не более одной записи,
// это гарантирует уникальный индекс idx_score_competition_scorer_scored.
type Score struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	CompetitionID uint    `gorm:"not null;uniqueIndex:idx_score_competition_scorer_scored" json:"competition_id"`
	ScorerID      uint    `gorm:"not null;uniqueIndex:idx_score_competition_scorer_scored" json:"scorer_id"`
	ScoredID      uint    `gorm:"not null;uniqueIndex:idx_score_competition_scorer_scored" json:"scored_id"`
	Score         int     `gorm:"not null" json:"score"`
	Feedback      *string `json:"feedback"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "participant_scores"
}

// IsSelfScore проверяет, не оценивает ли участник сам себя
func (s *Score) IsSelfScore() bool {
	return s.ScorerID == s.ScoredID
}

// ParticipantTotal: агрегат оценок одного участника соревнования.
// Не хранится в БД, пересобирается при каждом чтении.
type ParticipantTotal struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Scores     []int     `json:"scores"`
	Feedbacks  []*string `json:"feedbacks"`
	TotalScore int       `json:"total_score"`
}

// ScoreWithUsername: строка выборки оценок, соединенная с оцененным пользователем
type ScoreWithUsername struct {
	ScoredID uint
	Username string
	Score    int
	Feedback *string
}
