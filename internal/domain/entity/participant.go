package entity

// Participant связывает пользователя с соревнованием.
// Пара (competition_id, user_id) уникальна на уровне БД.
type Participant struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	CompetitionID uint  `gorm:"not null;uniqueIndex:idx_participant_competition_user" json:"competition_id"`
	UserID        uint  `gorm:"not null;uniqueIndex:idx_participant_competition_user;index" json:"user_id"`
	User          *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Participant) TableName() string {
	return "competition_participants"
}

// ParticipantInfo: участник соревнования вместе с именем пользователя
type ParticipantInfo struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
