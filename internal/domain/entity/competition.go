package entity

// Competition представляет соревнование, участники которого оценивают друг друга.
// После создания не изменяется.
type Competition struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Title        string        `gorm:"not null" json:"title"`
	Desc         string        `gorm:"column:desc;not null;default:''" json:"desc"`
	CreatorID    uint          `gorm:"not null;index" json:"creator_id"`
	Participants []Participant `gorm:"foreignKey:CompetitionID" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Competition) TableName() string {
	return "competitions"
}

// IsCreatedBy проверяет, является ли пользователь создателем соревнования
func (c *Competition) IsCreatedBy(userID uint) bool {
	return c.CreatorID == userID
}

// CompetitionVoteStatus: соревнование пользователя с признаком,
// отправил ли он в нем хотя бы одну оценку.
type CompetitionVoteStatus struct {
	Competition
	HasPolled bool `gorm:"column:has_polled" json:"-"`
}
