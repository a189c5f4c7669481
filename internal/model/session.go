package model

import "time"

const (
	MinSessionMinutes = 1
	MaxSessionMinutes = 1440 // 单次最多记录 24 小时
)

// Session 一次练习记录，创建后不可修改
type Session struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SkillID         uint      `gorm:"index;not null" json:"skill_id"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	LoggedAt        time.Time `gorm:"not null" json:"logged_at"`

	// 技能删除时数据库级联删除其练习记录
	Skill *Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

// NewSession 以当前 UTC 时间创建练习记录
func NewSession(skillID uint, minutes int, now time.Time) *Session {
	return &Session{
		SkillID:         skillID,
		DurationMinutes: minutes,
		LoggedAt:        now.UTC(),
	}
}
