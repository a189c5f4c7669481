package model

import (
	"strings"

	"skillforge_backend/internal/leveling"
)

// Skill 技能，等级是 TotalXP 的缓存投影，只能通过 ApplyXP 修改
type Skill struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	NameKey      string `gorm:"size:100;not null;uniqueIndex;comment:小写去空格后的名称，用于大小写不敏感的唯一约束" json:"-"`
	CurrentLevel int    `gorm:"not null;default:1" json:"current_level"`
	TotalXP      int    `gorm:"column:total_xp;not null;default:0" json:"total_xp"`
}

func (Skill) TableName() string {
	return "skills"
}

// NewSkill 创建初始状态的技能（1级，0经验）
func NewSkill(name string) *Skill {
	name = strings.TrimSpace(name)
	return &Skill{
		Name:         name,
		NameKey:      NormalizeSkillName(name),
		CurrentLevel: leveling.MinLevel,
		TotalXP:      0,
	}
}

// ApplyXP 增加经验并重新计算等级，返回是否升级
func (s *Skill) ApplyXP(delta int) bool {
	before := s.CurrentLevel
	s.TotalXP += delta
	s.CurrentLevel = leveling.LevelFromXP(s.TotalXP)
	return s.CurrentLevel > before
}

// Progress 当前等级进度
func (s *Skill) Progress() leveling.Progress {
	return leveling.ProgressFor(s.CurrentLevel, s.TotalXP)
}

// NormalizeSkillName 名称比较键
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
