package repository

import (
	"context"

	"skillforge_backend/internal/model"

	"gorm.io/gorm"
)

// SessionRepository 处理练习记录的数据访问，记录只增不改

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: tx}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.DB.WithContext(ctx).Omit("Skill").Create(session).Error
}

// DeleteBySkillID 删除技能下的所有练习记录
func (r *SessionRepository) DeleteBySkillID(ctx context.Context, skillID uint) (int64, error) {
	result := r.DB.WithContext(ctx).Where("skill_id = ?", skillID).Delete(&model.Session{})
	return result.RowsAffected, result.Error
}

// SessionFilter 列表筛选条件，SkillID 为 0 表示不限
type SessionFilter struct {
	SkillID uint
	Limit   int
}

// List 按记录时间倒序返回练习记录
func (r *SessionRepository) List(ctx context.Context, filter SessionFilter) ([]model.Session, error) {
	query := r.DB.WithContext(ctx).Model(&model.Session{})
	if filter.SkillID != 0 {
		query = query.Where("skill_id = ?", filter.SkillID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var sessions []model.Session
	err := query.Order("logged_at DESC").Order("id DESC").Find(&sessions).Error
	return sessions, err
}
