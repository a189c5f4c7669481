package repository

import (
	"context"

	"skillforge_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository 处理技能的数据访问

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库
func (r *SkillRepository) WithTx(tx *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: tx}
}

// Create 创建技能
func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Create(skill).Error
}

// FindByID 根据ID查找技能，不存在时返回 gorm.ErrRecordNotFound
func (r *SkillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).First(&skill, id).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// FindByIDForUpdate 加行锁读取，需在事务中调用。SQLite 本身串行写，不支持 FOR UPDATE
func (r *SkillRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Skill, error) {
	q := r.DB.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var skill model.Skill
	if err := q.First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// ExistsByName 大小写、首尾空白不敏感地判断名称是否已存在
func (r *SkillRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("name_key = ?", model.NormalizeSkillName(name)).
		Count(&count).Error
	return count > 0, err
}

// List 按 ID 升序返回全部技能
func (r *SkillRepository) List(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Order("id").Find(&skills).Error
	return skills, err
}

// UpdateProgress 同时写入经验和等级，是修改 total_xp 的唯一入口
func (r *SkillRepository) UpdateProgress(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ?", skill.ID).
		Updates(map[string]interface{}{
			"total_xp":      skill.TotalXP,
			"current_level": skill.CurrentLevel,
		}).Error
}

// Delete 删除技能，返回受影响行数
func (r *SkillRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.DB.WithContext(ctx).Delete(&model.Skill{}, id)
	return result.RowsAffected, result.Error
}
