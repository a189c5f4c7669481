package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"
	"skillforge_backend/pkg/logger"
	"skillforge_backend/pkg/monitoring"
	"skillforge_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SkillView 技能的读模型，附带升级进度
type SkillView struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	CurrentLevel  int    `json:"current_level"`
	TotalXP       int    `json:"total_xp"`
	XPToNextLevel int    `json:"xp_to_next_level"`
	ProgressXP    int    `json:"progress_xp"`
}

func NewSkillView(skill *model.Skill) SkillView {
	p := skill.Progress()
	return SkillView{
		ID:            skill.ID,
		Name:          skill.Name,
		CurrentLevel:  skill.CurrentLevel,
		TotalXP:       skill.TotalXP,
		XPToNextLevel: p.XPToNextLevel,
		ProgressXP:    p.ProgressXP,
	}
}

// DeleteResult 删除技能的结果
type DeleteResult struct {
	Name            string
	SessionsDeleted int64
}

type SkillService struct {
	DB       *gorm.DB
	skills   *repository.SkillRepository
	sessions *repository.SessionRepository
	cache    *repository.SkillCache
}

func NewSkillService(db *gorm.DB, skills *repository.SkillRepository, sessions *repository.SessionRepository, cache *repository.SkillCache) *SkillService {
	return &SkillService{
		DB:       db,
		skills:   skills,
		sessions: sessions,
		cache:    cache,
	}
}

// CreateSkill 创建技能。name 为 nil 表示请求中缺少该字段
func (s *SkillService) CreateSkill(ctx context.Context, name *string) (skill *model.Skill, err error) {
	ctx, span := tracing.StartSpan(ctx, "SkillService.CreateSkill")
	defer func() { tracing.EndSpan(span, err) }()

	if name == nil {
		return nil, util.ValidationError("Skill 'name' is required")
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil, util.ValidationError("Skill 'name' cannot be empty")
	}

	skill = model.NewSkill(trimmed)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skills := s.skills.WithTx(tx)

		exists, err := skills.ExistsByName(ctx, trimmed)
		if err != nil {
			return fmt.Errorf("check skill name: %w", err)
		}
		if exists {
			return util.ConflictError("Skill '%s' already exists", trimmed)
		}

		if err := skills.Create(ctx, skill); err != nil {
			if isDuplicateKey(err) {
				return util.ConflictError("Skill '%s' already exists", trimmed)
			}
			return fmt.Errorf("create skill: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	monitoring.RecordSkillCreated()
	logger.Log.Info("skill created", zap.Uint("skill_id", skill.ID), zap.String("name", skill.Name))

	return skill, nil
}

// ListSkills 返回全部技能（按 ID 升序），优先读缓存
func (s *SkillService) ListSkills(ctx context.Context) (views []SkillView, err error) {
	ctx, span := tracing.StartSpan(ctx, "SkillService.ListSkills")
	defer func() { tracing.EndSpan(span, err) }()

	// 代次在读库之前取得，期间若有写入，回填会落到作废的代次上
	skills, gen, ok := s.cache.Get(ctx)
	if !ok {
		skills, err = s.skills.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list skills: %w", err)
		}
		s.cache.Set(ctx, gen, skills)
	}
	span.SetAttributes(attribute.Bool("cache.hit", ok), attribute.Int("skills.count", len(skills)))

	views = make([]SkillView, 0, len(skills))
	for i := range skills {
		views = append(views, NewSkillView(&skills[i]))
	}
	return views, nil
}

func (s *SkillService) GetSkill(ctx context.Context, id uint) (*SkillView, error) {
	skill, err := s.skills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("Skill not found")
		}
		return nil, fmt.Errorf("find skill: %w", err)
	}
	view := NewSkillView(skill)
	return &view, nil
}

// DeleteSkill 在同一事务中先删除练习记录再删除技能
func (s *SkillService) DeleteSkill(ctx context.Context, id uint) (result *DeleteResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "SkillService.DeleteSkill", attribute.Int64("skill.id", int64(id)))
	defer func() { tracing.EndSpan(span, err) }()

	result = &DeleteResult{}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skills := s.skills.WithTx(tx)

		skill, err := skills.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("Skill not found")
			}
			return fmt.Errorf("find skill: %w", err)
		}
		result.Name = skill.Name

		n, err := s.sessions.WithTx(tx).DeleteBySkillID(ctx, id)
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		result.SessionsDeleted = n

		if _, err := skills.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete skill: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	monitoring.RecordSkillDeleted()
	logger.Log.Info("skill deleted",
		zap.Uint("skill_id", id),
		zap.String("name", result.Name),
		zap.Int64("sessions_deleted", result.SessionsDeleted),
	)

	return result, nil
}

// modernc 驱动的错误不会被 gorm 翻译，这里兼容两种形式
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
