package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillforge_backend/internal/leveling"
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

// LogSessionInput 原始请求值，nil 表示字段缺失，由 service 负责解析
type LogSessionInput struct {
	SkillID         *string
	DurationMinutes *string
}

// LogSessionResult 记录练习后的技能状态
type LogSessionResult struct {
	Session    *model.Session
	NewTotalXP int
	NewLevel   int
	LeveledUp  bool
}

type SessionService struct {
	DB       *gorm.DB
	skills   *repository.SkillRepository
	sessions *repository.SessionRepository
	cache    *repository.SkillCache
	now      func() time.Time
}

func NewSessionService(db *gorm.DB, skills *repository.SkillRepository, sessions *repository.SessionRepository, cache *repository.SkillCache) *SessionService {
	return &SessionService{
		DB:       db,
		skills:   skills,
		sessions: sessions,
		cache:    cache,
		now:      time.Now,
	}
}

// ParseDuration 校验练习时长：缺失、无法解析为整数、超出 1~1440 依次报错
func ParseDuration(raw *string) (int, error) {
	if raw == nil {
		return 0, util.ValidationError("'duration_minutes' is required")
	}
	minutes, err := util.ParseInt(*raw)
	if err != nil && !errors.Is(err, util.ErrIntOverflow) {
		return 0, util.MalformedError("Duration must be a valid integer")
	}
	if err != nil || minutes < model.MinSessionMinutes || minutes > model.MaxSessionMinutes {
		return 0, util.RangeError("Duration must be between %d and %d minutes", model.MinSessionMinutes, model.MaxSessionMinutes)
	}
	return minutes, nil
}

// LogSession 记录一次练习并在同一事务内累加经验、重算等级。
// 所有校验在写入之前完成，失败时不产生任何修改。
func (s *SessionService) LogSession(ctx context.Context, in LogSessionInput) (result *LogSessionResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "SessionService.LogSession")
	defer func() { tracing.EndSpan(span, err) }()

	if in.SkillID == nil || in.DurationMinutes == nil {
		return nil, util.ValidationError("Both 'skill_id' and 'duration_minutes' are required")
	}
	minutes, err := ParseDuration(in.DurationMinutes)
	if err != nil {
		return nil, err
	}
	// 无法解析的 skill_id 不可能指向已有技能
	skillID, perr := util.ParseID(*in.SkillID)
	if perr != nil {
		return nil, util.NotFoundError("Skill not found")
	}
	span.SetAttributes(attribute.Int64("skill.id", int64(skillID)), attribute.Int("session.minutes", minutes))

	result = &LogSessionResult{}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skills := s.skills.WithTx(tx)

		skill, err := skills.FindByIDForUpdate(ctx, skillID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("Skill not found")
			}
			return fmt.Errorf("find skill: %w", err)
		}

		session := model.NewSession(skill.ID, minutes, s.now())
		if err := s.sessions.WithTx(tx).Create(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		result.LeveledUp = skill.ApplyXP(minutes * leveling.XPPerMinute)
		if err := skills.UpdateProgress(ctx, skill); err != nil {
			return fmt.Errorf("update skill progress: %w", err)
		}

		result.Session = session
		result.NewTotalXP = skill.TotalXP
		result.NewLevel = skill.CurrentLevel
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	monitoring.RecordSession(minutes, result.LeveledUp)
	logger.Log.Info("session logged",
		zap.Uint("skill_id", skillID),
		zap.Int("minutes", minutes),
		zap.Int("total_xp", result.NewTotalXP),
		zap.Int("level", result.NewLevel),
		zap.Bool("level_up", result.LeveledUp),
	)

	return result, nil
}

// ListSessions 练习记录列表，skillID 为 0 表示全部
func (s *SessionService) ListSessions(ctx context.Context, skillID uint, limit int) ([]model.Session, error) {
	if skillID != 0 {
		if _, err := s.skills.FindByID(ctx, skillID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("Skill not found")
			}
			return nil, fmt.Errorf("find skill: %w", err)
		}
	}

	sessions, err := s.sessions.List(ctx, repository.SessionFilter{SkillID: skillID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
