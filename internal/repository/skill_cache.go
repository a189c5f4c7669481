package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"skillforge_backend/internal/model"
	"skillforge_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	skillListKeyPrefix = "skillforge:skills:list:"
	// 每次写操作自增，列表缓存挂在当前代次的键下
	skillGenKey = "skillforge:skills:gen"
)

func skillListKey(gen int64) string {
	return skillListKeyPrefix + strconv.FormatInt(gen, 10)
}

// SkillCache 技能列表的 Redis 读穿缓存。写操作通过 Invalidate 推进代次，
// 读到旧数据的回填只会落在已作废的代次上，不会被后续读取命中。
// Redis 未启用（client 为 nil）时所有方法为空操作。
type SkillCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewSkillCache(rdb *redis.Client, ttl time.Duration) *SkillCache {
	return &SkillCache{Redis: rdb, TTL: ttl}
}

func (c *SkillCache) enabled() bool {
	return c != nil && c.Redis != nil
}

// generation 读取当前代次，键不存在时为 0，出错时返回 -1 表示不可回填
func (c *SkillCache) generation(ctx context.Context) int64 {
	gen, err := c.Redis.Get(ctx, skillGenKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0
		}
		logger.Log.Warn("skill cache generation read failed", zap.Error(err))
		return -1
	}
	return gen
}

// Get 命中时 ok 为 true。未命中时返回的 gen 必须在读库之前取得，并原样交给 Set。
// 缓存异常只记录日志，按未命中处理
func (c *SkillCache) Get(ctx context.Context) (skills []model.Skill, gen int64, ok bool) {
	if !c.enabled() {
		return nil, -1, false
	}

	gen = c.generation(ctx)
	if gen < 0 {
		return nil, gen, false
	}

	val, err := c.Redis.Get(ctx, skillListKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("skill cache get failed", zap.Error(err))
		}
		return nil, gen, false
	}

	if err := json.Unmarshal(val, &skills); err != nil {
		logger.Log.Warn("skill cache decode failed", zap.Error(err))
		return nil, gen, false
	}
	return skills, gen, true
}

// Set 把列表写到 gen 代次下；gen 已过期时写入的条目不会再被读取
func (c *SkillCache) Set(ctx context.Context, gen int64, skills []model.Skill) {
	if !c.enabled() || gen < 0 {
		return
	}

	data, err := json.Marshal(skills)
	if err != nil {
		logger.Log.Warn("skill cache encode failed", zap.Error(err))
		return
	}
	if err := c.Redis.Set(ctx, skillListKey(gen), data, c.TTL).Err(); err != nil {
		logger.Log.Warn("skill cache set failed", zap.Error(err))
	}
}

// Invalidate 推进代次并删除旧代次的条目
func (c *SkillCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	gen, err := c.Redis.Incr(ctx, skillGenKey).Result()
	if err != nil {
		logger.Log.Warn("skill cache invalidate failed", zap.Error(err))
		return
	}
	if err := c.Redis.Del(ctx, skillListKey(gen-1)).Err(); err != nil {
		logger.Log.Warn("skill cache cleanup failed", zap.Error(err))
	}
}
