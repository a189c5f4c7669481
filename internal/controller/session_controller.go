package controller

import (
	"encoding/json"
	"strconv"

	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxListLimit = 500

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(s *service.SessionService) *SessionController {
	return &SessionController{SessionService: s}
}

// LogSessionRequest 字段保留原始 JSON，交给 service 按顺序校验
type LogSessionRequest struct {
	SkillID         json.RawMessage `json:"skill_id" swaggertype:"integer"`
	DurationMinutes json.RawMessage `json:"duration_minutes" swaggertype:"integer"`
}

type LogSessionResponse struct {
	Message    string `json:"message"`
	NewTotalXP int    `json:"new_total_xp"`
	NewLevel   int    `json:"new_level"`
}

// LogSession godoc
// @Summary 记录练习
// @Description 时长 1~1440 分钟，每分钟 1 点经验，并重新计算等级
// @Tags 练习记录
// @Accept json
// @Produce json
// @Param body body LogSessionRequest true "技能ID与时长"
// @Success 201 {object} LogSessionResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 422 {object} util.ErrorResponse
// @Router /sessions [post]
func (c *SessionController) LogSession(ctx *gin.Context) {
	var req LogSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Both 'skill_id' and 'duration_minutes' are required")
		return
	}

	result, err := c.SessionService.LogSession(ctx.Request.Context(), service.LogSessionInput{
		SkillID:         util.RawText(req.SkillID),
		DurationMinutes: util.RawText(req.DurationMinutes),
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, LogSessionResponse{
		Message:    "Session logged successfully",
		NewTotalXP: result.NewTotalXP,
		NewLevel:   result.NewLevel,
	})
}

// ListSessions godoc
// @Summary 练习记录列表
// @Description 按记录时间倒序
// @Tags 练习记录
// @Produce json
// @Param skill_id query int false "技能ID"
// @Param limit query int false "最多返回条数"
// @Success 200 {array} model.Session
// @Failure 404 {object} util.ErrorResponse
// @Router /sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	var skillID uint
	if raw := ctx.Query("skill_id"); raw != "" {
		id, err := util.ParseID(raw)
		if err != nil {
			util.NotFound(ctx, "Skill not found")
			return
		}
		skillID = id
	}

	sessions, err := c.SessionService.ListSessions(ctx.Request.Context(), skillID, queryLimit(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// queryLimit 解析 limit 参数，非法或缺省时使用上限
func queryLimit(ctx *gin.Context) int {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil || limit <= 0 || limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
