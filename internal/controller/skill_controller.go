package controller

import (
	"fmt"

	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService   *service.SkillService
	SessionService *service.SessionService
}

func NewSkillController(skillService *service.SkillService, sessionService *service.SessionService) *SkillController {
	return &SkillController{
		SkillService:   skillService,
		SessionService: sessionService,
	}
}

type CreateSkillRequest struct {
	Name *string `json:"name"`
}

// CreateSkillResponse 创建技能的响应
type CreateSkillResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	CurrentLevel int    `json:"current_level"`
}

// CreateSkill godoc
// @Summary 创建技能
// @Description 名称去除首尾空白后不能为空，且不区分大小写唯一
// @Tags 技能
// @Accept json
// @Produce json
// @Param body body CreateSkillRequest true "技能名称"
// @Success 201 {object} CreateSkillResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse
// @Router /skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Skill 'name' is required")
		return
	}

	skill, err := c.SkillService.CreateSkill(ctx.Request.Context(), req.Name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, CreateSkillResponse{
		ID:           skill.ID,
		Name:         skill.Name,
		CurrentLevel: skill.CurrentLevel,
	})
}

// ListSkills godoc
// @Summary 技能列表
// @Description 返回全部技能及距下一级所需经验、本级进度
// @Tags 技能
// @Produce json
// @Success 200 {array} service.SkillView
// @Router /skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	views, err := c.SkillService.ListSkills(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// GetSkill godoc
// @Summary 技能详情
// @Tags 技能
// @Produce json
// @Param id path int true "技能ID"
// @Success 200 {object} service.SkillView
// @Failure 404 {object} util.ErrorResponse
// @Router /skills/{id} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, "Skill not found")
		return
	}

	view, err := c.SkillService.GetSkill(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// DeleteSkill godoc
// @Summary 删除技能
// @Description 同时删除该技能的所有练习记录
// @Tags 技能
// @Produce json
// @Param id path int true "技能ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, "Skill not found")
		return
	}

	result, err := c.SkillService.DeleteSkill(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.MessageResponse{
		Message: fmt.Sprintf("Skill '%s' and all its sessions have been deleted", result.Name),
	})
}

// ListSkillSessions godoc
// @Summary 技能的练习记录
// @Tags 技能
// @Produce json
// @Param id path int true "技能ID"
// @Param limit query int false "最多返回条数"
// @Success 200 {array} model.Session
// @Failure 404 {object} util.ErrorResponse
// @Router /skills/{id}/sessions [get]
func (c *SkillController) ListSkillSessions(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, "Skill not found")
		return
	}

	sessions, err := c.SessionService.ListSessions(ctx.Request.Context(), id, queryLimit(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
