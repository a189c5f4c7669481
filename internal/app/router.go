package app

import (
	"skillforge_backend/docs"
	"skillforge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 技能
		api.POST("/skills", c.skill.CreateSkill)
		api.GET("/skills", c.skill.ListSkills)
		api.GET("/skills/:id", c.skill.GetSkill)
		api.DELETE("/skills/:id", c.skill.DeleteSkill)
		api.GET("/skills/:id/sessions", c.skill.ListSkillSessions)

		// 练习记录
		api.POST("/sessions", c.session.LogSession)
		api.GET("/sessions", c.session.ListSessions)
	}
}
