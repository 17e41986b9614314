package app

import (
	"ai_hub_backend/docs"
	"ai_hub_backend/pkg/monitoring"

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
		api.GET("/health", c.health.Health)

		api.POST("/quiz-submit", c.quiz.Submit)
		api.GET("/module-stats", c.quiz.ModuleStats)

		api.POST("/certificate/check", c.certificate.Check)
		api.POST("/certificate/generate", c.certificate.Generate)

		api.POST("/success-stories", c.story.Submit)
		api.GET("/success-stories", c.story.List)
		api.POST("/success-stories/:id/like", c.story.Like)

		api.GET("/champions/dashboard", c.dashboard.Dashboard)

		api.POST("/ai-helper", c.assistant.Helper)
		api.POST("/ai-chat", c.assistant.Chat)
		api.POST("/module-assistant", c.assistant.ModuleAssistant)

		admin := api.Group("/quiz-results")
		admin.Use(a.adminGate.Middleware())
		{
			admin.GET("/download", c.admin.Download)
			admin.GET("/view", c.admin.View)
		}
	}
}
