package routes

import (
	"github.com/appnity/prepportal-backend/internal/handlers"
	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterModeratorRoutes(r gin.IRouter) {
	mod := r.Group("/moderator")
	mod.Use(middleware.AuthMiddleware(), middleware.ModeratorOnly())
	{
		mod.GET("/dashboard", handlers.ModGetQueueCounts)

		content := mod.Group("/content")
		{
			content.GET("", handlers.ModListAllContent)
			content.GET("/pending", handlers.ModListPendingContent)
			content.POST("", handlers.ModPublishContent)
			content.POST("/:id/approve", handlers.ModApproveContent)
			content.POST("/:id/reject", handlers.ModRejectContent)
			content.PATCH("/:id", handlers.ModEditContent)
			content.PUT("/:id/status", handlers.ModSetContentStatus)
			content.DELETE("/:id", handlers.ModDeleteContent)
		}

		quiz := mod.Group("/quiz")
		{
			quiz.GET("", handlers.ModListAllQuiz)
			quiz.GET("/pending", handlers.ModListPendingQuiz)
			quiz.GET("/export", handlers.ModExportQuiz)
			quiz.POST("", handlers.ModPublishQuiz)
			quiz.POST("/:id/approve", handlers.ModApproveQuiz)
			quiz.POST("/:id/reject", handlers.ModRejectQuiz)
			quiz.PATCH("/:id", handlers.ModEditQuiz)
			quiz.PUT("/:id/status", handlers.ModSetQuizStatus)
			quiz.DELETE("/:id", handlers.ModDeleteQuiz)
		}

		mod.POST("/subjects", handlers.AddSubject)
		mod.DELETE("/subjects/:name", handlers.DeleteSubject)

		mod.GET("/audit-logs", handlers.ModGetAuditLogs)
		mod.GET("/system", handlers.ModGetSystemSettings)
		mod.PUT("/system", handlers.ModUpdateSystemSetting)
	}
}
