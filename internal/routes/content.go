package routes

import (
	"github.com/appnity/prepportal-backend/internal/handlers"
	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterContentRoutes(r gin.IRouter) {
	r.GET("/subjects", handlers.ListSubjects)

	content := r.Group("/content")
	{
		content.GET("", handlers.ListContent)
		content.GET("/buckets", handlers.GetContentBuckets)
		content.GET("/summary", handlers.GetContentSummary)
		content.GET("/:id", handlers.GetContent)

		submit := content.Group("")
		submit.Use(middleware.AuthMiddleware(), middleware.RequireSubmissionsEnabled(), middleware.SubmitRateLimit())
		{
			submit.POST("", handlers.SubmitContent)
			submit.POST("/upload-pdf", handlers.UploadPDF)
		}
	}
}

func RegisterQuizRoutes(r gin.IRouter) {
	quiz := r.Group("/quiz")
	{
		quiz.GET("/:topic", handlers.GetQuiz)
		quiz.GET("/:topic/leaderboard", handlers.GetQuizLeaderboard)

		quiz.POST("", middleware.AuthMiddleware(), middleware.RequireSubmissionsEnabled(), middleware.SubmitRateLimit(), handlers.SubmitQuiz)
		quiz.POST("/:topic/attempt", middleware.AuthMiddleware(), middleware.SubmitRateLimit(), handlers.SubmitQuizAttempt)
	}
}
