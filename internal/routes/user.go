package routes

import (
	"github.com/appnity/prepportal-backend/internal/handlers"
	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	me := r.Group("/users/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", handlers.GetMe)
		me.PUT("", handlers.UpdateMe)
		me.POST("/avatar", handlers.UploadAvatar)
		me.POST("/leetcode/sync", middleware.FeatureGate(models.SettingLeetcodeSyncEnabled, "LeetCode sync"), handlers.SyncLeetCode)

		me.GET("/progress", handlers.GetProgress)
		me.PUT("/solved/:contentId", handlers.SetSolved)
		me.POST("/watched/:contentId", handlers.MarkWatched)
	}
}
