package routes

import (
	"context"
	"net/http"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the global middleware chain and every
// route group. uploadDir is served at /uploads when non-empty.
func NewRouter(uploadDir string) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	api := r.Group("/api")
	{
		// Login stays reachable during maintenance so moderators can get in.
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		RegisterAuthRoutes(auth)

		protected := api.Group("")
		protected.Use(middleware.OptionalAuthMiddleware(), middleware.MaintenanceMode())
		RegisterContentRoutes(protected)
		RegisterQuizRoutes(protected)
		RegisterUserRoutes(protected)

		// Moderator routes bypass maintenance
		RegisterModeratorRoutes(api)
	}

	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	r.GET("/health", health)
	return r
}

func health(c *gin.Context) {
	dbStatus := "ok"
	redisStatus := "ok"

	if database.DB == nil {
		dbStatus = "error"
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "error"
	}

	if database.Redis != nil {
		if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
			redisStatus = "error"
		}
	} else {
		redisStatus = "not configured"
	}

	status := "ok"
	if dbStatus != "ok" || redisStatus == "error" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
