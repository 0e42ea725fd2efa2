package routes

import (
	"github.com/appnity/prepportal-backend/internal/handlers"
	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", middleware.RequireRegistrationOpen(), handlers.Register)
	r.POST("/login", handlers.Login)
	// Logout needs the claims to revoke the token.
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)

	otp := r.Group("/otp")
	{
		otp.POST("/request", middleware.OTPRateLimit(), handlers.RequestOTP)
		otp.POST("/verify", handlers.VerifyOTP)
	}
}
