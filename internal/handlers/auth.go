package handlers

import (
	"net/http"
	"time"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	// Username or email.
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OTPRequestInput struct {
	Email string `json:"email" binding:"required"`
}

type OTPVerifyInput struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func issueToken(c *gin.Context, status int, userID, role string, user interface{}) {
	token, err := utils.GenerateToken(userID, role)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, gin.H{"token": token, "user": user})
}

func Register(c *gin.Context) {
	var input services.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}

	var verify services.EmailVerifier
	if OTP != nil {
		verify = OTP.ConfirmRegistration
	}

	user, err := services.RegisterUser(c.Request.Context(), database.DB, input, verify)
	if err != nil {
		fail(c, err)
		return
	}
	issueToken(c, http.StatusCreated, user.ID, string(user.Role), user)
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}

	user, err := services.Authenticate(c.Request.Context(), database.DB, input.Login, input.Password)
	if err != nil {
		fail(c, err)
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")
	issueToken(c, http.StatusOK, user.ID, string(user.Role), user)
}

// Logout revokes the presented token until it would have expired anyway.
func Logout(c *gin.Context) {
	claims, ok := c.MustGet("claims").(*utils.Claims)
	if !ok || claims == nil || claims.GetJTI() == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
		return
	}

	ttl := time.Until(claims.GetExpiresAt())
	if ttl > 0 {
		if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
			logger.Error().Err(err).Str("jti", claims.GetJTI()).Msg("Failed to blacklist token")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func RequestOTP(c *gin.Context) {
	var input OTPRequestInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	if OTP == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email verification is not available"})
		return
	}
	if err := OTP.Request(c.Request.Context(), input.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTP checks a code and marks the address verified for registration.
func VerifyOTP(c *gin.Context) {
	var input OTPVerifyInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	if OTP == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email verification is not available"})
		return
	}
	if err := OTP.Verify(c.Request.Context(), input.Email, input.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}
