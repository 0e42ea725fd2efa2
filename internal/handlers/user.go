package handlers

import (
	"net/http"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/gin-gonic/gin"
)

func GetMe(c *gin.Context) {
	user, err := services.GetUser(c.Request.Context(), database.DB, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe edits profile fields. Role, username and password are not part of
// the accepted body.
func UpdateMe(c *gin.Context) {
	var input services.ProfileInput
	if err := bindStrict(c, &input); err != nil {
		fail(c, err)
		return
	}
	user, err := services.UpdateProfile(c.Request.Context(), database.DB, currentUserID(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func SyncLeetCode(c *gin.Context) {
	if LeetCode == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LeetCode sync is not configured"})
		return
	}
	stats, err := services.SyncLeetCodeStats(c.Request.Context(), database.DB, LeetCode, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leetcodeStats": stats})
}
