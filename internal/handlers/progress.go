package handlers

import (
	"net/http"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

type SolvedInput struct {
	Solved *bool `json:"solved"`
}

func GetProgress(c *gin.Context) {
	progress, err := services.GetProgress(c.Request.Context(), database.DB, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// SetSolved sets the solved flag to the value in the body. Sending the same
// value twice leaves the set unchanged.
func SetSolved(c *gin.Context) {
	var input SolvedInput
	if err := bindStrict(c, &input); err != nil {
		fail(c, err)
		return
	}
	if input.Solved == nil {
		fail(c, apperrors.Validation("solved is required"))
		return
	}

	contentID := c.Param("contentId")
	if err := services.SetDSASolved(c.Request.Context(), database.DB, currentUserID(c), contentID, *input.Solved); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contentId": contentID, "solved": *input.Solved})
}

func MarkWatched(c *gin.Context) {
	contentID := c.Param("contentId")
	if err := services.MarkWatched(c.Request.Context(), database.DB, currentUserID(c), contentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contentId": contentID, "watched": true})
}
