package handlers

import (
	"net/http"

	"github.com/appnity/prepportal-backend/internal/classify"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// ListContent returns approved items, optionally for one topic.
func ListContent(c *gin.Context) {
	items, err := services.ListApprovedContent(c.Request.Context(), database.DB, c.Query("topic"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

// GetContentBuckets splits approved items into the study, video and DSA lists.
func GetContentBuckets(c *gin.Context) {
	items, err := services.ListApprovedContent(c.Request.Context(), database.DB, c.Query("topic"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": classify.Split(items)})
}

// GetContentSummary returns per-topic bucket counts for the dashboard.
func GetContentSummary(c *gin.Context) {
	items, err := services.ListApprovedContent(c.Request.Context(), database.DB, "")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": classify.Summarize(items)})
}

// GetContent hides unapproved items from everyone but moderators.
func GetContent(c *gin.Context) {
	item, err := services.GetContent(c.Request.Context(), database.DB, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !item.Status.Visible() && c.GetString("role") != string(models.RoleModerator) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

// SubmitContent queues a student submission for review.
func SubmitContent(c *gin.Context) {
	var input services.ContentInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	item, err := services.SubmitContent(c.Request.Context(), database.DB, input, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"content": item})
}
