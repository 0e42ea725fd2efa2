package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/moderation"
	"github.com/appnity/prepportal-backend/internal/services"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

type StatusInput struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

func parseStatusInput(c *gin.Context) (moderation.Status, string, error) {
	var input StatusInput
	if err := bindJSON(c, &input); err != nil {
		return "", "", err
	}
	status, err := moderation.ParseStatus(input.Status)
	if err != nil {
		return "", "", apperrors.Validation(err.Error())
	}
	return status, input.Reason, nil
}

// --- Content ---

func ModListAllContent(c *gin.Context) {
	items, err := services.ListAllContent(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

func ModListPendingContent(c *gin.Context) {
	items, err := services.ListPendingContent(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

func ModPublishContent(c *gin.Context) {
	var input services.ContentInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	item, err := services.PublishOfficialContent(c.Request.Context(), database.DB, input, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"content": item})
}

func ModApproveContent(c *gin.Context) {
	item, err := services.ApproveContent(c.Request.Context(), database.DB, c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

func ModRejectContent(c *gin.Context) {
	item, err := services.RejectContent(c.Request.Context(), database.DB, c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

func ModEditContent(c *gin.Context) {
	var patch services.ContentPatch
	if err := bindStrict(c, &patch); err != nil {
		fail(c, err)
		return
	}
	item, err := services.EditContent(c.Request.Context(), database.DB, c.Param("id"), patch, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

func ModSetContentStatus(c *gin.Context) {
	status, reason, err := parseStatusInput(c)
	if err != nil {
		fail(c, err)
		return
	}
	item, err := services.ForceSetContentStatus(c.Request.Context(), database.DB, c.Param("id"), status, currentUserID(c), reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item})
}

func ModDeleteContent(c *gin.Context) {
	if err := services.DeleteContent(c.Request.Context(), database.DB, c.Param("id"), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// --- Quiz ---

func ModListAllQuiz(c *gin.Context) {
	questions, err := services.ListAllQuiz(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func ModListPendingQuiz(c *gin.Context) {
	questions, err := services.ListPendingQuiz(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func ModPublishQuiz(c *gin.Context) {
	var input services.QuizInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	q, err := services.PublishOfficialQuiz(c.Request.Context(), database.DB, input, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": q})
}

func ModApproveQuiz(c *gin.Context) {
	q, err := services.ApproveQuiz(c.Request.Context(), database.DB, c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func ModRejectQuiz(c *gin.Context) {
	q, err := services.RejectQuiz(c.Request.Context(), database.DB, c.Param("id"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func ModEditQuiz(c *gin.Context) {
	var patch services.QuizPatch
	if err := bindStrict(c, &patch); err != nil {
		fail(c, err)
		return
	}
	q, err := services.EditQuiz(c.Request.Context(), database.DB, c.Param("id"), patch, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func ModSetQuizStatus(c *gin.Context) {
	status, reason, err := parseStatusInput(c)
	if err != nil {
		fail(c, err)
		return
	}
	q, err := services.ForceSetQuizStatus(c.Request.Context(), database.DB, c.Param("id"), status, currentUserID(c), reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func ModDeleteQuiz(c *gin.Context) {
	if err := services.DeleteQuiz(c.Request.Context(), database.DB, c.Param("id"), currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz question deleted"})
}

// ModExportQuiz streams the quiz bank as an xlsx download.
func ModExportQuiz(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := services.ExportQuizBank(c.Request.Context(), database.DB, &buf); err != nil {
		fail(c, err)
		return
	}
	filename := fmt.Sprintf("quiz-bank-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// --- Dashboard, audit and system ---

func ModGetQueueCounts(c *gin.Context) {
	counts, err := services.GetQueueCounts(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func ModGetAuditLogs(c *gin.Context) {
	logs, err := services.ListModerationActions(c.Request.Context(), database.DB, queryInt(c, "limit", 100))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func ModGetSystemSettings(c *gin.Context) {
	settings, err := services.GetSystemSettings(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func ModUpdateSystemSetting(c *gin.Context) {
	var input struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	setting, err := services.UpdateSystemSetting(c.Request.Context(), database.DB, input.Key, input.Value, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting updated", "setting": setting})
}
