package handlers

import (
	"net/http"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/gin-gonic/gin"
)

func ListSubjects(c *gin.Context) {
	names, err := services.ListSubjects(c.Request.Context(), database.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": names})
}

func AddSubject(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	subject, err := services.AddSubject(c.Request.Context(), database.DB, input.Name, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subject": subject})
}

// DeleteSubject leaves content and quiz rows under the name in place and
// reports how many there were.
func DeleteSubject(c *gin.Context) {
	orphaned, err := services.DeleteSubject(c.Request.Context(), database.DB, c.Param("name"), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted", "orphaned": orphaned})
}
