package handlers

import (
	"net/http"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type QuizAttemptInput struct {
	// question id -> chosen option index
	Answers map[string]int `json:"answers" binding:"required"`
}

// GetQuiz returns approved questions for a topic without their answers.
// ?sample=N draws N random questions.
func GetQuiz(c *gin.Context) {
	questions, err := services.ListQuizByTopic(c.Request.Context(), database.DB, c.Param("topic"), queryInt(c, "sample", 0))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]models.StudentQuizQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ForStudent())
	}
	c.JSON(http.StatusOK, gin.H{"questions": out})
}

func SubmitQuiz(c *gin.Context) {
	var input services.QuizInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	q, err := services.SubmitQuiz(c.Request.Context(), database.DB, input, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": q})
}

// SubmitQuizAttempt scores a full attempt and records the user's score.
func SubmitQuizAttempt(c *gin.Context) {
	var input QuizAttemptInput
	if err := bindJSON(c, &input); err != nil {
		fail(c, err)
		return
	}
	result, err := services.SubmitQuizAttempt(c.Request.Context(), database.DB, currentUserID(c), c.Param("topic"), input.Answers)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func GetQuizLeaderboard(c *gin.Context) {
	entries, err := services.TopicLeaderboard(c.Request.Context(), database.DB, c.Param("topic"), queryInt(c, "limit", 20))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
