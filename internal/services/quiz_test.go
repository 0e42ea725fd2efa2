package services

import (
	"testing"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/moderation"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuiz_Validation(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "DBMS")

	tests := []struct {
		name string
		in   QuizInput
	}{
		{"unknown topic", quizInput("Chemistry", "q", 0)},
		{"missing answer", QuizInput{Topic: "DBMS", QuestionText: "q", Options: []string{"a", "b", "c", "d"}}},
		{"answer out of range", quizInput("DBMS", "q", 4)},
		{"three options", QuizInput{Topic: "DBMS", QuestionText: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: intPtr(0)}},
		{"blank option", QuizInput{Topic: "DBMS", QuestionText: "q", Options: []string{"a", " ", "c", "d"}, CorrectAnswer: intPtr(0)}},
		{"no question", quizInput("DBMS", "", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SubmitQuiz(bg, db, tt.in, "u1")
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "got %v", err)
		})
	}

	q, err := SubmitQuiz(bg, db, quizInput("DBMS", "valid", 0), "u1")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, q.Status)
}

func TestQuizReviewAndListing(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "OS")

	q1, err := SubmitQuiz(bg, db, quizInput("OS", "q1", 1), "u1")
	require.NoError(t, err)
	q2, err := SubmitQuiz(bg, db, quizInput("OS", "q2", 2), "u1")
	require.NoError(t, err)

	listed, err := ListQuizByTopic(bg, db, "OS", 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = ApproveQuiz(bg, db, q1.ID, "mod")
	require.NoError(t, err)
	_, err = RejectQuiz(bg, db, q2.ID, "mod")
	require.NoError(t, err)

	listed, err = ListQuizByTopic(bg, db, "OS", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, q1.ID, listed[0].ID)

	student := listed[0].ForStudent()
	assert.Equal(t, []string{"a", "b", "c", "d"}, student.Options)

	pending, err := ListPendingQuiz(bg, db)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := ListAllQuiz(bg, db)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = ApproveQuiz(bg, db, "missing", "mod")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	_, err = RejectQuiz(bg, db, "missing", "mod")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListQuizByTopic_Sample(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "OS")
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		_, err := PublishOfficialQuiz(bg, db, quizInput("OS", text, 0), "mod")
		require.NoError(t, err)
	}

	sample, err := ListQuizByTopic(bg, db, "OS", 3)
	require.NoError(t, err)
	assert.Len(t, sample, 3)
}

func TestEditQuiz(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "OS")
	createSubject(t, db, "DBMS")
	q, err := SubmitQuiz(bg, db, quizInput("OS", "q", 0), "u1")
	require.NoError(t, err)

	topic := "DBMS"
	edited, err := EditQuiz(bg, db, q.ID, QuizPatch{Topic: &topic, CorrectAnswer: intPtr(3)}, "mod")
	require.NoError(t, err)
	assert.Equal(t, "DBMS", edited.Topic)
	assert.Equal(t, 3, edited.CorrectAnswer)
	assert.Equal(t, moderation.StatusPending, edited.Status)

	bad := "Astrology"
	_, err = EditQuiz(bg, db, q.ID, QuizPatch{Topic: &bad}, "mod")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	forced, err := ForceSetQuizStatus(bg, db, q.ID, moderation.StatusApproved, "mod", "checked")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, forced.Status)

	require.NoError(t, DeleteQuiz(bg, db, q.ID, "mod"))
	assert.True(t, apperrors.IsKind(DeleteQuiz(bg, db, q.ID, "mod"), apperrors.KindNotFound))

	var audits int64
	db.Model(&models.ModerationAction{}).Where("target_id = ?", q.ID).Count(&audits)
	assert.Equal(t, int64(3), audits)
}
