package services

import (
	"testing"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "Ranking")

	q1, err := PublishOfficialQuiz(bg, db, quizInput("Ranking", "q1", 0), "mod")
	require.NoError(t, err)
	q2, err := PublishOfficialQuiz(bg, db, quizInput("Ranking", "q2", 0), "mod")
	require.NoError(t, err)

	early := createUser(t, db, "early", models.RoleStudent)
	late := createUser(t, db, "late", models.RoleStudent)
	low := createUser(t, db, "low", models.RoleStudent)

	full := map[string]int{q1.ID: 0, q2.ID: 0}
	_, err = SubmitQuizAttempt(bg, db, early.ID, "Ranking", full)
	require.NoError(t, err)
	_, err = SubmitQuizAttempt(bg, db, low.ID, "Ranking", map[string]int{q1.ID: 0})
	require.NoError(t, err)
	_, err = SubmitQuizAttempt(bg, db, late.ID, "Ranking", full)
	require.NoError(t, err)

	board, err := TopicLeaderboard(bg, db, "Ranking", 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "early", board[0].Username, "ties go to the older attempt")
	assert.Equal(t, "late", board[1].Username)
	assert.Equal(t, "low", board[2].Username)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 3, board[2].Rank)

	top, err := TopicLeaderboard(bg, db, "Ranking", 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	// a new attempt drops the cached board
	_, err = SubmitQuizAttempt(bg, db, low.ID, "Ranking", full)
	require.NoError(t, err)
	board, err = TopicLeaderboard(bg, db, "Ranking", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, board[2].HighScore)

	empty, err := TopicLeaderboard(bg, db, "Nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLeaderboardCache_StaysBounded(t *testing.T) {
	db := setupTestDB(t)
	for _, topic := range []string{"no-such-1", "no-such-2"} {
		_, err := TopicLeaderboard(bg, db, topic, 0)
		require.NoError(t, err)
	}

	lbMutex.Lock()
	_, cachedEmpty := leaderboardCache["no-such-1"]
	leaderboardCache["stale"] = cachedLeaderboard{ExpiresAt: time.Now().Add(-time.Second)}
	leaderboardCache["fresh"] = cachedLeaderboard{ExpiresAt: time.Now().Add(time.Minute)}
	sweepLeaderboardCache(time.Now())
	_, staleKept := leaderboardCache["stale"]
	_, freshKept := leaderboardCache["fresh"]
	delete(leaderboardCache, "fresh")
	lbMutex.Unlock()

	assert.False(t, cachedEmpty, "empty boards are not cached")
	assert.False(t, staleKept)
	assert.True(t, freshKept)
}
