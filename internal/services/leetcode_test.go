package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeetCodeServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Variables map[string]string `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		if body.Variables["username"] != "ravi_lc" {
			_, _ = w.Write([]byte(`{"data":{"matchedUser":null},"errors":[{"message":"That user does not exist."}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"matchedUser":{"username":"ravi_lc","submitStatsGlobal":{"acSubmissionNum":[
			{"difficulty":"All","count":120},{"difficulty":"Easy","count":70},
			{"difficulty":"Medium","count":45},{"difficulty":"Hard","count":5}]}}}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLeetCodeClient_FetchStats(t *testing.T) {
	client := NewLeetCodeClient(newLeetCodeServer(t).URL)

	stats, err := client.FetchStats(bg, "ravi_lc")
	require.NoError(t, err)
	assert.Equal(t, LeetCodeStats{Username: "ravi_lc", All: 120, Easy: 70, Medium: 45, Hard: 5}, *stats)

	_, err = client.FetchStats(bg, "ghost")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestLeetCodeClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewLeetCodeClient(srv.URL).FetchStats(bg, "ravi_lc")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
}

func TestSyncLeetCodeStats(t *testing.T) {
	db := setupTestDB(t)
	client := NewLeetCodeClient(newLeetCodeServer(t).URL)
	user := createUser(t, db, "syncer", models.RoleStudent)

	_, err := SyncLeetCodeStats(bg, db, client, user.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "no handle set")

	require.NoError(t, db.Model(&user).Update("leetcode_id", "ravi_lc").Error)
	stats, err := SyncLeetCodeStats(bg, db, client, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, stats.All)

	stored, err := GetUser(bg, db, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LeetcodeSyncedAt)
	assert.JSONEq(t, `{"username":"ravi_lc","all":120,"easy":70,"medium":45,"hard":5}`, string(stored.LeetcodeStats))
}
