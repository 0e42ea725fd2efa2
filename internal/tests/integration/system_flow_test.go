package integration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemToggles(t *testing.T) {
	env := newTestEnv(t, setupSQLite(t))
	mod := env.moderator("mod_ops")
	student := env.register("student_ops")

	settings := env.decode(env.do(http.MethodGet, "/api/moderator/system", nil, mod), http.StatusOK)["settings"].(map[string]interface{})
	assert.Equal(t, "false", settings[models.SettingMaintenanceMode])

	// Maintenance blocks students but not moderators or login
	env.decode(env.do(http.MethodPut, "/api/moderator/system", map[string]string{
		"key": models.SettingMaintenanceMode, "value": "true",
	}, mod), http.StatusOK)
	env.decode(env.do(http.MethodGet, "/api/content", nil, student), http.StatusServiceUnavailable)
	env.decode(env.do(http.MethodGet, "/api/content", nil, mod), http.StatusOK)
	env.login("student_ops", "secret123")

	env.decode(env.do(http.MethodPut, "/api/moderator/system", map[string]string{
		"key": models.SettingMaintenanceMode, "value": "false",
	}, mod), http.StatusOK)

	// Submissions off
	env.setSetting(models.SettingSubmissionsEnabled, "false")
	env.decode(env.do(http.MethodPost, "/api/content", map[string]string{"topic": "OS", "questionText": "x"}, student), http.StatusServiceUnavailable)

	// Registration closed
	env.setSetting(models.SettingRegistrationOpen, "false")
	env.decode(env.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "late", "password": "secret123"}, ""), http.StatusServiceUnavailable)

	// LeetCode sync is opt-in
	env.setSetting(models.SettingLeetcodeSyncEnabled, "false")
	env.decode(env.do(http.MethodPost, "/api/users/me/leetcode/sync", nil, student), http.StatusForbidden)

	env.decode(env.do(http.MethodPut, "/api/moderator/system", map[string]string{"key": "dark_mode", "value": "true"}, mod), http.StatusBadRequest)

	health := env.decode(env.do(http.MethodGet, "/health", nil, ""), http.StatusOK)
	assert.Equal(t, "ok", health["status"])
}

func TestUploadAndProgress(t *testing.T) {
	env := newTestEnv(t, setupSQLite(t))
	env.subjects("DSA")
	mod := env.moderator("mod_files")
	student := env.register("student_files")

	upload := func(path, filename string, data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+student)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w
	}

	resp := env.decode(upload("/api/content/upload-pdf", "notes.pdf", []byte("%PDF-1.4 test")), http.StatusCreated)
	pdfPath := resp["path"].(string)
	env.decode(upload("/api/content/upload-pdf", "notes.exe", []byte("MZ")), http.StatusBadRequest)

	w := env.do(http.MethodGet, pdfPath, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 test", w.Body.String())

	resp = env.decode(upload("/api/users/me/avatar", "me.png", []byte{0x89, 'P', 'N', 'G'}), http.StatusOK)
	assert.NotEmpty(t, resp["dp"])

	// Solved and watched sets
	resp = env.decode(env.do(http.MethodPost, "/api/moderator/content", map[string]interface{}{
		"topic": "DSA", "dsaProblemLink": "https://leetcode.com/problems/two-sum/",
		"youtubeSolutionLink": "https://www.youtube.com/watch?v=KLlXCFG5TnA",
	}, mod), http.StatusCreated)
	dsaID := resp["content"].(map[string]interface{})["id"].(string)

	env.decode(env.do(http.MethodPut, "/api/users/me/solved/"+dsaID, map[string]bool{"solved": true}, student), http.StatusOK)
	env.decode(env.do(http.MethodPut, "/api/users/me/solved/"+dsaID, map[string]bool{"solved": true}, student), http.StatusOK)
	env.decode(env.do(http.MethodPut, "/api/users/me/solved/"+dsaID, map[string]string{}, student), http.StatusBadRequest)
	env.decode(env.do(http.MethodPost, "/api/users/me/watched/"+dsaID, nil, student), http.StatusOK)

	progress := env.decode(env.do(http.MethodGet, "/api/users/me/progress", nil, student), http.StatusOK)["progress"].(map[string]interface{})
	assert.Equal(t, []interface{}{dsaID}, progress["solvedDSA"])
	assert.Equal(t, []interface{}{dsaID}, progress["watchedContent"])

	env.decode(env.do(http.MethodPut, "/api/users/me/solved/"+dsaID, map[string]bool{"solved": false}, student), http.StatusOK)
	progress = env.decode(env.do(http.MethodGet, "/api/users/me/progress", nil, student), http.StatusOK)["progress"].(map[string]interface{})
	assert.Empty(t, progress["solvedDSA"])

	// Deleting the item clears it from every progress set
	env.decode(env.do(http.MethodPut, "/api/users/me/solved/"+dsaID, map[string]bool{"solved": true}, student), http.StatusOK)
	env.decode(env.do(http.MethodDelete, "/api/moderator/content/"+dsaID, nil, mod), http.StatusOK)
	progress = env.decode(env.do(http.MethodGet, "/api/users/me/progress", nil, student), http.StatusOK)["progress"].(map[string]interface{})
	assert.Empty(t, progress["solvedDSA"])
	assert.Empty(t, progress["watchedContent"])
	env.decode(env.do(http.MethodPut, "/api/users/me/solved/"+dsaID, map[string]bool{"solved": false}, student), http.StatusOK)
}
