package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/handlers"
	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/appnity/prepportal-backend/internal/migrations"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/routes"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type otpMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *otpMailer) SendOTP(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *otpMailer) last(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

func bg() context.Context { return context.Background() }

// setupSQLite opens a fresh in-memory database with the schema and default
// settings applied.
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	mailer *otpMailer
}

// newTestEnv migrates db, points the package globals at it and builds the
// full router.
func newTestEnv(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{JWTSecret: "test_secret_key_12345"}

	m := migrations.NewMigrator(db)
	require.NoError(t, m.AutoMigrate())
	require.NoError(t, m.Run())
	database.DB = db
	database.Redis = nil

	middleware.AuthLimiter = middleware.NewIPRateLimiter(rate.Inf, 0)
	middleware.GeneralLimiter = middleware.NewIPRateLimiter(rate.Inf, 0)
	middleware.SubmitLimiter = middleware.NewIPRateLimiter(rate.Inf, 0)

	uploadDir := t.TempDir()
	mailer := &otpMailer{codes: map[string]string{}}
	handlers.Files = services.NewLocalStore(uploadDir)
	handlers.OTP = services.NewOTPService(services.NewMemoryOTPStore(), mailer)
	handlers.LeetCode = nil

	return &testEnv{t: t, db: db, router: routes.NewRouter(uploadDir), mailer: mailer}
}

func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response and fails the test on a status mismatch.
func (e *testEnv) decode(w *httptest.ResponseRecorder, status int) map[string]interface{} {
	e.t.Helper()
	require.Equal(e.t, status, w.Code, w.Body.String())
	var out map[string]interface{}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// register signs up a student without an email and returns its token.
func (e *testEnv) register(username string) string {
	e.t.Helper()
	resp := e.decode(e.do(http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"password": "secret123",
	}, ""), http.StatusCreated)
	return resp["token"].(string)
}

// moderator registers a user, promotes it and logs in again so the token
// carries the new role.
func (e *testEnv) moderator(username string) string {
	e.t.Helper()
	e.register(username)
	_, err := services.PromoteModerator(bg(), e.db, username, "")
	require.NoError(e.t, err)
	return e.login(username, "secret123")
}

func (e *testEnv) login(username, password string) string {
	e.t.Helper()
	resp := e.decode(e.do(http.MethodPost, "/api/auth/login", map[string]string{
		"login":    username,
		"password": password,
	}, ""), http.StatusOK)
	return resp["token"].(string)
}

func (e *testEnv) setSetting(key, value string) {
	e.t.Helper()
	require.NoError(e.t, e.db.Save(&models.SystemSettings{Key: key, Value: value}).Error)
}

// subjects registers topics straight in the table so flows that are not about
// subject management keep their audit log to themselves.
func (e *testEnv) subjects(names ...string) {
	e.t.Helper()
	for _, name := range names {
		require.NoError(e.t, e.db.Create(&models.Subject{ID: utils.GenerateID(), Name: name, CreatedAt: time.Now()}).Error)
	}
}
