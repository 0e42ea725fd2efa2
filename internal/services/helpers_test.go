package services

import (
	"context"
	"testing"
	"time"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()
	u := models.User{ID: utils.GenerateID(), Username: username, Password: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createSubject(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, db.Create(&models.Subject{ID: utils.GenerateID(), Name: name, CreatedAt: time.Now()}).Error)
	}
}

func intPtr(i int) *int { return &i }

func quizInput(topic, text string, correct int) QuizInput {
	return QuizInput{
		Topic:         topic,
		QuestionText:  text,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: intPtr(correct),
	}
}

// backdate pins created_at so ordering assertions do not depend on clock resolution.
func backdate(t *testing.T, db *gorm.DB, model interface{}, id string, ago time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(model).Where("id = ?", id).Update("created_at", time.Now().Add(-ago)).Error)
}

var bg = context.Background()
