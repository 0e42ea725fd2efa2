package seeds

import (
	"context"
	"testing"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestDefaultCatalogParses(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Subjects)
	assert.NotEmpty(t, c.Content)
	for _, item := range c.Content {
		assert.Contains(t, c.Subjects, item.Topic, "content topic must be a seeded subject")
	}
	for _, q := range c.Quiz {
		assert.Len(t, q.Options, models.QuizOptionCount, q.QuestionText)
		assert.Contains(t, c.Subjects, q.Topic, "quiz topic must be a seeded subject")
	}
}

func TestSeedCatalog_IsIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	mod, err := GetOrCreateSystemModerator(ctx, db, "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, mod.Role)

	c, err := DefaultCatalog()
	require.NoError(t, err)

	first, err := SeedCatalog(ctx, db, c, mod.ID)
	require.NoError(t, err)
	assert.Equal(t, len(c.Subjects), first.Subjects)
	assert.Equal(t, len(c.Content), first.Content)
	assert.Equal(t, len(c.Quiz), first.Quiz)

	second, err := SeedCatalog(ctx, db, c, mod.ID)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, second)

	var pending int64
	db.Model(&models.ContentItem{}).Where("status <> ?", moderation.StatusApproved).Count(&pending)
	assert.Zero(t, pending, "seeded content is official")

	// The iframe snippet is stored as a bare video id.
	var deadlocks models.ContentItem
	require.NoError(t, db.First(&deadlocks, "video_title = ?", "Deadlocks explained").Error)
	assert.Equal(t, "UVo9mGARkhQ", deadlocks.YoutubeEmbedLink)

	again, err := GetOrCreateSystemModerator(ctx, db, "other")
	require.NoError(t, err)
	assert.Equal(t, mod.ID, again.ID)
}
