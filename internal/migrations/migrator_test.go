package migrations

import (
	"testing"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrator(db)

	require.NoError(t, m.AutoMigrate())
	require.NoError(t, m.Run())
	require.NoError(t, m.Run())

	var records int64
	db.Model(&MigrationRecord{}).Count(&records)
	assert.Equal(t, int64(len(GetMigrations())), records)

	var settings []models.SystemSettings
	require.NoError(t, db.Find(&settings).Error)
	assert.Len(t, settings, len(models.KnownSettings))
}

func TestMigrator_DefaultSettingsKeepExistingValues(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrator(db)
	require.NoError(t, m.AutoMigrate())

	require.NoError(t, db.Create(&models.SystemSettings{Key: models.SettingRegistrationOpen, Value: "false", UpdatedBy: "mod"}).Error)
	require.NoError(t, m.Run())

	var s models.SystemSettings
	require.NoError(t, db.First(&s, "key = ?", models.SettingRegistrationOpen).Error)
	assert.Equal(t, "false", s.Value)
}

func TestMigrator_Rollback(t *testing.T) {
	db := openTestDB(t)
	m := NewMigrator(db)
	require.NoError(t, m.AutoMigrate())
	require.NoError(t, m.Run())

	require.NoError(t, m.Rollback())

	var records int64
	db.Model(&MigrationRecord{}).Count(&records)
	assert.Equal(t, int64(len(GetMigrations())-1), records)

	var settings int64
	db.Model(&models.SystemSettings{}).Count(&settings)
	assert.Zero(t, settings)
}
