package database

import (
	"time"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig is shared by the server, the CLI tools and the test setups so
// that unique violations surface as gorm.ErrDuplicatedKey everywhere.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}
}

func Connect() {
	dsn := config.AppConfig.DatabaseURL
	db, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to get underlying sql.DB")
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	DB = db
	logger.Info().Int("max_open", 25).Int("max_idle", 10).Msg("Connected to PostgreSQL")
}

// IsFeatureEnabled checks if a system setting (feature flag) is set to "true"
func IsFeatureEnabled(key string) bool {
	return GetSetting(key) == "true"
}

// GetSetting returns the raw value of a system setting, or "" when unset.
func GetSetting(key string) string {
	if DB == nil {
		return ""
	}
	var setting struct {
		Value string
	}
	if err := DB.Table("system_settings").Select("value").Where("key = ?", key).Limit(1).Scan(&setting).Error; err != nil {
		return ""
	}
	return setting.Value
}
