package migrations

import (
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migration002DefaultSettings stores the initial toggles. Existing values are
// left alone.
func Migration002DefaultSettings() Migration {
	defaults := map[string]string{
		models.SettingMaintenanceMode:     "false",
		models.SettingSubmissionsEnabled:  "true",
		models.SettingRegistrationOpen:    "true",
		models.SettingLeetcodeSyncEnabled: "true",
	}

	return Migration{
		ID:        "002_default_settings",
		Name:      "Seed default system settings",
		DependsOn: []string{"001_queue_indexes"},
		Up: func(db *gorm.DB) error {
			now := time.Now()
			rows := make([]models.SystemSettings, 0, len(defaults))
			for _, key := range models.KnownSettings {
				rows = append(rows, models.SystemSettings{Key: key, Value: defaults[key], UpdatedBy: "system", UpdatedAt: now})
			}
			return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Where("updated_by = ?", "system").Delete(&models.SystemSettings{}).Error
		},
	}
}
