package models

import "time"

// SystemSettings stores global configuration toggles
type SystemSettings struct {
	Key       string    `gorm:"primaryKey;type:text" json:"key"`
	Value     string    `json:"value"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}

// System setting keys (constants for type safety)
const (
	SettingMaintenanceMode     = "maintenance_mode"
	SettingSubmissionsEnabled  = "submissions_enabled"
	SettingRegistrationOpen    = "registration_open"
	SettingLeetcodeSyncEnabled = "leetcode_sync_enabled"
)

// KnownSettings lists the keys moderators may change.
var KnownSettings = []string{
	SettingMaintenanceMode,
	SettingSubmissionsEnabled,
	SettingRegistrationOpen,
	SettingLeetcodeSyncEnabled,
}

// All returns every model the server migrates.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Subject{},
		&ContentItem{},
		&QuizQuestion{},
		&UserScore{},
		&SolvedProblem{},
		&WatchedContent{},
		&ModerationAction{},
		&SystemSettings{},
	}
}

// QueueCounts is a helper struct for the moderator dashboard (not persisted)
type QueueCounts struct {
	PendingContent int64 `json:"pendingContent"`
	PendingQuiz    int64 `json:"pendingQuiz"`
	Subjects       int64 `json:"subjects"`
	Students       int64 `json:"students"`
}
