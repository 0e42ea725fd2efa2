package services

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/moderation"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSystemSettings returns the stored toggles as a key/value map.
func GetSystemSettings(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	var settings []models.SystemSettings
	if err := db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}

// UpdateSystemSetting upserts one known toggle. Values must parse as bools.
func UpdateSystemSetting(ctx context.Context, db *gorm.DB, key, value, moderatorID string) (*models.SystemSettings, error) {
	if !slices.Contains(models.KnownSettings, key) {
		return nil, apperrors.Validation("Invalid setting key")
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apperrors.Validation("value must be true or false")
	}

	setting := models.SystemSettings{
		Key:       key,
		Value:     strconv.FormatBool(b),
		UpdatedBy: moderatorID,
		UpdatedAt: time.Now(),
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		}).Create(&setting).Error; err != nil {
			return err
		}
		return logModeration(tx, moderatorID, models.ActionManageSystem, key, "system", "Changed to: "+setting.Value)
	})
	if err != nil {
		return nil, apperrors.Store(err)
	}

	logger.Warn().Str("key", key).Str("value", setting.Value).Str("moderator_id", moderatorID).Msg("System setting changed")
	return &setting, nil
}

// GetQueueCounts feeds the moderator dashboard.
func GetQueueCounts(ctx context.Context, db *gorm.DB) (*models.QueueCounts, error) {
	var counts models.QueueCounts
	tx := db.WithContext(ctx)

	if err := tx.Model(&models.ContentItem{}).Where("status = ?", moderation.StatusPending).Count(&counts.PendingContent).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	if err := tx.Model(&models.QuizQuestion{}).Where("status = ?", moderation.StatusPending).Count(&counts.PendingQuiz).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	if err := tx.Model(&models.Subject{}).Count(&counts.Subjects).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	if err := tx.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&counts.Students).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return &counts, nil
}
