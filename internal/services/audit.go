package services

import (
	"context"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"gorm.io/gorm"
)

// logModeration records a moderator mutation. It runs on the caller's
// transaction so the audit row commits or rolls back with the change.
func logModeration(tx *gorm.DB, moderatorID string, action models.ActionType, targetID, targetType, reason string) error {
	entry := models.ModerationAction{
		ID:          utils.GenerateID(),
		ModeratorID: moderatorID,
		Action:      action,
		TargetID:    targetID,
		TargetType:  targetType,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	return tx.Create(&entry).Error
}

// LogModeration is logModeration for callers outside this package.
func LogModeration(ctx context.Context, db *gorm.DB, moderatorID string, action models.ActionType, targetID, targetType, reason string) error {
	if err := logModeration(db.WithContext(ctx), moderatorID, action, targetID, targetType, reason); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// ListModerationActions returns the newest audit entries first.
func ListModerationActions(ctx context.Context, db *gorm.DB, limit int) ([]models.ModerationAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	actions := []models.ModerationAction{}
	if err := db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&actions).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return actions, nil
}
