package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"gorm.io/gorm"
)

// ListSubjects returns subject names sorted, with the synthetic "All" first.
func ListSubjects(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	if err := db.WithContext(ctx).Model(&models.Subject{}).Order("name asc").Pluck("name", &names).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return append([]string{models.AllSubjects}, names...), nil
}

// AddSubject registers a new subject name.
func AddSubject(ctx context.Context, db *gorm.DB, name, moderatorID string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if strings.EqualFold(name, models.AllSubjects) {
		return nil, apperrors.Validation(`"All" is reserved`)
	}
	if len(name) > 100 {
		return nil, apperrors.Validation("name must be at most 100 characters")
	}

	subject := models.Subject{ID: utils.GenerateID(), Name: name, CreatedAt: time.Now()}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subject).Error; err != nil {
			return err
		}
		return logModeration(tx, moderatorID, models.ActionCreateSubject, subject.ID, "subject", name)
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "", "Subject already exists")
	}
	return &subject, nil
}

// DeleteSubject removes a subject by name. Content and quiz rows that use the
// name are left as they are; the number of such rows is returned.
func DeleteSubject(ctx context.Context, db *gorm.DB, name, moderatorID string) (int64, error) {
	name = strings.TrimSpace(name)
	var orphaned int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).Delete(&models.Subject{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var contentRefs, quizRefs int64
		if err := tx.Model(&models.ContentItem{}).Where("topic = ?", name).Count(&contentRefs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.QuizQuestion{}).Where("topic = ?", name).Count(&quizRefs).Error; err != nil {
			return err
		}
		orphaned = contentRefs + quizRefs
		return logModeration(tx, moderatorID, models.ActionDeleteSubject, name, "subject", "orphaned rows: "+strconv.FormatInt(orphaned, 10))
	})
	if err != nil {
		return 0, apperrors.FromDB(err, "Subject not found", "")
	}

	if orphaned > 0 {
		logger.Warn().Str("subject", name).Int64("orphaned", orphaned).Msg("Subject deleted with dependent records")
	}
	return orphaned, nil
}
