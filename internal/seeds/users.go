package seeds

import (
	"context"
	"errors"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const SystemUsername = "prepportal"

func newID() string {
	return utils.GenerateID()
}

// GetOrCreateSystemModerator returns the account official material is
// published under, creating it with password on first use.
func GetOrCreateSystemModerator(ctx context.Context, db *gorm.DB, password string) (models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("username = ?", SystemUsername).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user = models.User{
		ID:        newID(),
		Username:  SystemUsername,
		Password:  string(hash),
		Role:      models.RoleModerator,
		College:   "Prep Portal Team",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}

	logger.Info().Str("user_id", user.ID).Msg("System moderator created")
	return user, nil
}
