package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

// RegisterInput is the sign-up body. Email is optional; when present it must
// be verified with an inline OTP or through an earlier verify call.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"omitempty,email"`
	OTP      string `json:"otp" validate:"omitempty,len=6,numeric"`
}

// ProfileInput lists the editable profile fields.
type ProfileInput struct {
	DOB        *string `json:"dob"`
	College    *string `json:"college" validate:"omitempty,max=200"`
	Branch     *string `json:"branch" validate:"omitempty,max=100"`
	LeetcodeID *string `json:"leetcodeId" validate:"omitempty,max=50"`
}

// EmailVerifier confirms that the registrant owns email. It runs inside the
// registration transaction after the account row is written, so any earlier
// failure leaves the verification unspent.
type EmailVerifier func(ctx context.Context, email, otp string) error

// RegisterUser creates a student account. An email needs a verifier.
func RegisterUser(ctx context.Context, db *gorm.DB, in RegisterInput, verify EmailVerifier) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = utils.NormalizeEmail(in.Email)
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if !utils.ValidateUsername(in.Username) {
		return nil, apperrors.Validation("Username must be 3-30 characters of letters, numbers, underscores or hyphens")
	}
	if in.Email != "" && verify == nil {
		return nil, apperrors.Validation("Email verification is not available")
	}

	var taken int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&taken).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	if taken > 0 {
		return nil, apperrors.Conflict("Username already taken")
	}
	if in.Email != "" {
		if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.Email).Count(&taken).Error; err != nil {
			return nil, apperrors.Store(err)
		}
		if taken > 0 {
			return nil, apperrors.Conflict("An account with this email already exists")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, apperrors.NewAppError(apperrors.KindStore, 500, "Failed to hash password")
	}

	user := models.User{
		ID:       utils.GenerateID(),
		Username: in.Username,
		Password: string(hashed),
		Role:     models.RoleStudent,
	}
	if in.Email != "" {
		user.Email = &in.Email
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if in.Email != "" {
			return verify(ctx, in.Email, in.OTP)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "", "Username or email already taken")
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")
	return &user, nil
}

// Authenticate checks a username (or email) and password pair.
func Authenticate(ctx context.Context, db *gorm.DB, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var user models.User
	err := db.WithContext(ctx).Where("username = ? OR email = ?", login, utils.NormalizeEmail(login)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Str("login", login).Msg("Login failed: user not found")
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Store(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Warn().Str("user_id", user.ID).Msg("Login failed: invalid password")
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return &user, nil
}

func GetUser(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "User not found", "")
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields. DOB is a YYYY-MM-DD date; an empty
// string clears it.
func UpdateProfile(ctx context.Context, db *gorm.DB, id string, in ProfileInput) (*models.User, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.DOB != nil {
		raw := strings.TrimSpace(*in.DOB)
		if raw == "" {
			updates["dob"] = nil
		} else {
			dob, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, apperrors.Validation("dob must be a date in YYYY-MM-DD format")
			}
			if dob.After(time.Now()) {
				return nil, apperrors.Validation("dob must be in the past")
			}
			updates["dob"] = dob
		}
	}
	if in.College != nil {
		updates["college"] = utils.StripHTML(strings.TrimSpace(*in.College))
	}
	if in.Branch != nil {
		updates["branch"] = utils.StripHTML(strings.TrimSpace(*in.Branch))
	}
	if in.LeetcodeID != nil {
		updates["leetcode_id"] = strings.TrimSpace(*in.LeetcodeID)
	}

	user, err := GetUser(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return GetUser(ctx, db, id)
}

// SetAvatar stores the path returned by the file store.
func SetAvatar(ctx context.Context, db *gorm.DB, id, path string) error {
	res := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("dp", path)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("User not found")
	}
	return nil
}

// PromoteModerator grants the moderator role. actorID is empty when run from
// the command line.
func PromoteModerator(ctx context.Context, db *gorm.DB, login, actorID string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ? OR email = ?", login, utils.NormalizeEmail(login)).First(&user).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Update("role", models.RoleModerator).Error; err != nil {
			return err
		}
		user.Role = models.RoleModerator
		return logModeration(tx, actorID, models.ActionPromoteModerator, user.ID, "user", "Promoted "+user.Username)
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "User not found", "")
	}
	return &user, nil
}
