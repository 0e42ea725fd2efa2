package services

import (
	"context"
	"testing"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func acceptEmail(context.Context, string, string) error { return nil }

func TestRegisterAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	user, err := RegisterUser(bg, db, RegisterInput{Username: "ravi_k", Password: "secret1", Email: "Ravi@Example.com"}, acceptEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	require.NotNil(t, user.Email)
	assert.Equal(t, "ravi@example.com", *user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = RegisterUser(bg, db, RegisterInput{Username: "ravi_k", Password: "secret1"}, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = RegisterUser(bg, db, RegisterInput{Username: "other", Password: "secret1", Email: "ravi@example.com"}, acceptEmail)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = RegisterUser(bg, db, RegisterInput{Username: "bad name!", Password: "secret1"}, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = RegisterUser(bg, db, RegisterInput{Username: "shorty", Password: "123"}, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	got, err := Authenticate(bg, db, "ravi_k", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = Authenticate(bg, db, "RAVI@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = Authenticate(bg, db, "ravi_k", "wrong")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	_, err = Authenticate(bg, db, "ghost", "secret1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestRegisterUser_VerificationRunsLast(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "taken", models.RoleStudent)

	calls := 0
	counting := func(context.Context, string, string) error {
		calls++
		return nil
	}

	_, err := RegisterUser(bg, db, RegisterInput{Username: "taken", Password: "secret1", Email: "a@b.co"}, counting)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	_, err = RegisterUser(bg, db, RegisterInput{Username: "fresh", Password: "123", Email: "a@b.co"}, counting)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, calls, "verification is not spent on a rejected registration")

	_, err = RegisterUser(bg, db, RegisterInput{Username: "fresh", Password: "secret1", Email: "a@b.co"}, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "an email needs a verifier")

	refuse := func(context.Context, string, string) error { return apperrors.Validation("Email has not been verified") }
	_, err = RegisterUser(bg, db, RegisterInput{Username: "fresh", Password: "secret1", Email: "a@b.co"}, refuse)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	var n int64
	db.Model(&models.User{}).Where("username = ?", "fresh").Count(&n)
	assert.Zero(t, n, "a failed verification rolls the account back")

	_, err = RegisterUser(bg, db, RegisterInput{Username: "fresh", Password: "secret1", Email: "a@b.co"}, counting)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRegisterUser_KeepsOTPOnConflict(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "taken", models.RoleStudent)
	mailer := &fakeMailer{}
	otp := NewOTPService(NewMemoryOTPStore(), mailer)

	require.NoError(t, otp.Request(bg, "dev@college.edu"))
	code := mailer.codes["dev@college.edu"]

	_, err := RegisterUser(bg, db, RegisterInput{Username: "taken", Password: "secret1", Email: "dev@college.edu", OTP: code}, otp.ConfirmRegistration)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	user, err := RegisterUser(bg, db, RegisterInput{Username: "dev", Password: "secret1", Email: "dev@college.edu", OTP: code}, otp.ConfirmRegistration)
	require.NoError(t, err)
	assert.Equal(t, "dev", user.Username)

	err = otp.Verify(bg, "dev@college.edu", code)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "the code is spent once the account exists")
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "profiled", models.RoleStudent)

	updated, err := UpdateProfile(bg, db, user.ID, ProfileInput{
		DOB:        strPtr("2002-05-17"),
		College:    strPtr(" <b>NIT</b> Trichy "),
		LeetcodeID: strPtr("ravi_lc"),
	})
	require.NoError(t, err)
	assert.Equal(t, "NIT Trichy", updated.College)
	assert.Equal(t, "ravi_lc", updated.LeetcodeID)
	require.NotNil(t, updated.DOB)
	assert.Equal(t, 2002, updated.DOB.Year())

	_, err = UpdateProfile(bg, db, user.ID, ProfileInput{DOB: strPtr("17/05/2002")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	_, err = UpdateProfile(bg, db, user.ID, ProfileInput{DOB: strPtr("2999-01-01")})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	cleared, err := UpdateProfile(bg, db, user.ID, ProfileInput{DOB: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.DOB)
	assert.Equal(t, "NIT Trichy", cleared.College, "untouched fields survive")

	_, err = UpdateProfile(bg, db, "missing", ProfileInput{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSetAvatarAndPromote(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "future_mod", models.RoleStudent)

	require.NoError(t, SetAvatar(bg, db, user.ID, "/uploads/avatars/x.png"))
	assert.True(t, apperrors.IsKind(SetAvatar(bg, db, "missing", "p"), apperrors.KindNotFound))

	promoted, err := PromoteModerator(bg, db, "future_mod", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, promoted.Role)

	stored, err := GetUser(bg, db, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsModerator())
	assert.Equal(t, "/uploads/avatars/x.png", stored.DP)

	_, err = PromoteModerator(bg, db, "nobody", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
