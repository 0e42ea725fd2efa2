package models

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleModerator Role = "moderator"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username string  `gorm:"uniqueIndex;not null" json:"username"`
	Email    *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string  `json:"-"`
	Role     Role    `gorm:"type:text;default:'student'" json:"role"`

	// Profile
	DOB        *time.Time `gorm:"column:dob" json:"dob,omitempty"`
	College    string     `json:"college"`
	Branch     string     `json:"branch"`
	LeetcodeID string     `json:"leetcodeId"`
	DP         string     `gorm:"column:dp" json:"dp"` // avatar path

	LeetcodeStats    datatypes.JSON `json:"leetcodeStats,omitempty"`
	LeetcodeSyncedAt *time.Time     `json:"leetcodeSyncedAt,omitempty"`

	Scores []UserScore `gorm:"foreignKey:UserID" json:"scores,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IsModerator() bool {
	return u.Role == RoleModerator
}
