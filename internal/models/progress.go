package models

import "time"

// UserScore is a user's quiz record for one topic. HighScore never decreases.
type UserScore struct {
	UserID      string    `gorm:"primaryKey;type:text" json:"-"`
	Topic       string    `gorm:"primaryKey;type:text" json:"topic"`
	HighScore   int       `gorm:"not null;default:0" json:"highScore"`
	LastScore   int       `gorm:"not null;default:0" json:"lastScore"`
	LastAttempt time.Time `json:"lastAttempt"`
}

func (UserScore) TableName() string {
	return "user_scores"
}

// SolvedProblem marks a DSA content item as solved by a user. The composite key
// makes the pair a set member.
type SolvedProblem struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	ContentID string    `gorm:"primaryKey;type:text;index" json:"contentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SolvedProblem) TableName() string {
	return "solved_problems"
}

// WatchedContent marks a content item as watched by a user.
type WatchedContent struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	ContentID string    `gorm:"primaryKey;type:text;index" json:"contentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (WatchedContent) TableName() string {
	return "watched_contents"
}
