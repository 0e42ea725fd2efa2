package models

import (
	"time"

	"github.com/appnity/prepportal-backend/internal/moderation"
	"gorm.io/datatypes"
)

// QuizOptionCount is the fixed number of choices per question.
const QuizOptionCount = 4

// QuizQuestion is a single multiple-choice question. CorrectAnswer indexes Options.
type QuizQuestion struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Topic         string                      `gorm:"index;not null" json:"topic"`
	QuestionText  string                      `gorm:"type:text;not null" json:"questionText"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer int                         `json:"correctAnswer"`
	Status        moderation.Status           `gorm:"type:text;index;default:'pending'" json:"status"`

	SubmittedBy *string `gorm:"type:text" json:"submittedBy,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// StudentQuizQuestion is what students see before answering.
type StudentQuizQuestion struct {
	ID           string   `json:"id"`
	Topic        string   `json:"topic"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

func (q QuizQuestion) ForStudent() StudentQuizQuestion {
	return StudentQuizQuestion{
		ID:           q.ID,
		Topic:        q.Topic,
		QuestionText: q.QuestionText,
		Options:      []string(q.Options),
	}
}
