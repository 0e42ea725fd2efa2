package models

import "time"

type ActionType string

const (
	ActionApproveContent   ActionType = "APPROVE_CONTENT"
	ActionRejectContent    ActionType = "REJECT_CONTENT"
	ActionEditContent      ActionType = "EDIT_CONTENT"
	ActionForceContent     ActionType = "FORCE_CONTENT_STATUS"
	ActionDeleteContent    ActionType = "DELETE_CONTENT"
	ActionPublishContent   ActionType = "PUBLISH_OFFICIAL_CONTENT"
	ActionApproveQuiz      ActionType = "APPROVE_QUIZ"
	ActionRejectQuiz       ActionType = "REJECT_QUIZ"
	ActionEditQuiz         ActionType = "EDIT_QUIZ"
	ActionForceQuiz        ActionType = "FORCE_QUIZ_STATUS"
	ActionDeleteQuiz       ActionType = "DELETE_QUIZ"
	ActionPublishQuiz      ActionType = "PUBLISH_OFFICIAL_QUIZ"
	ActionCreateSubject    ActionType = "CREATE_SUBJECT"
	ActionDeleteSubject    ActionType = "DELETE_SUBJECT"
	ActionManageSystem     ActionType = "MANAGE_SYSTEM"
	ActionPromoteModerator ActionType = "PROMOTE_MODERATOR"
)

// ModerationAction is the audit trail of moderator mutations.
type ModerationAction struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	ModeratorID string     `gorm:"index;type:text" json:"moderatorId"`
	Action      ActionType `gorm:"type:text" json:"action"`
	TargetID    string     `json:"targetId"`
	TargetType  string     `json:"targetType"` // "content", "quiz", "subject", "system"
	Reason      string     `json:"reason"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
}

func (ModerationAction) TableName() string {
	return "moderation_actions"
}
