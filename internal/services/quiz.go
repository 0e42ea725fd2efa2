package services

import (
	"context"
	"strings"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/moderation"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"gorm.io/gorm"
)

// QuizInput is the body of a quiz submission. CorrectAnswer is a pointer so a
// missing value is distinguishable from index 0.
type QuizInput struct {
	Topic         string   `json:"topic" validate:"required,max=100"`
	QuestionText  string   `json:"questionText" validate:"required,max=5000"`
	Options       []string `json:"options" validate:"len=4,dive,required,max=1000"`
	CorrectAnswer *int     `json:"correctAnswer" validate:"required,min=0,max=3"`
}

// QuizPatch lists the fields an edit may change.
type QuizPatch struct {
	Topic         *string   `json:"topic"`
	QuestionText  *string   `json:"questionText"`
	Options       *[]string `json:"options"`
	CorrectAnswer *int      `json:"correctAnswer"`
}

func (in *QuizInput) normalize() {
	in.Topic = strings.TrimSpace(in.Topic)
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	opts := make([]string, len(in.Options))
	for i, o := range in.Options {
		opts[i] = strings.TrimSpace(o)
	}
	in.Options = opts
}

func (in *QuizInput) validate(ctx context.Context, db *gorm.DB) error {
	in.normalize()
	if in.Options == nil {
		in.Options = []string{}
	}
	if err := validateStruct(in); err != nil {
		return err
	}
	return requireSubject(ctx, db, in.Topic)
}

// requireSubject enforces the enumerated topic set for content and quiz topics.
func requireSubject(ctx context.Context, db *gorm.DB, topic string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Subject{}).Where("name = ?", topic).Count(&count).Error; err != nil {
		return apperrors.Store(err)
	}
	if count == 0 {
		return apperrors.Validation("topic must be one of the registered subjects")
	}
	return nil
}

// SubmitQuiz stores a student question in the moderation queue.
func SubmitQuiz(ctx context.Context, db *gorm.DB, in QuizInput, submitterID string) (*models.QuizQuestion, error) {
	return createQuiz(ctx, db, in, submitterID, false)
}

// PublishOfficialQuiz inserts a moderator question as approved.
func PublishOfficialQuiz(ctx context.Context, db *gorm.DB, in QuizInput, moderatorID string) (*models.QuizQuestion, error) {
	return createQuiz(ctx, db, in, moderatorID, true)
}

func createQuiz(ctx context.Context, db *gorm.DB, in QuizInput, userID string, official bool) (*models.QuizQuestion, error) {
	if err := in.validate(ctx, db); err != nil {
		return nil, err
	}

	q := models.QuizQuestion{
		ID:            utils.GenerateID(),
		CreatedAt:     time.Now(),
		Topic:         in.Topic,
		QuestionText:  in.QuestionText,
		Options:       in.Options,
		CorrectAnswer: *in.CorrectAnswer,
		Status:        moderation.Initial(official),
	}
	if userID != "" {
		q.SubmittedBy = &userID
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&q).Error; err != nil {
			return err
		}
		if official {
			return logModeration(tx, userID, models.ActionPublishQuiz, q.ID, "quiz", "Official: "+q.Topic)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Store(err)
	}

	logger.Info().Str("quiz_id", q.ID).Str("topic", q.Topic).Str("status", string(q.Status)).Msg("Quiz question created")
	return &q, nil
}

// ApproveQuiz moves a question to approved.
func ApproveQuiz(ctx context.Context, db *gorm.DB, id, moderatorID string) (*models.QuizQuestion, error) {
	return reviewQuiz(ctx, db, id, moderatorID, moderation.ActionApprove, models.ActionApproveQuiz)
}

// RejectQuiz moves a question to rejected.
func RejectQuiz(ctx context.Context, db *gorm.DB, id, moderatorID string) (*models.QuizQuestion, error) {
	return reviewQuiz(ctx, db, id, moderatorID, moderation.ActionReject, models.ActionRejectQuiz)
}

func reviewQuiz(ctx context.Context, db *gorm.DB, id, moderatorID string, action moderation.Action, audit models.ActionType) (*models.QuizQuestion, error) {
	var q models.QuizQuestion
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, "id = ?", id).Error; err != nil {
			return err
		}
		from := q.Status
		next, err := moderation.Apply(from, action)
		if err != nil {
			return apperrors.Validation(err.Error())
		}
		if err := tx.Model(&q).Update("status", next).Error; err != nil {
			return err
		}
		q.Status = next
		return logModeration(tx, moderatorID, audit, id, "quiz", "from "+string(from))
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "Quiz question not found", "")
	}

	invalidateLeaderboard(q.Topic)
	logger.Info().Str("quiz_id", id).Str("action", string(action)).Str("moderator_id", moderatorID).Msg("Quiz question reviewed")
	return &q, nil
}

// ForceSetQuizStatus is the administrative status override for questions.
func ForceSetQuizStatus(ctx context.Context, db *gorm.DB, id string, target moderation.Status, moderatorID, reason string) (*models.QuizQuestion, error) {
	status, err := moderation.ForceSet(target)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var q models.QuizQuestion
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, "id = ?", id).Error; err != nil {
			return err
		}
		from := q.Status
		if err := tx.Model(&q).Update("status", status).Error; err != nil {
			return err
		}
		q.Status = status
		return logModeration(tx, moderatorID, models.ActionForceQuiz, id, "quiz", string(from)+" -> "+string(status)+": "+reason)
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "Quiz question not found", "")
	}

	logger.Warn().Str("quiz_id", id).Str("status", string(status)).Str("moderator_id", moderatorID).Msg("Quiz status forced")
	return &q, nil
}

// EditQuiz applies an allow-listed patch and re-validates the whole question.
func EditQuiz(ctx context.Context, db *gorm.DB, id string, patch QuizPatch, moderatorID string) (*models.QuizQuestion, error) {
	var q models.QuizQuestion
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, "id = ?", id).Error; err != nil {
			return err
		}

		correct := q.CorrectAnswer
		if patch.CorrectAnswer != nil {
			correct = *patch.CorrectAnswer
		}
		options := []string(q.Options)
		if patch.Options != nil {
			options = *patch.Options
		}
		in := QuizInput{
			Topic:         pick(patch.Topic, q.Topic),
			QuestionText:  pick(patch.QuestionText, q.QuestionText),
			Options:       options,
			CorrectAnswer: &correct,
		}
		if err := in.validate(ctx, tx); err != nil {
			return err
		}

		q.Topic = in.Topic
		q.QuestionText = in.QuestionText
		q.Options = in.Options
		q.CorrectAnswer = correct
		if err := tx.Model(&q).Select("topic", "question_text", "options", "correct_answer").Updates(&q).Error; err != nil {
			return err
		}
		return logModeration(tx, moderatorID, models.ActionEditQuiz, id, "quiz", "Edited quiz question")
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "Quiz question not found", "")
	}
	return &q, nil
}

// DeleteQuiz removes a question permanently.
func DeleteQuiz(ctx context.Context, db *gorm.DB, id, moderatorID string) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.QuizQuestion{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return logModeration(tx, moderatorID, models.ActionDeleteQuiz, id, "quiz", "Deleted quiz question")
	})
	if err != nil {
		return apperrors.FromDB(err, "Quiz question not found", "")
	}
	return nil
}

// ListQuizByTopic returns approved questions for a topic. With sample > 0 it
// returns at most sample questions in random order; otherwise oldest first.
func ListQuizByTopic(ctx context.Context, db *gorm.DB, topic string, sample int) ([]models.QuizQuestion, error) {
	questions := []models.QuizQuestion{}
	query := db.WithContext(ctx).Where("topic = ? AND status = ?", strings.TrimSpace(topic), moderation.StatusApproved)
	if sample > 0 {
		query = query.Order("RANDOM()").Limit(sample)
	} else {
		query = query.Order("created_at asc").Order("id asc")
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return questions, nil
}

// ListPendingQuiz returns the quiz moderation queue, oldest first.
func ListPendingQuiz(ctx context.Context, db *gorm.DB) ([]models.QuizQuestion, error) {
	questions := []models.QuizQuestion{}
	if err := db.WithContext(ctx).
		Where("status = ?", moderation.StatusPending).
		Order("created_at asc").Order("id asc").
		Find(&questions).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return questions, nil
}

// ListAllQuiz returns every question in any state, newest first.
func ListAllQuiz(ctx context.Context, db *gorm.DB) ([]models.QuizQuestion, error) {
	questions := []models.QuizQuestion{}
	if err := db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&questions).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return questions, nil
}
