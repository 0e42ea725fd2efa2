package services

import (
	"context"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/moderation"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrQuizUnavailable is returned when a topic has no approved questions. It is
// not a zero score.
var ErrQuizUnavailable = apperrors.NotFound("No approved questions for this topic")

// QuizResult carries the score together with the question count so callers
// can derive a percentage.
type QuizResult struct {
	Topic       string    `json:"topic"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	HighScore   int       `json:"highScore"`
	LastAttempt time.Time `json:"lastAttempt"`
}

// Progress is a user's aggregated study state.
type Progress struct {
	Scores         []models.UserScore `json:"scores"`
	SolvedDSA      []string           `json:"solvedDSA"`
	WatchedContent []string           `json:"watchedContent"`
}

// ScoreAnswers counts exact matches. Questions missing from answers are wrong.
func ScoreAnswers(questions []models.QuizQuestion, answers map[string]int) int {
	score := 0
	for _, q := range questions {
		if picked, ok := answers[q.ID]; ok && picked == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// SubmitQuizAttempt scores answers against every approved question of topic
// and upserts the user's score row in one statement. The high score only
// moves up.
func SubmitQuizAttempt(ctx context.Context, db *gorm.DB, userID, topic string, answers map[string]int) (*QuizResult, error) {
	questions, err := ListQuizByTopic(ctx, db, topic, 0)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuizUnavailable
	}

	score := ScoreAnswers(questions, answers)
	now := time.Now()

	row := models.UserScore{
		UserID:      userID,
		Topic:       questions[0].Topic,
		HighScore:   score,
		LastScore:   score,
		LastAttempt: now,
	}
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "topic"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_score":   score,
			"last_attempt": now,
			"high_score":   gorm.Expr("CASE WHEN user_scores.high_score > ? THEN user_scores.high_score ELSE ? END", score, score),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}

	var stored models.UserScore
	if err := db.WithContext(ctx).First(&stored, "user_id = ? AND topic = ?", userID, row.Topic).Error; err != nil {
		return nil, apperrors.Store(err)
	}

	invalidateLeaderboard(row.Topic)
	logger.Info().Str("user_id", userID).Str("topic", row.Topic).Int("score", score).Int("total", len(questions)).Msg("Quiz attempt recorded")

	return &QuizResult{
		Topic:       row.Topic,
		Score:       score,
		Total:       len(questions),
		HighScore:   stored.HighScore,
		LastAttempt: stored.LastAttempt,
	}, nil
}

// SetDSASolved sets the solved state of a DSA problem to the explicit target.
// Both directions are single keyed statements, so repeating a call with the
// same target is a no-op and concurrent calls cannot lose an update. Clearing
// never looks the problem up, so entries for withdrawn items can be removed.
func SetDSASolved(ctx context.Context, db *gorm.DB, userID, problemID string, solved bool) error {
	tx := db.WithContext(ctx)
	if !solved {
		if err := tx.Where("user_id = ? AND content_id = ?", userID, problemID).Delete(&models.SolvedProblem{}).Error; err != nil {
			return apperrors.Store(err)
		}
		return nil
	}

	item, err := getVisibleContent(ctx, db, problemID)
	if err != nil {
		return err
	}
	if item.DSAProblemLink == "" {
		return apperrors.Validation("Content is not a DSA problem")
	}

	err = tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SolvedProblem{UserID: userID, ContentID: problemID, CreatedAt: time.Now()}).Error
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// MarkWatched adds contentID to the user's watched set. Marking twice is fine.
func MarkWatched(ctx context.Context, db *gorm.DB, userID, contentID string) error {
	if _, err := getVisibleContent(ctx, db, contentID); err != nil {
		return err
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.WatchedContent{UserID: userID, ContentID: contentID, CreatedAt: time.Now()}).Error
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// getVisibleContent loads an item students may see. Pending and rejected
// items look the same as missing ones.
func getVisibleContent(ctx context.Context, db *gorm.DB, id string) (*models.ContentItem, error) {
	item, err := GetContent(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !item.Status.Visible() {
		return nil, apperrors.NotFound("Content not found")
	}
	return item, nil
}

// GetProgress loads scores and the solved and watched sets.
func GetProgress(ctx context.Context, db *gorm.DB, userID string) (*Progress, error) {
	tx := db.WithContext(ctx)
	p := &Progress{
		Scores:         []models.UserScore{},
		SolvedDSA:      []string{},
		WatchedContent: []string{},
	}
	if err := tx.Where("user_id = ?", userID).Order("topic asc").Find(&p.Scores).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	if err := tx.Model(&models.SolvedProblem{}).Where("user_id = ?", userID).Order("created_at asc").Pluck("content_id", &p.SolvedDSA).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	if err := tx.Model(&models.WatchedContent{}).Where("user_id = ?", userID).Order("created_at asc").Pluck("content_id", &p.WatchedContent).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return p, nil
}

// CountApprovedQuestions reports how many approved questions a topic has.
func CountApprovedQuestions(ctx context.Context, db *gorm.DB, topic string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.QuizQuestion{}).
		Where("topic = ? AND status = ?", topic, moderation.StatusApproved).
		Count(&n).Error
	if err != nil {
		return 0, apperrors.Store(err)
	}
	return n, nil
}
