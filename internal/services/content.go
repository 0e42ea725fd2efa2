package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/appnity/prepportal-backend/internal/classify"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/moderation"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/appnity/prepportal-backend/pkg/utils"
	"gorm.io/gorm"
)

const (
	approvedCachePrefix = "content:approved:"
	// Bumped after every committed mutation. Readers fold it into the key, so
	// a list written by a reader that raced a mutation is never read again.
	approvedCacheGenKey = "content:approved-gen"
	approvedCacheTTL    = 5 * time.Minute
)

// ContentInput is the body of a content submission.
type ContentInput struct {
	Topic               string `json:"topic" validate:"required,max=100"`
	QuestionText        string `json:"questionText" validate:"max=20000"`
	Explanation         string `json:"explanation" validate:"max=50000"`
	SourceURL           string `json:"sourceUrl" validate:"max=2048"`
	DSAProblemLink      string `json:"dsaProblemLink" validate:"max=2048"`
	YoutubeSolutionLink string `json:"youtubeSolutionLink" validate:"max=2048"`
	YoutubeEmbedLink    string `json:"youtubeEmbedLink" validate:"max=4096"`
	VideoTitle          string `json:"videoTitle" validate:"max=300"`
	PDFURL              string `json:"pdfUrl" validate:"max=2048"`
	ContentType         string `json:"contentType" validate:"omitempty,oneof=text video pdf"`
}

// ContentPatch lists the fields an edit may change. Status is deliberately
// absent; use ForceSetContentStatus.
type ContentPatch struct {
	Topic               *string `json:"topic"`
	QuestionText        *string `json:"questionText"`
	Explanation         *string `json:"explanation"`
	SourceURL           *string `json:"sourceUrl"`
	DSAProblemLink      *string `json:"dsaProblemLink"`
	YoutubeSolutionLink *string `json:"youtubeSolutionLink"`
	YoutubeEmbedLink    *string `json:"youtubeEmbedLink"`
	VideoTitle          *string `json:"videoTitle"`
	PDFURL              *string `json:"pdfUrl"`
	ContentType         *string `json:"contentType"`
}

func (in *ContentInput) normalize() {
	in.Topic = strings.TrimSpace(in.Topic)
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	in.Explanation = strings.TrimSpace(in.Explanation)
	in.SourceURL = strings.TrimSpace(in.SourceURL)
	in.DSAProblemLink = strings.TrimSpace(in.DSAProblemLink)
	in.YoutubeSolutionLink = strings.TrimSpace(in.YoutubeSolutionLink)
	in.YoutubeEmbedLink = strings.TrimSpace(classify.NormalizeYouTubeID(in.YoutubeEmbedLink))
	in.VideoTitle = strings.TrimSpace(in.VideoTitle)
	in.PDFURL = strings.TrimSpace(in.PDFURL)
	in.ContentType = strings.ToLower(strings.TrimSpace(in.ContentType))
}

func (in *ContentInput) validate(ctx context.Context, db *gorm.DB) error {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.QuestionText == "" && in.DSAProblemLink == "" && in.YoutubeEmbedLink == "" && in.PDFURL == "" {
		return apperrors.Validation("questionText is required unless a DSA link, video or PDF is given")
	}
	if err := in.validateLinks(); err != nil {
		return err
	}
	return requireSubject(ctx, db, in.Topic)
}

func (in ContentInput) contentType() models.ContentType {
	if in.ContentType != "" {
		return models.ContentType(in.ContentType)
	}
	switch {
	case in.PDFURL != "":
		return models.ContentTypePDF
	case in.YoutubeEmbedLink != "":
		return models.ContentTypeVideo
	}
	return models.ContentTypeText
}

func (in ContentInput) toItem(status moderation.Status, submitterID string) models.ContentItem {
	item := models.ContentItem{
		ID:                  utils.GenerateID(),
		CreatedAt:           time.Now(),
		Topic:               in.Topic,
		QuestionText:        in.QuestionText,
		Explanation:         in.Explanation,
		SourceURL:           in.SourceURL,
		DSAProblemLink:      in.DSAProblemLink,
		YoutubeSolutionLink: in.YoutubeSolutionLink,
		YoutubeEmbedLink:    in.YoutubeEmbedLink,
		VideoTitle:          in.VideoTitle,
		PDFURL:              in.PDFURL,
		ContentType:         in.contentType(),
		Status:              status,
	}
	if submitterID != "" {
		item.SubmittedBy = &submitterID
	}
	return item
}

// SubmitContent stores a student submission in the moderation queue.
func SubmitContent(ctx context.Context, db *gorm.DB, in ContentInput, submitterID string) (*models.ContentItem, error) {
	return createContent(ctx, db, in, submitterID, false)
}

// PublishOfficialContent inserts moderator content as approved, skipping the queue.
func PublishOfficialContent(ctx context.Context, db *gorm.DB, in ContentInput, moderatorID string) (*models.ContentItem, error) {
	return createContent(ctx, db, in, moderatorID, true)
}

func createContent(ctx context.Context, db *gorm.DB, in ContentInput, userID string, official bool) (*models.ContentItem, error) {
	if err := in.validate(ctx, db); err != nil {
		return nil, err
	}
	item := in.toItem(moderation.Initial(official), userID)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if official {
			return logModeration(tx, userID, models.ActionPublishContent, item.ID, "content", "Official: "+item.Topic)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Store(err)
	}

	if official {
		invalidateApprovedContent()
	}
	logger.Info().Str("content_id", item.ID).Str("topic", item.Topic).Str("status", string(item.Status)).Msg("Content created")
	return &item, nil
}

// GetContent loads a single item regardless of status.
func GetContent(ctx context.Context, db *gorm.DB, id string) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "Content not found", "")
	}
	return &item, nil
}

// ApproveContent moves an item to approved. Re-approving is accepted.
func ApproveContent(ctx context.Context, db *gorm.DB, id, moderatorID string) (*models.ContentItem, error) {
	return reviewContent(ctx, db, id, moderatorID, moderation.ActionApprove, models.ActionApproveContent)
}

// RejectContent moves an item to rejected.
func RejectContent(ctx context.Context, db *gorm.DB, id, moderatorID string) (*models.ContentItem, error) {
	return reviewContent(ctx, db, id, moderatorID, moderation.ActionReject, models.ActionRejectContent)
}

func reviewContent(ctx context.Context, db *gorm.DB, id, moderatorID string, action moderation.Action, audit models.ActionType) (*models.ContentItem, error) {
	var item models.ContentItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}
		from := item.Status
		next, err := moderation.Apply(from, action)
		if err != nil {
			return apperrors.Validation(err.Error())
		}
		if err := tx.Model(&item).Update("status", next).Error; err != nil {
			return err
		}
		item.Status = next
		return logModeration(tx, moderatorID, audit, id, "content", "from "+string(from))
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "Content not found", "")
	}

	invalidateApprovedContent()
	logger.Info().Str("content_id", id).Str("action", string(action)).Str("moderator_id", moderatorID).Msg("Content reviewed")
	return &item, nil
}

// ForceSetContentStatus is the administrative override: any state to any state.
func ForceSetContentStatus(ctx context.Context, db *gorm.DB, id string, target moderation.Status, moderatorID, reason string) (*models.ContentItem, error) {
	status, err := moderation.ForceSet(target)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var item models.ContentItem
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}
		from := item.Status
		if err := tx.Model(&item).Update("status", status).Error; err != nil {
			return err
		}
		item.Status = status
		return logModeration(tx, moderatorID, models.ActionForceContent, id, "content", string(from)+" -> "+string(status)+": "+reason)
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "Content not found", "")
	}

	invalidateApprovedContent()
	logger.Warn().Str("content_id", id).Str("status", string(status)).Str("moderator_id", moderatorID).Msg("Content status forced")
	return &item, nil
}

// EditContent applies an allow-listed patch. Status is never touched here.
func EditContent(ctx context.Context, db *gorm.DB, id string, patch ContentPatch, moderatorID string) (*models.ContentItem, error) {
	var item models.ContentItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}

		in := ContentInput{
			Topic:               pick(patch.Topic, item.Topic),
			QuestionText:        pick(patch.QuestionText, item.QuestionText),
			Explanation:         pick(patch.Explanation, item.Explanation),
			SourceURL:           pick(patch.SourceURL, item.SourceURL),
			DSAProblemLink:      pick(patch.DSAProblemLink, item.DSAProblemLink),
			YoutubeSolutionLink: pick(patch.YoutubeSolutionLink, item.YoutubeSolutionLink),
			YoutubeEmbedLink:    pick(patch.YoutubeEmbedLink, item.YoutubeEmbedLink),
			VideoTitle:          pick(patch.VideoTitle, item.VideoTitle),
			PDFURL:              pick(patch.PDFURL, item.PDFURL),
			ContentType:         pick(patch.ContentType, string(item.ContentType)),
		}
		if err := in.validate(ctx, tx); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"topic":                 in.Topic,
			"question_text":         in.QuestionText,
			"explanation":           in.Explanation,
			"source_url":            in.SourceURL,
			"dsa_problem_link":      in.DSAProblemLink,
			"youtube_solution_link": in.YoutubeSolutionLink,
			"youtube_embed_link":    in.YoutubeEmbedLink,
			"video_title":           in.VideoTitle,
			"pdf_url":               in.PDFURL,
			"content_type":          in.contentType(),
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}
		return logModeration(tx, moderatorID, models.ActionEditContent, id, "content", "Edited content")
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "Content not found", "")
	}

	invalidateApprovedContent()
	return &item, nil
}

// DeleteContent removes an item permanently together with the solved and
// watched marks that point at it.
func DeleteContent(ctx context.Context, db *gorm.DB, id, moderatorID string) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.ContentItem{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.SolvedProblem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.WatchedContent{}).Error; err != nil {
			return err
		}
		return logModeration(tx, moderatorID, models.ActionDeleteContent, id, "content", "Deleted content")
	})
	if err != nil {
		return apperrors.FromDB(err, "Content not found", "")
	}

	invalidateApprovedContent()
	return nil
}

// ListApprovedContent returns the student-visible items, newest first.
// An empty topic or "All" returns every topic.
func ListApprovedContent(ctx context.Context, db *gorm.DB, topic string) ([]models.ContentItem, error) {
	topic = strings.TrimSpace(topic)
	if topic == models.AllSubjects {
		topic = ""
	}

	items := []models.ContentItem{}
	cacheKey, cacheable := approvedCacheKey(topic)
	if cacheable {
		if err := database.CacheGet(cacheKey, &items); err == nil {
			return items, nil
		}
	}

	query := db.WithContext(ctx).Where("status = ?", moderation.StatusApproved)
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}
	if err := query.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, apperrors.Store(err)
	}

	if cacheable {
		if err := database.CacheSet(cacheKey, items, approvedCacheTTL); err != nil {
			logger.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache approved content")
		}
	}
	return items, nil
}

// ListPendingContent returns the moderation queue, oldest first.
func ListPendingContent(ctx context.Context, db *gorm.DB) ([]models.ContentItem, error) {
	items := []models.ContentItem{}
	if err := db.WithContext(ctx).
		Where("status = ?", moderation.StatusPending).
		Order("created_at asc").Order("id asc").
		Find(&items).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return items, nil
}

// ListAllContent returns every item in any state, newest first.
func ListAllContent(ctx context.Context, db *gorm.DB) ([]models.ContentItem, error) {
	items := []models.ContentItem{}
	if err := db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return items, nil
}

// approvedCacheKey must be read before the list query runs. It reports false
// when the generation cannot be read, and the caller then skips the cache.
func approvedCacheKey(topic string) (string, bool) {
	gen, err := database.CacheGeneration(approvedCacheGenKey)
	if err != nil {
		return "", false
	}
	return approvedCachePrefix + strconv.FormatInt(gen, 10) + ":" + topic, true
}

// invalidateApprovedContent runs after the mutation has committed.
func invalidateApprovedContent() {
	if err := database.BumpCacheGeneration(approvedCacheGenKey); err != nil {
		logger.Warn().Err(err).Msg("Failed to bump approved content cache generation")
		if err := database.CacheInvalidate(approvedCachePrefix + "*"); err != nil {
			logger.Error().Err(err).Msg("Failed to invalidate approved content cache")
		}
	}
}

func pick(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
