package seeds

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/appnity/prepportal-backend/internal/models"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type ContentSeed struct {
	Topic               string `yaml:"topic"`
	QuestionText        string `yaml:"questionText"`
	Explanation         string `yaml:"explanation"`
	SourceURL           string `yaml:"sourceUrl"`
	DSAProblemLink      string `yaml:"dsaProblemLink"`
	YoutubeSolutionLink string `yaml:"youtubeSolutionLink"`
	YoutubeEmbedLink    string `yaml:"youtubeEmbedLink"`
	VideoTitle          string `yaml:"videoTitle"`
	PDFURL              string `yaml:"pdfUrl"`
	ContentType         string `yaml:"contentType"`
}

type QuizSeed struct {
	Topic         string   `yaml:"topic"`
	QuestionText  string   `yaml:"questionText"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correctAnswer"`
}

// Catalog is the official starter material.
type Catalog struct {
	Subjects []string      `yaml:"subjects"`
	Content  []ContentSeed `yaml:"content"`
	Quiz     []QuizSeed    `yaml:"quiz"`
}

// SeedResult counts what a run inserted.
type SeedResult struct {
	Subjects int
	Content  int
	Quiz     int
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// SeedCatalog inserts the catalog as official, approved material published by
// moderatorID. Entries whose topic and question or video title already exist
// are skipped, so running it twice is safe.
func SeedCatalog(ctx context.Context, db *gorm.DB, c *Catalog, moderatorID string) (SeedResult, error) {
	var res SeedResult

	for _, name := range c.Subjects {
		tx := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Subject{ID: newID(), Name: name})
		if tx.Error != nil {
			return res, fmt.Errorf("seed subject %q: %w", name, tx.Error)
		}
		res.Subjects += int(tx.RowsAffected)
	}

	for _, s := range c.Content {
		var count int64
		db.WithContext(ctx).Model(&models.ContentItem{}).
			Where("topic = ? AND question_text = ? AND video_title = ?", s.Topic, s.QuestionText, s.VideoTitle).
			Count(&count)
		if count > 0 {
			continue
		}

		in := services.ContentInput{
			Topic:               s.Topic,
			QuestionText:        s.QuestionText,
			Explanation:         s.Explanation,
			SourceURL:           s.SourceURL,
			DSAProblemLink:      s.DSAProblemLink,
			YoutubeSolutionLink: s.YoutubeSolutionLink,
			YoutubeEmbedLink:    s.YoutubeEmbedLink,
			VideoTitle:          s.VideoTitle,
			PDFURL:              s.PDFURL,
			ContentType:         s.ContentType,
		}
		if _, err := services.PublishOfficialContent(ctx, db, in, moderatorID); err != nil {
			return res, fmt.Errorf("seed content %q/%q: %w", s.Topic, s.QuestionText+s.VideoTitle, err)
		}
		res.Content++
	}

	for _, s := range c.Quiz {
		var count int64
		db.WithContext(ctx).Model(&models.QuizQuestion{}).
			Where("topic = ? AND question_text = ?", s.Topic, s.QuestionText).
			Count(&count)
		if count > 0 {
			continue
		}

		correct := s.CorrectAnswer
		in := services.QuizInput{
			Topic:         s.Topic,
			QuestionText:  s.QuestionText,
			Options:       s.Options,
			CorrectAnswer: &correct,
		}
		if _, err := services.PublishOfficialQuiz(ctx, db, in, moderatorID); err != nil {
			return res, fmt.Errorf("seed quiz %q: %w", s.QuestionText, err)
		}
		res.Quiz++
	}

	logger.Info().Int("subjects", res.Subjects).Int("content", res.Content).Int("quiz", res.Quiz).Msg("Catalog seeded")
	return res, nil
}
