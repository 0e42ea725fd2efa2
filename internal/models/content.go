package models

import (
	"time"

	"github.com/appnity/prepportal-backend/internal/moderation"
)

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeVideo ContentType = "video"
	ContentTypePDF   ContentType = "pdf"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeText, ContentTypeVideo, ContentTypePDF:
		return true
	}
	return false
}

// ContentItem is one unit of study material: theory text, a video, a PDF or a
// DSA problem link. YoutubeEmbedLink holds a bare video id, never a URL.
type ContentItem struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Topic               string            `gorm:"index;not null" json:"topic"`
	QuestionText        string            `gorm:"type:text" json:"questionText"`
	Explanation         string            `gorm:"type:text" json:"explanation"`
	SourceURL           string            `gorm:"column:source_url" json:"sourceUrl"`
	DSAProblemLink      string            `gorm:"column:dsa_problem_link" json:"dsaProblemLink"`
	YoutubeSolutionLink string            `json:"youtubeSolutionLink"`
	YoutubeEmbedLink    string            `json:"youtubeEmbedLink"`
	VideoTitle          string            `json:"videoTitle"`
	PDFURL              string            `gorm:"column:pdf_url" json:"pdfUrl"`
	ContentType         ContentType       `gorm:"type:text;default:'text'" json:"contentType"`
	Status              moderation.Status `gorm:"type:text;index;default:'pending'" json:"status"`

	SubmittedBy *string `gorm:"type:text" json:"submittedBy,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

func (c ContentItem) TopicName() string { return c.Topic }
func (c ContentItem) DSALink() string   { return c.DSAProblemLink }
func (c ContentItem) EmbedID() string   { return c.YoutubeEmbedLink }
