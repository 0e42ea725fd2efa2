package services

import (
	"context"
	"io"
	"strconv"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const quizExportSheet = "Quiz Bank"

var quizExportHeader = []interface{}{
	"ID", "Topic", "Question", "Option A", "Option B", "Option C", "Option D",
	"Correct", "Status", "Submitted By", "Created At",
}

// ExportQuizBank writes every quiz question, in any state, to w as an xlsx
// workbook. Rows are ordered by topic and then age.
func ExportQuizBank(ctx context.Context, db *gorm.DB, w io.Writer) (int, error) {
	var questions []models.QuizQuestion
	if err := db.WithContext(ctx).Order("topic asc").Order("created_at asc").Order("id asc").Find(&questions).Error; err != nil {
		return 0, apperrors.Store(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quizExportSheet); err != nil {
		return 0, apperrors.Store(err)
	}
	if err := f.SetSheetRow(quizExportSheet, "A1", &quizExportHeader); err != nil {
		return 0, apperrors.Store(err)
	}

	for i, q := range questions {
		row := []interface{}{q.ID, q.Topic, q.QuestionText}
		for j := 0; j < models.QuizOptionCount; j++ {
			if j < len(q.Options) {
				row = append(row, q.Options[j])
			} else {
				row = append(row, "")
			}
		}
		submitter := ""
		if q.SubmittedBy != nil {
			submitter = *q.SubmittedBy
		}
		row = append(row, string(rune('A'+q.CorrectAnswer)), string(q.Status), submitter, q.CreatedAt.Format("2006-01-02 15:04:05"))

		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(quizExportSheet, cell, &row); err != nil {
			return 0, apperrors.Store(err)
		}
	}

	if err := f.SetPanes(quizExportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return 0, apperrors.Store(err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, apperrors.Store(err)
	}
	return len(questions), nil
}
