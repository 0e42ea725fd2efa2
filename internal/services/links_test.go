package services

import (
	"testing"

	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateDSALink(t *testing.T) {
	ok := []string{
		"https://leetcode.com/problems/two-sum/",
		"https://www.geeksforgeeks.org/problems/kadane/1",
		"https://practice.geeksforgeeks.org/problems/x",
		"http://codeforces.com/problemset/problem/4/A",
	}
	for _, link := range ok {
		assert.NoError(t, validateDSALink(link), link)
	}

	bad := []string{
		"leetcode.com/problems/two-sum",
		"ftp://leetcode.com/x",
		"https://evil-leetcode.com/problems/x",
		"https://example.com/problem",
		"javascript:alert(1)",
	}
	for _, link := range bad {
		err := validateDSALink(link)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), link)
	}
}

func TestValidateLinks(t *testing.T) {
	in := ContentInput{SourceURL: "https://dev.to/post", PDFURL: "/uploads/pdfs/a.pdf"}
	assert.NoError(t, in.validateLinks())

	in = ContentInput{PDFURL: "/uploads/../etc/passwd"}
	assert.Error(t, in.validateLinks())

	in = ContentInput{YoutubeSolutionLink: "not a url"}
	assert.Error(t, in.validateLinks())
}

func TestSubmitContent_RejectsUnknownJudge(t *testing.T) {
	db := setupTestDB(t)
	createSubject(t, db, "DSA")
	_, err := SubmitContent(bg, db, ContentInput{Topic: "DSA", DSAProblemLink: "https://example.com/p/1"}, "u1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
