package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/services"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

const (
	maxPDFSize    = 20 << 20
	maxAvatarSize = 2 << 20
)

var avatarTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// saveUpload checks the "file" form field and hands it to the file store.
func saveUpload(c *gin.Context, folder string, maxSize int64, allowed map[string]string) (string, *multipart.FileHeader, error) {
	if Files == nil {
		return "", nil, apperrors.NewAppError(apperrors.KindUpstream, http.StatusServiceUnavailable, "File storage is not configured")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, apperrors.Validation("file is required")
	}
	if header.Size > maxSize {
		return "", nil, apperrors.Validation("file is too large")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowed[ext]
	if !ok {
		return "", nil, apperrors.Validation("unsupported file type " + ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, apperrors.Validation("could not read upload")
	}
	defer file.Close()

	path, err := Files.Save(c.Request.Context(), folder, header.Filename, contentType, file)
	if err != nil {
		return "", nil, err
	}
	return path, header, nil
}

// UploadPDF stores a study PDF and returns its path for use as pdfUrl.
func UploadPDF(c *gin.Context) {
	path, header, err := saveUpload(c, "pdfs", maxPDFSize, map[string]string{".pdf": "application/pdf"})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path, "size": header.Size})
}

func UploadAvatar(c *gin.Context) {
	path, _, err := saveUpload(c, "avatars", maxAvatarSize, avatarTypes)
	if err != nil {
		fail(c, err)
		return
	}
	if err := services.SetAvatar(c.Request.Context(), database.DB, currentUserID(c), path); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dp": path})
}
