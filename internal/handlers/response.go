package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/appnity/prepportal-backend/internal/middleware"
	"github.com/appnity/prepportal-backend/internal/services"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/gin-gonic/gin"
)

// Collaborators wired in main. Tests swap them for fakes.
var (
	Files    services.FileStore
	OTP      *services.OTPService
	LeetCode *services.LeetCodeClient
)

// fail attaches err for the logger and renders it.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	middleware.WriteError(c, err)
}

func currentUserID(c *gin.Context) string {
	return c.GetString("userId")
}

// bindStrict decodes a JSON body and rejects unknown fields, so a patch that
// names a field outside the allow-list fails instead of being ignored.
func bindStrict(c *gin.Context, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20))
	if err != nil {
		return apperrors.Validation("Request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Validation("Invalid request body: " + err.Error())
	}
	return nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
