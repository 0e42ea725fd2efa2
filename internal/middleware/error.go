package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// WriteError renders err as {"error": message}. AppErrors keep their status;
// anything else becomes a generic 500.
func WriteError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error().Err(appErr.Unwrap()).Str("kind", string(appErr.Kind)).Str("path", c.Request.URL.Path).Msg(appErr.Message)
		}
		c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// ErrorHandlerMiddleware handles panics and errors attached with c.Error that
// no handler rendered.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal Server Error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			WriteError(c, c.Errors.Last().Err)
		}
	}
}
