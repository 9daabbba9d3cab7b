package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
)

// ErrorHandler converts errors pushed onto the gin context with c.Error into
// the standard JSON envelope. Unexpected errors are logged in full and
// answered with a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			logger.Get().Errorw("unexpected error",
				"error", err.Error(),
				"request_id", c.GetString(requestIDKey),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			abortWithError(c, apperrors.ErrInternalServer)
			return
		}

		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"request_id", c.GetString(requestIDKey),
				"path", c.Request.URL.Path,
			)
		}
		abortWithError(c, appErr)
	}
}
