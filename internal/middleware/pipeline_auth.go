package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
)

// PipelineKeyHeader carries the shared key of the weekly cron trigger.
const PipelineKeyHeader = "X-API-Key"

// PipelineAuthMiddleware admits requests whose X-API-Key matches one of keys.
// Several keys may be active at once so a cron host can be moved to a new key
// before the old one is removed. No keys at all is a server misconfiguration.
func PipelineAuthMiddleware(keys []string) gin.HandlerFunc {
	accepted := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			accepted = append(accepted, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(accepted) == 0 {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrServerConfiguration, "Pipeline API key is not configured"))
			return
		}
		if !matchesAny(accepted, []byte(c.GetHeader(PipelineKeyHeader))) {
			logger.Get().Warnw("rejected pipeline trigger",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

// matchesAny compares against every key so timing does not reveal which one
// matched.
func matchesAny(keys [][]byte, got []byte) bool {
	ok := 0
	for _, k := range keys {
		ok |= subtle.ConstantTimeCompare(got, k)
	}
	return ok == 1
}
