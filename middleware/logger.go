package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-backend/apperrors"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs its outcome along with
// any errors handlers recorded through c.Error.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
		}
		if claims, ok := Claims(c); ok {
			attrs = append(attrs, "user_id", claims.User.ID)
		}

		if len(c.Errors) == 0 {
			logger.Info("request", attrs...)
			return
		}
		last := c.Errors.Last().Err
		attrs = append(attrs,
			"error", c.Errors.String(),
			"error_kind", apperrors.KindOf(last).String(),
		)
		if status >= 500 {
			logger.Error("request failed", attrs...)
			return
		}
		logger.Warn("request rejected", attrs...)
	}
}
