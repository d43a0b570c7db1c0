package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slack-notifier/pkg/logger"
)

func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		requestID := logger.GetRequestID(c.Request.Context())

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		log.LogAttrs(c.Request.Context(), level, "HTTP request completed",
			logger.HTTPFields(
				requestID,
				method,
				path,
				c.ClientIP(),
				status,
				duration.Milliseconds(),
				int(c.Request.ContentLength),
				c.Writer.Size(),
			),
		)
	}
}
