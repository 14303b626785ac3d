package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

const headerRequestID = "X-Request-Id"

// requestLogger tags every request with an id and logs method, path, status
// and duration on completion.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	l := logger.WithComponent(log.ComponentHTTP)
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		start := time.Now()
		c.Next()

		l.InfoContext(c.Request.Context(), "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, c.Request.Method,
			log.FieldPath, c.Request.URL.Path,
			log.FieldStatusCode, c.Writer.Status(),
			log.FieldDuration, time.Since(start),
			log.FieldClientIP, c.ClientIP(),
		)
	}
}

// securityHeaders sets conservative browser-facing response headers.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
