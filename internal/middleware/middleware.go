package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLog logs every request once it completes. Server errors log at warn level.
func (m Middleware) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		if status >= 500 {
			m.l.Warnf(ctx, "%s %s | Status: %d | Latency: %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
			return
		}
		m.l.Debugf(ctx, "%s %s | Status: %d | Latency: %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}
