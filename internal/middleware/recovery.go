package middleware

import (
	"builders-panel/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 response and reports it to Discord.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				m.l.Errorf(ctx, "internal.middleware.Recovery: panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c, err, m.d)
				c.Abort()
			}
		}()
		c.Next()
	}
}
