package http

import "github.com/gin-gonic/gin"

// MapRoutes registers the panel API under r.
func (h *Handler) MapRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.DELETE("", h.Clear)
	r.GET("/unread", h.Unread)
	r.POST("/read-all", h.ReadAll)
	r.GET("/session", h.Session)
}
