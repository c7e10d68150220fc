package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the WebSocket routes.
// The browser WebSocket API cannot set headers, so the user travels in the query.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ws := r.Group("/ws")
	{
		ws.GET("", h.HandleWebSocket)
		ws.GET("/stats", h.Stats)
	}
}
