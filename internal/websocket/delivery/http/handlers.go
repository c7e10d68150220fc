package http

import (
	"time"

	"builders-panel/pkg/response"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
)

// HandleWebSocket upgrades the request and joins the connection to the hub.
// Query: user_id (required).
func (h *Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	var req upgradeReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	if err := req.validate(); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	if err := h.uc.Admit(ctx, req.UserID); err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		h.l.Warnf(ctx, "internal.websocket.delivery.http.HandleWebSocket.Upgrade: %v", err)
		return
	}

	if err := h.uc.Register(ctx, req.toInput(conn)); err != nil {
		h.l.Warnf(ctx, "internal.websocket.delivery.http.HandleWebSocket.Register: %v", err)
		msg := gws.FormatCloseMessage(gws.CloseTryAgainLater, err.Error())
		_ = conn.WriteControl(gws.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	}
}

// Stats returns hub statistics.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.uc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}
	response.OK(c, newStatsResp(stats))
}
