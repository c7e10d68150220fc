package http

import (
	"net/http"

	"builders-panel/pkg/response"

	"github.com/gin-gonic/gin"
)

// List fetches the latest snapshot and renders it, like opening the panel.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req listReq
	_ = c.ShouldBindQuery(&req)
	if err := req.validate(); err != nil {
		response.Error(c, err, nil)
		return
	}

	update, err := h.uc.Refresh(ctx)
	if err != nil {
		h.l.Warnf(ctx, "internal.poller.delivery.http.List.Refresh: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, h.newListResp(update, req.Format, h.uc.State().ReadSet))
}

// Unread returns the badge state without fetching.
func (h *Handler) Unread(c *gin.Context) {
	response.OK(c, h.uc.Unread())
}

// ReadAll marks every notification of the latest snapshot as read.
func (h *Handler) ReadAll(c *gin.Context) {
	ctx := c.Request.Context()

	var req listReq
	_ = c.ShouldBindQuery(&req)
	if err := req.validate(); err != nil {
		response.Error(c, err, nil)
		return
	}

	update, err := h.uc.MarkAllRead(ctx)
	if err != nil {
		h.l.Warnf(ctx, "internal.poller.delivery.http.ReadAll.MarkAllRead: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, h.newListResp(update, req.Format, h.uc.State().ReadSet))
}

// Clear deletes the user's notifications at the source.
func (h *Handler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.ClearUpstream(ctx); err != nil {
		h.l.Errorf(ctx, "internal.poller.delivery.http.Clear.ClearUpstream: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	c.Status(http.StatusNoContent)
}

// Session exposes the polling cursor and sequence counters.
func (h *Handler) Session(c *gin.Context) {
	response.OK(c, newSessionResp(h.uc.State()))
}
