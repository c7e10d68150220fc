package http

import (
	"net/http"

	"builders-panel/internal/websocket"
	"builders-panel/pkg/errors"
)

var (
	errInvalidUser  = errors.NewHTTPError(errors.CodeBadRequest, "Invalid user id", http.StatusBadRequest)
	errTooManyConns = errors.NewHTTPError(errors.CodeSourceUnavailable, "Maximum connections reached", http.StatusServiceUnavailable)
	errShuttingDown = errors.NewHTTPError(errors.CodeSourceUnavailable, "Server is shutting down", http.StatusServiceUnavailable)
	errUserConns    = errors.NewHTTPError(errors.CodeConflict, "Too many connections for this user", http.StatusConflict)
	errRateLimited  = errors.NewHTTPError(errors.CodeTooManyRequests, "Too many connection attempts", http.StatusTooManyRequests)
)

func (h *Handler) mapError(err error) error {
	switch err {
	case websocket.ErrInvalidUserID:
		return errInvalidUser
	case websocket.ErrMaxConnectionsReached:
		return errTooManyConns
	case websocket.ErrHubClosed:
		return errShuttingDown
	case websocket.ErrMaxUserConnectionsReached:
		return errUserConns
	case websocket.ErrRateLimited:
		return errRateLimited
	default:
		return err
	}
}
