package http

import (
	"errors"
	"net/http"

	"builders-panel/internal/notification/repository"
	"builders-panel/internal/poller"
	pkgErrors "builders-panel/pkg/errors"
)

var (
	errSourceUnavailable = pkgErrors.NewHTTPError(pkgErrors.CodeSourceUnavailable, "Notification source unavailable", http.StatusServiceUnavailable)
	errBadSnapshot       = pkgErrors.NewHTTPError(pkgErrors.CodeUpstreamBadPayload, "Notification source returned a malformed snapshot", http.StatusBadGateway)
	errInvalidUser       = pkgErrors.NewHTTPError(pkgErrors.CodeBadRequest, "Invalid user id", http.StatusBadRequest)
)

// mapError maps use case errors onto responses. Unknown errors pass through and end up as 500s.
func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDecode):
		return errBadSnapshot
	case errors.Is(err, repository.ErrInvalidUserID), errors.Is(err, poller.ErrInvalidUserID):
		return errInvalidUser
	case errors.Is(err, repository.ErrUnavailable), errors.Is(err, poller.ErrFetch):
		return errSourceUnavailable
	default:
		return err
	}
}
