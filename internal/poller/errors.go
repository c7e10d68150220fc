package poller

import "errors"

var (
	ErrInvalidUserID  = errors.New("poller: invalid user id")
	ErrAlreadyRunning = errors.New("poller: already running")
	ErrFetch          = errors.New("poller: fetch failed")
)
