package websocket

import "errors"

var (
	// ErrInvalidUserID is returned when the upgrade request names no valid user
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidConnection is returned when Register gets no connection
	ErrInvalidConnection = errors.New("invalid connection")

	// ErrInvalidMessage is returned when a relayed message cannot be routed
	ErrInvalidMessage = errors.New("invalid message format")

	// ErrMaxConnectionsReached is returned when max connections limit is reached
	ErrMaxConnectionsReached = errors.New("maximum connections reached")

	// ErrMaxUserConnectionsReached is returned when one user holds too many connections
	ErrMaxUserConnectionsReached = errors.New("maximum connections per user reached")

	// ErrRateLimited is returned when a user opens connections too fast
	ErrRateLimited = errors.New("too many connection attempts")

	// ErrHubClosed is returned when the hub has been shut down
	ErrHubClosed = errors.New("hub closed")
)
