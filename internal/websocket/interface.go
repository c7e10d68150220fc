package websocket

import (
	"context"

	"builders-panel/internal/poller"
)

// UseCase pushes panel view events to connected browsers.
// As a poller.Listener it delivers the local session's events; ProcessMessage
// delivers events relayed from other instances.
type UseCase interface {
	poller.Listener

	// Lifecycle
	Run()
	Shutdown(ctx context.Context) error

	// Admit runs the checks that must pass before a request is upgraded.
	Admit(ctx context.Context, userID string) error
	Register(ctx context.Context, input ConnectionInput) error
	GetStats(ctx context.Context) (HubStats, error)

	// ProcessMessage routes a relayed event (called by the Redis delivery).
	ProcessMessage(ctx context.Context, input ProcessMessageInput) error
}
