package poller

import (
	"context"

	"builders-panel/internal/model"
	"builders-panel/internal/tracker"
)

// Listener receives the view events of a panel session.
// Calls for one session are serialized and arrive in poll order.
type Listener interface {
	OnListUpdate(ctx context.Context, update model.ListUpdate)
	OnNewNotification(ctx context.Context, n model.Notification)
	OnUnreadCountChange(ctx context.Context, unread int)
}

//go:generate mockery --name UseCase
type UseCase interface {
	// Run schedules Poll every interval until ctx is done.
	Run(ctx context.Context) error
	// Poll performs one fetch, detect and emit cycle.
	Poll(ctx context.Context) (PollResult, error)
	// Refresh fetches and re-renders the whole list.
	Refresh(ctx context.Context) (model.ListUpdate, error)
	// MarkAllRead fetches, acknowledges every record and re-renders.
	MarkAllRead(ctx context.Context) (model.ListUpdate, error)
	// ClearUpstream deletes the user's notifications at the source and resets the session.
	ClearUpstream(ctx context.Context) error
	Unread() UnreadBadge
	Current(ctx context.Context) model.ListUpdate
	State() tracker.State
}
