package poller

import (
	"context"

	"builders-panel/internal/model"
)

// Listeners fans every event out to each listener in order.
type Listeners []Listener

func (ls Listeners) OnListUpdate(ctx context.Context, update model.ListUpdate) {
	for _, l := range ls {
		l.OnListUpdate(ctx, update)
	}
}

func (ls Listeners) OnNewNotification(ctx context.Context, n model.Notification) {
	for _, l := range ls {
		l.OnNewNotification(ctx, n)
	}
}

func (ls Listeners) OnUnreadCountChange(ctx context.Context, unread int) {
	for _, l := range ls {
		l.OnUnreadCountChange(ctx, unread)
	}
}

// NopListener ignores every event. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) OnListUpdate(context.Context, model.ListUpdate)        {}
func (NopListener) OnNewNotification(context.Context, model.Notification) {}
func (NopListener) OnUnreadCountChange(context.Context, int)              {}
