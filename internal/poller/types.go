package poller

import (
	"time"
)

const (
	DefaultInterval      = 2 * time.Second
	DefaultToastDuration = 3500 * time.Millisecond
)

// Options configures one panel session.
type Options struct {
	UserID        int64
	Interval      time.Duration
	ToastDuration time.Duration
	// SuppressInitialToasts skips OnNewNotification for the first applied snapshot.
	SuppressInitialToasts bool
}

// PollResult summarizes one cycle.
type PollResult struct {
	Seq    uint64
	Total  int
	New    int
	Unread int
	Stale  bool
}

// UnreadBadge is the state of the unread counter.
type UnreadBadge struct {
	Count   int  `json:"count"`
	Visible bool `json:"visible"`
}

func NewUnreadBadge(count int) UnreadBadge {
	return UnreadBadge{Count: count, Visible: count > 0}
}
