package tui

import (
	"context"
	"sync"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge turns panel events into program messages. Events arriving before
// Attach are dropped; the next list update carries the full state anyway.
type Bridge struct {
	mu     sync.RWMutex
	sender Sender
}

var _ poller.Listener = (*Bridge)(nil)

func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = s
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	s := b.sender
	b.mu.RUnlock()
	if s != nil {
		s.Send(msg)
	}
}

func (b *Bridge) OnListUpdate(ctx context.Context, u model.ListUpdate) {
	b.send(listMsg(u))
}

func (b *Bridge) OnNewNotification(ctx context.Context, n model.Notification) {
	b.send(toastMsg(n))
}

func (b *Bridge) OnUnreadCountChange(ctx context.Context, unread int) {
	b.send(unreadMsg(unread))
}
