package tui

import (
	"context"
	"fmt"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	actionRefresh  = "refresh"
	actionMarkRead = "mark all read"
	actionClear    = "delete all"
)

// Panel is the part of a polling session the terminal drives.
type Panel interface {
	Refresh(ctx context.Context) (model.ListUpdate, error)
	MarkAllRead(ctx context.Context) (model.ListUpdate, error)
	ClearUpstream(ctx context.Context) error
}

type Options struct {
	UserID int64
	// Location timestamps are shown in. Defaults to time.Local.
	Location *time.Location
}

type toast struct {
	id uint64
	n  model.Notification
}

// Model renders one panel session: the list, the unread badge and the toast stack.
// List and badge state only change through panel events, never through key presses.
type Model struct {
	ctx   context.Context
	panel Panel
	opts  Options
	keys  keyMap
	help  help.Model
	vp    viewport.Model
	now   func() time.Time

	items  []model.Notification
	unread int
	toasts []toast
	nextID uint64

	status string
	failed bool

	width  int
	height int
}

func New(ctx context.Context, panel Panel, opts Options) Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return Model{
		ctx:   ctx,
		panel: panel,
		opts:  opts,
		keys:  defaultKeyMap(),
		help:  help.New(),
		vp:    viewport.New(0, 0),
		now:   time.Now,
	}
}

// Init refreshes once, the way opening the panel does.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) run(action string, f func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{action: action, err: f(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	return m.run(actionRefresh, func(ctx context.Context) error {
		_, err := m.panel.Refresh(ctx)
		return err
	})
}

func (m Model) markAllRead() tea.Cmd {
	return m.run(actionMarkRead, func(ctx context.Context) error {
		_, err := m.panel.MarkAllRead(ctx)
		return err
	})
}

func (m Model) clear() tea.Cmd {
	return m.run(actionClear, m.panel.ClearUpstream)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.MarkRead):
			return m, m.markAllRead()
		case key.Matches(msg, m.keys.Clear):
			return m, m.clear()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}

	case listMsg:
		m.items = msg.Items
		m.unread = msg.Unread
		m.layout()
		return m, nil

	case unreadMsg:
		m.unread = int(msg)
		return m, nil

	case toastMsg:
		n := model.Notification(msg)
		d := n.ToastDuration
		if d <= 0 {
			d = poller.DefaultToastDuration
		}
		m.nextID++
		id := m.nextID
		m.toasts = append(m.toasts, toast{id: id, n: n})
		m.layout()
		return m, tea.Tick(d, func(time.Time) tea.Msg { return expireMsg(id) })

	case expireMsg:
		for i, t := range m.toasts {
			if t.id == uint64(msg) {
				m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
				break
			}
		}
		m.layout()
		return m, nil

	case actionMsg:
		m.failed = msg.err != nil
		if m.failed {
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		} else {
			m.status = ""
		}
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}
