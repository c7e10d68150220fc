package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"builders-panel/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var received = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

type fakePanel struct {
	mu      sync.Mutex
	calls   []string
	err     error
	refresh model.ListUpdate
}

func (f *fakePanel) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakePanel) Refresh(ctx context.Context) (model.ListUpdate, error) {
	f.record("refresh")
	return f.refresh, f.err
}

func (f *fakePanel) MarkAllRead(ctx context.Context) (model.ListUpdate, error) {
	f.record("mark")
	return model.ListUpdate{}, f.err
}

func (f *fakePanel) ClearUpstream(ctx context.Context) error {
	f.record("clear")
	return f.err
}

func notification(eventType, label, line string) model.Notification {
	return model.Notification{
		Record: model.NewRecord(eventType, line, received),
		Content: model.DisplayContent{
			Kind:  eventType,
			Icon:  "✅",
			Label: label,
			Lines: []string{line},
		},
		ToastDuration: time.Second,
	}
}

func newTestModel(t *testing.T, p Panel) Model {
	t.Helper()
	m := New(context.Background(), p, Options{UserID: 2, Location: time.UTC})
	m.now = func() time.Time { return received.Add(5 * time.Minute) }
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

func TestModel_ListAndBadge(t *testing.T) {
	m := newTestModel(t, &fakePanel{})

	m = update(t, m, listMsg(model.ListUpdate{
		Items: []model.Notification{
			notification("CONSTRUCTION_REQUEST_APPROVED", "SOLICITUD APROBADA", "Solicitud 4 aprobada"),
			notification("ORDER_CREATED", "ORDEN CREADA", "Orden 9 creada"),
		},
		Unread: 2,
	}))

	view := m.View()
	assert.Contains(t, view, "CONSTRUCTION_REQUEST_APPROVED")
	assert.Contains(t, view, "✅ SOLICITUD APROBADA")
	assert.Contains(t, view, "Orden 9 creada")
	assert.Contains(t, view, "01/05/2025 09:30:00 (5 minutes ago)")
	assert.Equal(t, m.title()+" "+badgeStyle.Render("2"), m.header())

	m = update(t, m, unreadMsg(0))
	assert.Equal(t, m.title(), m.header())
}

func TestModel_EmptyList(t *testing.T) {
	m := newTestModel(t, &fakePanel{})
	m = update(t, m, listMsg(model.ListUpdate{}))
	assert.Contains(t, m.View(), model.EmptyListMessage)
}

func TestModel_ToastLifecycle(t *testing.T) {
	m := newTestModel(t, &fakePanel{})

	next, cmd := m.Update(toastMsg(notification("CONSTRUCTION_REQUEST_REJECTED", "SOLICITUD RECHAZADA", "Solicitud 9 rechazada")))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Len(t, m.toasts, 1)
	assert.Contains(t, m.View(), "SOLICITUD RECHAZADA")

	m = update(t, m, toastMsg(notification("ORDER_CREATED", "ORDEN CREADA", "Orden 1 creada")))
	require.Len(t, m.toasts, 2)

	m = update(t, m, expireMsg(1))
	require.Len(t, m.toasts, 1)
	assert.Equal(t, uint64(2), m.toasts[0].id)
	assert.NotContains(t, m.View(), "SOLICITUD RECHAZADA")

	m = update(t, m, expireMsg(2))
	assert.Empty(t, m.toasts)
}

func TestModel_Actions(t *testing.T) {
	p := &fakePanel{}
	m := newTestModel(t, p)

	tests := []struct {
		key  string
		call string
	}{
		{key: "r", call: "refresh"},
		{key: "a", call: "mark"},
		{key: "X", call: "clear"},
	}
	for _, tt := range tests {
		var cmd tea.Cmd
		m, cmd = press(t, m, tt.key)
		require.NotNil(t, cmd, tt.key)
		msg := cmd()
		am, ok := msg.(actionMsg)
		require.True(t, ok, tt.key)
		assert.NoError(t, am.err)
		assert.Equal(t, tt.call, p.calls[len(p.calls)-1])
	}
}

func TestModel_ActionError(t *testing.T) {
	p := &fakePanel{err: errors.New("notification source unavailable")}
	m := newTestModel(t, p)

	_, cmd := press(t, m, "a")
	m = update(t, m, cmd())
	assert.True(t, m.failed)
	assert.Contains(t, m.View(), "mark all read failed: notification source unavailable")

	p.err = nil
	_, cmd = press(t, m, "r")
	m = update(t, m, cmd())
	assert.False(t, m.failed)
	assert.Empty(t, m.status)
}

func TestModel_Init(t *testing.T) {
	p := &fakePanel{}
	m := newTestModel(t, p)

	cmd := m.Init()
	require.NotNil(t, cmd)
	_, ok := cmd().(actionMsg)
	assert.True(t, ok)
	assert.Equal(t, []string{"refresh"}, p.calls)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, &fakePanel{})
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
