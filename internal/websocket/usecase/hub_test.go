package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/relay"
	ws "builders-panel/internal/websocket"
	"builders-panel/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = withDefaults(ws.Options{MaxConnections: 3, SendBuffer: 4})

func startHub(t *testing.T, max int) *Hub {
	t.Helper()
	hub := newHub(log.NewNop(), max, 2)
	go hub.run()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = hub.shutdown(ctx)
	})
	return hub
}

func join(t *testing.T, hub *Hub, userID string) *Connection {
	t.Helper()
	c := newConnection(hub, nil, userID, testOpts, log.NewNop())
	require.NoError(t, hub.join(context.Background(), c))
	return c
}

func receive(t *testing.T, c *Connection) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("no message for user %s", c.userID)
		return nil
	}
}

func assertEmpty(t *testing.T, c *Connection) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Errorf("unexpected message for user %s: %s", c.userID, msg)
	default:
	}
}

func TestHub_SendToUser(t *testing.T) {
	hub := startHub(t, 0)
	a1 := join(t, hub, "2")
	a2 := join(t, hub, "2")
	b := join(t, hub, "3")

	err := hub.join(context.Background(), newConnection(hub, nil, "2", testOpts, log.NewNop()))
	assert.ErrorIs(t, err, ws.ErrMaxUserConnectionsReached)

	assert.Equal(t, 2, hub.SendToUser("2", []byte("hello")))
	assert.Equal(t, 0, hub.SendToUser("404", []byte("nobody")))

	assert.Equal(t, "hello", string(receive(t, a1)))
	assert.Equal(t, "hello", string(receive(t, a2)))
	assertEmpty(t, b)

	active, users, _ := hub.Stats()
	assert.Equal(t, 3, active)
	assert.Equal(t, 2, users)
}

func TestHub_FullBufferDrops(t *testing.T) {
	hub := startHub(t, 0)
	c := join(t, hub, "2")

	for i := 0; i < testOpts.SendBuffer; i++ {
		hub.SendToUser("2", []byte("x"))
	}
	assert.Equal(t, 0, hub.SendToUser("2", []byte("overflow")))

	_, _, dropped := hub.Stats()
	assert.Equal(t, 1, dropped)
	assert.Len(t, c.send, testOpts.SendBuffer)
}

func TestHub_MaxConnections(t *testing.T) {
	hub := startHub(t, 1)
	join(t, hub, "2")

	c := newConnection(hub, nil, "3", testOpts, log.NewNop())
	err := hub.join(context.Background(), c)
	assert.ErrorIs(t, err, ws.ErrMaxConnectionsReached)
	assert.ErrorIs(t, hub.admit("3"), ws.ErrMaxConnectionsReached)
}

func TestHub_LeaveClosesSend(t *testing.T) {
	hub := startHub(t, 0)
	c := join(t, hub, "2")

	hub.leave(c)

	require.Eventually(t, func() bool {
		active, users, _ := hub.Stats()
		return active == 0 && users == 0
	}, time.Second, 5*time.Millisecond)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_Shutdown(t *testing.T) {
	hub := newHub(log.NewNop(), 0, 0)
	go hub.run()
	c := join(t, hub, "2")

	require.NoError(t, hub.shutdown(context.Background()))
	_, ok := <-c.send
	assert.False(t, ok)

	err := hub.join(context.Background(), newConnection(hub, nil, "2", testOpts, log.NewNop()))
	assert.ErrorIs(t, err, ws.ErrHubClosed)

	// A second shutdown is a no-op.
	assert.NoError(t, hub.shutdown(context.Background()))
}

func newTestUseCase(t *testing.T) *implUseCase {
	t.Helper()
	uc := New(log.NewNop(), relay.NewBuilder(2), ws.Options{SendBuffer: 8}).(*implUseCase)
	go uc.Run()
	t.Cleanup(func() { _ = uc.Shutdown(context.Background()) })
	return uc
}

func TestUseCase_Listener(t *testing.T) {
	uc := newTestUseCase(t)
	mine := join(t, uc.hub, "2")
	other := join(t, uc.hub, "3")
	ctx := context.Background()

	uc.OnNewNotification(ctx, model.Notification{
		Record:  model.Record{EventType: "CONSTRUCTION_REQUEST_APPROVED", Payload: "Solicitud 9 aprobada"},
		Content: model.DisplayContent{Kind: "CONSTRUCTION_REQUEST_APPROVED", Icon: "✔", Label: "SOLICITUD APROBADA", Lines: []string{"Solicitud 9 aprobada"}, Matched: true},
	})
	uc.OnUnreadCountChange(ctx, 4)

	first, err := relay.Decode(receive(t, mine))
	require.NoError(t, err)
	assert.Equal(t, relay.KindNewNotification, first.Kind)
	require.NotNil(t, first.Notification)
	assert.Equal(t, "✔ SOLICITUD APROBADA\nSolicitud 9 aprobada", first.Notification.Text)

	second, err := relay.Decode(receive(t, mine))
	require.NoError(t, err)
	assert.Equal(t, relay.KindUnreadCount, second.Kind)
	assert.Equal(t, 4, second.Unread)

	assertEmpty(t, other)
}

func TestUseCase_ProcessMessage(t *testing.T) {
	uc := newTestUseCase(t)
	target := join(t, uc.hub, "5")
	ctx := context.Background()

	payload, err := relay.Encode(relay.NewBuilder(5).UnreadCount(1))
	require.NoError(t, err)

	require.NoError(t, uc.ProcessMessage(ctx, ws.ProcessMessageInput{Channel: "panel:user:5", Payload: payload}))
	assert.Equal(t, payload, receive(t, target))

	tests := []struct {
		name  string
		input ws.ProcessMessageInput
	}{
		{"bad channel", ws.ProcessMessageInput{Channel: "project:1:user:5", Payload: payload}},
		{"bad payload", ws.ProcessMessageInput{Channel: "panel:user:5", Payload: []byte("{")}},
		{"missing kind", ws.ProcessMessageInput{Channel: "panel:user:5", Payload: []byte(`{"user_id":5}`)}},
		{"user mismatch", ws.ProcessMessageInput{Channel: "panel:user:6", Payload: payload}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.ProcessMessage(ctx, tt.input)
			assert.True(t, errors.Is(err, ws.ErrInvalidMessage), "got %v", err)
		})
	}
	assertEmpty(t, target)
}

func TestUseCase_RegisterValidation(t *testing.T) {
	uc := newTestUseCase(t)

	err := uc.Register(context.Background(), ws.ConnectionInput{UserID: "2"})
	assert.ErrorIs(t, err, ws.ErrInvalidConnection)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.ActiveConnections)
}

func TestUseCase_Admit(t *testing.T) {
	uc := New(log.NewNop(), relay.NewBuilder(2), ws.Options{ConnectsPerMinute: 2}).(*implUseCase)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Admit(ctx, "abc"), ws.ErrInvalidUserID)
	assert.ErrorIs(t, uc.Admit(ctx, "0"), ws.ErrInvalidUserID)

	assert.NoError(t, uc.Admit(ctx, "2"))
	assert.NoError(t, uc.Admit(ctx, "2"))
	assert.ErrorIs(t, uc.Admit(ctx, "2"), ws.ErrRateLimited)
	// Buckets are per user.
	assert.NoError(t, uc.Admit(ctx, "3"))

	require.NoError(t, uc.Shutdown(ctx))
	assert.ErrorIs(t, uc.Admit(ctx, "4"), ws.ErrHubClosed)
}

func TestWithDefaults(t *testing.T) {
	opts := withDefaults(ws.Options{PingInterval: time.Minute, PongWait: 10 * time.Second})
	assert.Equal(t, 9*time.Second, opts.PingInterval)
	assert.Equal(t, defaultWriteWait, opts.WriteWait)
	assert.EqualValues(t, defaultMaxMessageSize, opts.MaxMessageSize)
	assert.Equal(t, defaultSendBuffer, opts.SendBuffer)
}
