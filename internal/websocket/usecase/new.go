package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/relay"
	ws "builders-panel/internal/websocket"
	"builders-panel/pkg/log"
)

const (
	defaultPingInterval   = 30 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultWriteWait      = 10 * time.Second
	defaultMaxMessageSize = 512
	defaultSendBuffer     = 256
)

// implUseCase implements websocket.UseCase.
type implUseCase struct {
	l       log.Logger
	hub     *Hub
	limiter *connectLimiter
	builder relay.Builder
	userKey string
	opts    ws.Options
}

// New creates a WebSocket UseCase delivering events for builder.UserID.
func New(l log.Logger, builder relay.Builder, opts ws.Options) ws.UseCase {
	opts = withDefaults(opts)
	return &implUseCase{
		l:       l,
		hub:     newHub(l, opts.MaxConnections, opts.MaxConnectionsPerUser),
		limiter: newConnectLimiter(opts.ConnectsPerMinute),
		builder: builder,
		userKey: strconv.FormatInt(builder.UserID, 10),
		opts:    opts,
	}
}

func withDefaults(opts ws.Options) ws.Options {
	if opts.PongWait <= 0 {
		opts.PongWait = defaultPongWait
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	// Pings must go out before the peer's read deadline expires.
	if opts.PingInterval >= opts.PongWait {
		opts.PingInterval = opts.PongWait * 9 / 10
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = defaultWriteWait
	}
	if opts.MaxMessageSize <= 0 {
		opts.MaxMessageSize = defaultMaxMessageSize
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaultSendBuffer
	}
	return opts
}

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.shutdown(ctx)
}

func validUserID(userID string) bool {
	id, err := strconv.ParseInt(userID, 10, 64)
	return err == nil && id > 0
}

// Admit rejects invalid users, users connecting too fast and a full hub.
// Register enforces the limits again since they may change in between.
func (uc *implUseCase) Admit(ctx context.Context, userID string) error {
	if !validUserID(userID) {
		return ws.ErrInvalidUserID
	}
	if !uc.limiter.allow(userID) {
		return ws.ErrRateLimited
	}
	return uc.hub.admit(userID)
}

func (uc *implUseCase) Register(ctx context.Context, input ws.ConnectionInput) error {
	if input.Conn == nil {
		return ws.ErrInvalidConnection
	}
	if !validUserID(input.UserID) {
		return ws.ErrInvalidUserID
	}

	c := newConnection(uc.hub, input.Conn, input.UserID, uc.opts, uc.l)
	if err := uc.hub.join(ctx, c); err != nil {
		return err
	}
	c.start()

	uc.l.Debugf(ctx, "internal.websocket.usecase.Register: user=%s", input.UserID)
	return nil
}

func (uc *implUseCase) GetStats(ctx context.Context) (ws.HubStats, error) {
	active, unique, dropped := uc.hub.Stats()
	return ws.HubStats{
		ActiveConnections: active,
		TotalUniqueUsers:  unique,
		Dropped:           dropped,
	}, nil
}

func (uc *implUseCase) OnListUpdate(ctx context.Context, u model.ListUpdate) {
	uc.push(ctx, uc.builder.ListUpdate(u))
}

func (uc *implUseCase) OnNewNotification(ctx context.Context, n model.Notification) {
	uc.push(ctx, uc.builder.NewNotification(n))
}

func (uc *implUseCase) OnUnreadCountChange(ctx context.Context, unread int) {
	uc.push(ctx, uc.builder.UnreadCount(unread))
}

func (uc *implUseCase) push(ctx context.Context, e relay.Event) {
	data, err := relay.Encode(e)
	if err != nil {
		uc.l.Errorf(ctx, "internal.websocket.usecase.push.Encode: %v", err)
		return
	}
	n := uc.hub.SendToUser(uc.userKey, data)
	uc.l.Debugf(ctx, "internal.websocket.usecase.push: kind=%s connections=%d", e.Kind, n)
}

func (uc *implUseCase) ProcessMessage(ctx context.Context, input ws.ProcessMessageInput) error {
	userID, err := relay.ParseUserChannel(input.Channel)
	if err != nil {
		return fmt.Errorf("%w: %w", ws.ErrInvalidMessage, err)
	}

	e, err := relay.Decode(input.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ws.ErrInvalidMessage, err)
	}
	if e.UserID != userID {
		return fmt.Errorf("%w: event for user %d on channel %s", ws.ErrInvalidMessage, e.UserID, input.Channel)
	}

	uc.hub.SendToUser(strconv.FormatInt(userID, 10), input.Payload)
	return nil
}
