package nats

import (
	"context"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"
	"builders-panel/internal/relay"
	"builders-panel/pkg/log"

	"github.com/nats-io/nats.go"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(m *nats.Msg) error
}

type implPublisher struct {
	l       log.Logger
	conn    Conn
	builder relay.Builder
	prefix  string
}

var _ poller.Listener = &implPublisher{}

// New returns a Listener exporting view events to {prefix}.user.{id}.{kind}.
func New(l log.Logger, conn Conn, prefix string, builder relay.Builder) *implPublisher {
	if prefix == "" {
		prefix = "panel"
	}
	return &implPublisher{
		l:       l,
		conn:    conn,
		builder: builder,
		prefix:  prefix,
	}
}

func (p *implPublisher) OnListUpdate(ctx context.Context, u model.ListUpdate) {
	p.publish(ctx, p.builder.ListUpdate(u))
}

func (p *implPublisher) OnNewNotification(ctx context.Context, n model.Notification) {
	p.publish(ctx, p.builder.NewNotification(n))
}

func (p *implPublisher) OnUnreadCountChange(ctx context.Context, unread int) {
	p.publish(ctx, p.builder.UnreadCount(unread))
}

func (p *implPublisher) publish(ctx context.Context, e relay.Event) {
	data, err := relay.Encode(e)
	if err != nil {
		p.l.Errorf(ctx, "internal.relay.nats.publish.Encode: %v", err)
		return
	}

	msg := nats.NewMsg(relay.Subject(p.prefix, e.UserID, e.Kind))
	msg.Data = data
	// JetStream streams deduplicate on this header.
	msg.Header.Set(nats.MsgIdHdr, e.ID)
	msg.Header.Set("Panel-Source", e.Source)

	if err := p.conn.PublishMsg(msg); err != nil {
		p.l.Warnf(ctx, "internal.relay.nats.publish.PublishMsg: subject=%s: %v", msg.Subject, err)
	}
}
