package redis

import (
	"context"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"
	"builders-panel/internal/relay"
	"builders-panel/pkg/log"
)

const defaultPublishTimeout = 2 * time.Second

// Client is the subset of the Redis client the publisher needs.
type Client interface {
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)
}

type implPublisher struct {
	l       log.Logger
	client  Client
	builder relay.Builder
	channel string
	timeout time.Duration
}

var _ poller.Listener = &implPublisher{}

// New returns a Listener that publishes every view event on the user's channel.
func New(l log.Logger, client Client, builder relay.Builder) *implPublisher {
	return &implPublisher{
		l:       l,
		client:  client,
		builder: builder,
		channel: relay.UserChannel(builder.UserID),
		timeout: defaultPublishTimeout,
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
		p.l.Errorf(ctx, "internal.relay.redis.publish.Encode: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	receivers, err := p.client.Publish(ctx, p.channel, data)
	if err != nil {
		p.l.Warnf(ctx, "internal.relay.redis.publish.Publish: channel=%s kind=%s: %v", p.channel, e.Kind, err)
		return
	}
	p.l.Debugf(ctx, "internal.relay.redis.publish: channel=%s kind=%s receivers=%d", p.channel, e.Kind, receivers)
}
