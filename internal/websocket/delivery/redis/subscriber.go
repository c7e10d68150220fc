package redis

import (
	"context"
	"fmt"

	"builders-panel/internal/relay"
)

func (s *subscriber) Start(ctx context.Context) error {
	s.pubsub = s.client.PSubscribe(ctx, relay.UserChannelPattern)

	// Wait for confirmation that subscription is created
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return fmt.Errorf("internal.websocket.delivery.redis.Start: %w", err)
	}

	s.wg.Add(1)
	go s.listen(context.WithoutCancel(ctx))

	s.l.Infof(ctx, "internal.websocket.delivery.redis.Start: subscribed to %s", relay.UserChannelPattern)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.l.Warnf(ctx, "internal.websocket.delivery.redis.listen: pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg.Channel, []byte(msg.Payload))
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	s.once.Do(func() { close(s.quit) })
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.l.Errorf(ctx, "internal.websocket.delivery.redis.Shutdown: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.l.Infof(ctx, "internal.websocket.delivery.redis.Shutdown: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
