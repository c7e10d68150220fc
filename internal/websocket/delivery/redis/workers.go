package redis

import (
	"context"

	"builders-panel/internal/websocket"
)

func (s *subscriber) handleMessage(ctx context.Context, channel string, payload []byte) {
	input := websocket.ProcessMessageInput{
		Channel: channel,
		Payload: payload,
	}

	if err := s.uc.ProcessMessage(ctx, input); err != nil {
		s.l.Warnf(ctx, "internal.websocket.delivery.redis.handleMessage: channel=%s: %v", channel, err)
	}
}
