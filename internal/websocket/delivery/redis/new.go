package redis

import (
	"context"
	"sync"

	"builders-panel/internal/websocket"
	"builders-panel/pkg/log"

	"github.com/redis/go-redis/v9"
)

type Subscriber interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// PubSubClient is the part of the Redis client the subscriber needs.
type PubSubClient interface {
	PSubscribe(ctx context.Context, patterns ...string) *redis.PubSub
}

type subscriber struct {
	client PubSubClient
	uc     websocket.UseCase
	l      log.Logger

	// Lifecycle fields
	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
	once   sync.Once
}

func New(l log.Logger, client PubSubClient, uc websocket.UseCase) Subscriber {
	return &subscriber{
		client: client,
		uc:     uc,
		l:      l,
		quit:   make(chan struct{}),
	}
}
