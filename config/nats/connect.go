package nats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"builders-panel/config"
	"builders-panel/pkg/log"

	"github.com/nats-io/nats.go"
)

const defaultConnectTimeout = 2 * time.Second

var (
	conn *nats.Conn
	mu   sync.RWMutex
)

func options(ctx context.Context, l log.Logger, cfg config.NATSConfig) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.Name),
		nats.Timeout(defaultConnectTimeout),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warnf(ctx, "config.nats: disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			l.Infof(ctx, "config.nats: reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			l.Infof(ctx, "config.nats: connection closed")
		}),
	}
}

// Connect dials the NATS server. It returns the existing connection when already connected.
func Connect(ctx context.Context, l log.Logger, cfg config.NATSConfig) (*nats.Conn, error) {
	mu.Lock()
	defer mu.Unlock()

	if conn != nil && !conn.IsClosed() {
		return conn, nil
	}

	nc, err := nats.Connect(cfg.URL, options(context.WithoutCancel(ctx), l, cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	conn = nc
	l.Infof(ctx, "config.nats.Connect: connected to %s", nc.ConnectedUrl())
	return conn, nil
}

// Disconnect flushes pending messages and closes the connection.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Drain()
	conn = nil
	return err
}

// HealthCheck fails unless the connection is up.
func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("NATS client not initialized")
	}
	if status := conn.Status(); status != nats.CONNECTED {
		return fmt.Errorf("NATS connection is %s", status)
	}
	return nil
}
