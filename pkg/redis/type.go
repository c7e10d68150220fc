package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// defaultConnectTimeout bounds dialing and the ping that verifies a new client.
const defaultConnectTimeout = 5 * time.Second

// Config configures a standalone Redis client.
type Config struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool

	// ConnectTimeout bounds dialing and the first ping. Zero means 5s.
	ConnectTimeout time.Duration

	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Client wraps redis.Client with the pub/sub helpers the panel needs.
type Client struct {
	*goredis.Client
	config Config
}
