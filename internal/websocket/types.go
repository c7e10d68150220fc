package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Options tune the hub and every connection it owns.
type Options struct {
	MaxConnections        int
	MaxConnectionsPerUser int
	// ConnectsPerMinute caps new connections per user. Zero disables it.
	ConnectsPerMinute int
	PingInterval      time.Duration
	PongWait          time.Duration
	WriteWait         time.Duration
	MaxMessageSize    int64
	SendBuffer        int
}

// ProcessMessageInput is a raw message received from Redis.
type ProcessMessageInput struct {
	Channel string
	Payload []byte
}

// ConnectionInput is an upgraded connection waiting to join the hub.
type ConnectionInput struct {
	UserID string
	Conn   *websocket.Conn
}

type HubStats struct {
	ActiveConnections int `json:"active_connections"`
	TotalUniqueUsers  int `json:"total_unique_users"`
	Dropped           int `json:"dropped"`
}
