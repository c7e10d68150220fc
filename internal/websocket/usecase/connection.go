package usecase

import (
	"context"
	"sync"
	"time"

	ws "builders-panel/internal/websocket"
	"builders-panel/pkg/log"

	"github.com/gorilla/websocket"
)

// Connection is one browser tab subscribed to a user's panel events.
type Connection struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	// Buffered channel of outbound messages. Closed by the hub.
	send chan []byte

	opts ws.Options
	l    log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(hub *Hub, conn *websocket.Conn, userID string, opts ws.Options, l log.Logger) *Connection {
	return &Connection{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, opts.SendBuffer),
		opts:   opts,
		l:      l,
		done:   make(chan struct{}),
	}
}

// readPump keeps the read side alive so pongs and close frames are processed.
// The panel is push-only: anything a client sends is discarded.
func (c *Connection) readPump() {
	ctx := context.Background()
	defer func() {
		c.hub.leave(c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.opts.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.l.Warnf(ctx, "internal.websocket.usecase.readPump: user=%s: %v", c.userID, err)
			}
			return
		}
	}
}

// writePump is the only writer of the connection: queued events and pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the underlying connection once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}
