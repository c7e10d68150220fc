package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	ws "builders-panel/internal/websocket"
	"builders-panel/pkg/log"
)

type registration struct {
	conn   *Connection
	result chan error
}

// Hub maintains the set of active connections and routes messages to them by user.
type Hub struct {
	// Registered connections.
	clients map[*Connection]bool

	// user_id -> set of connections
	users map[string]map[*Connection]bool

	register   chan registration
	unregister chan *Connection

	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	started   atomic.Bool

	maxConnections int
	maxPerUser     int
	dropped        atomic.Int64

	mu sync.RWMutex
	l  log.Logger
}

func newHub(l log.Logger, maxConnections, maxPerUser int) *Hub {
	return &Hub{
		clients:        make(map[*Connection]bool),
		users:          make(map[string]map[*Connection]bool),
		register:       make(chan registration),
		unregister:     make(chan *Connection),
		quit:           make(chan struct{}),
		stopped:        make(chan struct{}),
		maxConnections: maxConnections,
		maxPerUser:     maxPerUser,
		l:              l,
	}
}

func (h *Hub) run() {
	if !h.started.CompareAndSwap(false, true) {
		return
	}
	defer close(h.stopped)

	for {
		select {
		case r := <-h.register:
			r.result <- h.add(r.conn)

		case c := <-h.unregister:
			h.remove(c)

		case <-h.quit:
			h.closeAll()
			return
		}
	}
}

// join hands c to the run loop and waits for the verdict.
func (h *Hub) join(ctx context.Context, c *Connection) error {
	r := registration{conn: c, result: make(chan error, 1)}
	select {
	case h.register <- r:
	case <-h.quit:
		return ws.ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-r.result
}

func (h *Hub) leave(c *Connection) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// capacityLocked reports whether one more connection for userID fits. h.mu must be held.
func (h *Hub) capacityLocked(userID string) error {
	if h.maxConnections > 0 && len(h.clients) >= h.maxConnections {
		return ws.ErrMaxConnectionsReached
	}
	if h.maxPerUser > 0 && len(h.users[userID]) >= h.maxPerUser {
		return ws.ErrMaxUserConnectionsReached
	}
	return nil
}

func (h *Hub) admit(userID string) error {
	select {
	case <-h.quit:
		return ws.ErrHubClosed
	default:
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.capacityLocked(userID)
}

func (h *Hub) add(c *Connection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.capacityLocked(c.userID); err != nil {
		return err
	}

	h.clients[c] = true
	if _, ok := h.users[c.userID]; !ok {
		h.users[c.userID] = make(map[*Connection]bool)
	}
	h.users[c.userID][c] = true
	return nil
}

func (h *Hub) remove(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	if userConns, ok := h.users[c.userID]; ok {
		delete(userConns, c)
		if len(userConns) == 0 {
			delete(h.users, c.userID)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
	}
	h.clients = make(map[*Connection]bool)
	h.users = make(map[string]map[*Connection]bool)
}

// SendToUser queues message on every connection of userID and returns how many took it.
// A connection whose buffer is full misses the message.
func (h *Hub) SendToUser(userID string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.users[userID] {
		select {
		case c.send <- message:
			delivered++
		default:
			h.dropped.Add(1)
		}
	}
	return delivered
}

// Stats returns active connections, unique users and dropped messages.
func (h *Hub) Stats() (int, int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients), len(h.users), int(h.dropped.Load())
}

func (h *Hub) shutdown(ctx context.Context) error {
	h.closeOnce.Do(func() { close(h.quit) })

	if !h.started.Load() {
		h.closeAll()
		return nil
	}

	select {
	case <-h.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
