package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"
	"builders-panel/internal/relay"
	"builders-panel/internal/tracker"
	"builders-panel/internal/websocket"
	wsUC "builders-panel/internal/websocket/usecase"
	"builders-panel/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPanel struct{}

func (stubPanel) Run(ctx context.Context) error { return nil }

func (stubPanel) Poll(ctx context.Context) (poller.PollResult, error) {
	return poller.PollResult{}, nil
}

func (stubPanel) Refresh(ctx context.Context) (model.ListUpdate, error) {
	return model.ListUpdate{}, nil
}

func (stubPanel) MarkAllRead(ctx context.Context) (model.ListUpdate, error) {
	return model.ListUpdate{}, nil
}

func (stubPanel) ClearUpstream(ctx context.Context) error { return nil }

func (stubPanel) Unread() poller.UnreadBadge { return poller.NewUnreadBadge(2) }

func (stubPanel) Current(ctx context.Context) model.ListUpdate { return model.ListUpdate{} }

func (stubPanel) State() tracker.State {
	return tracker.State{ID: "session-1", Cursor: 4, Unread: 2, Issued: 7, Applied: 7}
}

func newServer(t *testing.T, checks ...Check) (http.Handler, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	srv, err := New(log.NewNop(), Config{
		Port:      8080,
		Panel:     stubPanel{},
		WebSocket: wsUC.New(log.NewNop(), relay.NewBuilder(2), websocket.Options{}),
		Checks:    checks,
		Registry:  reg,
	})
	require.NoError(t, err)
	return srv.Handler(), reg
}

func get(h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing port", Config{Panel: stubPanel{}}},
		{"missing panel", Config{Port: 8080}},
		{"missing websocket", Config{Port: 8080, Panel: stubPanel{}}},
		{"bad check", Config{Port: 8080, Panel: stubPanel{}, WebSocket: wsUC.New(log.NewNop(), relay.NewBuilder(2), websocket.Options{}), Checks: []Check{{Name: "redis"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(log.NewNop(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestHealth(t *testing.T) {
	h, _ := newServer(t, Check{Name: "postgres", Ping: func(ctx context.Context) error { return nil }})

	w, body := get(h, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, map[string]any{"postgres": "connected"}, data["dependencies"])
	assert.Equal(t, "session-1", data["session"].(map[string]any)["id"])
}

func TestReady_FailingCheck(t *testing.T) {
	h, _ := newServer(t,
		Check{Name: "postgres", Ping: func(ctx context.Context) error { return nil }},
		Check{Name: "redis", Ping: func(ctx context.Context) error { return errors.New("dial tcp: connection refused") }},
	)

	w, body := get(h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "redis connection not available", body["message"])

	w, _ = get(h, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = get(h, "/live")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes(t *testing.T) {
	h, _ := newServer(t)

	w, body := get(h, "/api/v1/notifications/unread")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"count": float64(2), "visible": true}, body["data"])

	w, _ = get(h, "/ws/stats")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = get(h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `panel_http_requests_total{method="GET",path="/api/v1/notifications/unread",status="200"} 1`))
}
