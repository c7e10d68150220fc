package http

import (
	"net/http"

	"builders-panel/internal/websocket"
	"builders-panel/pkg/log"

	gws "github.com/gorilla/websocket"
)

type Handler struct {
	l        log.Logger
	uc       websocket.UseCase
	upgrader gws.Upgrader
}

// New creates the upgrade handler. An empty cfg.AllowedOrigins accepts any origin.
func New(l log.Logger, uc websocket.UseCase, cfg WSConfig) *Handler {
	return &Handler{
		l:  l,
		uc: uc,
		upgrader: gws.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
