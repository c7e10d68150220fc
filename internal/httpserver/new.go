package httpserver

import (
	"context"
	"errors"
	"sync"

	"builders-panel/config"
	"builders-panel/internal/alert"
	"builders-panel/internal/formatter"
	"builders-panel/internal/poller"
	"builders-panel/internal/websocket"
	"builders-panel/pkg/discord"
	"builders-panel/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Check is a named dependency probe used by /health and /ready.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) serves until its context ends.
type HTTPServer struct {
	// Server configuration
	gin         *gin.Engine
	mapOnce     sync.Once
	l           log.Logger
	host        string
	port        int
	environment string
	corsOrigins []string

	// Panel core
	panelUC poller.UseCase
	parse   formatter.MetricsCollector
	alertUC alert.UseCase

	// WebSocket
	wsUC     websocket.UseCase
	wsConfig config.WebSocketConfig

	// External services
	checks   []Check
	discord  discord.IDiscord
	registry *prometheus.Registry
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host        string
	Port        int
	Mode        string
	Environment string
	CORSOrigins []string

	// Panel core. ParseMetrics and Alert are optional.
	Panel        poller.UseCase
	ParseMetrics formatter.MetricsCollector
	Alert        alert.UseCase

	// WebSocket
	WebSocket websocket.UseCase
	WSConfig  config.WebSocketConfig

	// External services. Discord and Registry are optional.
	Checks   []Check
	Discord  discord.IDiscord
	Registry *prometheus.Registry
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(l log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		l:           l,
		host:        cfg.Host,
		port:        cfg.Port,
		environment: cfg.Environment,
		corsOrigins: cfg.CORSOrigins,

		panelUC: cfg.Panel,
		parse:   cfg.ParseMetrics,
		alertUC: cfg.Alert,

		wsUC:     cfg.WebSocket,
		wsConfig: cfg.WSConfig,

		checks:   cfg.Checks,
		discord:  cfg.Discord,
		registry: cfg.Registry,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.l == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.panelUC == nil {
		return errors.New("panel use case is required")
	}
	if s.wsUC == nil {
		return errors.New("websocket use case is required")
	}
	for _, c := range s.checks {
		if c.Name == "" || c.Ping == nil {
			return errors.New("checks need a name and a ping function")
		}
	}
	return nil
}
