package httpserver

import (
	"context"
	"net/http"
	"time"

	"builders-panel/pkg/errors"
	"builders-panel/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	serviceName  = "builders-panel"
	version      = "1.0.0"
	checkTimeout = 2 * time.Second
)

// runChecks pings every dependency and returns the name of the first failure.
func (srv *HTTPServer) runChecks(ctx context.Context) (map[string]string, string) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	results := make(map[string]string, len(srv.checks))
	failed := ""
	for _, c := range srv.checks {
		if err := c.Ping(ctx); err != nil {
			srv.l.Warnf(ctx, "internal.httpserver.runChecks: %s: %v", c.Name, err)
			results[c.Name] = "unavailable"
			if failed == "" {
				failed = c.Name
			}
			continue
		}
		results[c.Name] = "connected"
	}
	return results, failed
}

// healthCheck reports dependencies, the polling session and the push hub.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	deps, failed := srv.runChecks(ctx)
	if failed != "" {
		response.HttpError(c, errors.NewHTTPError(errors.CodeSourceUnavailable, failed+" connection failed", http.StatusServiceUnavailable))
		return
	}

	state := srv.panelUC.State()
	hubStats, err := srv.wsUC.GetStats(ctx)
	if err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.healthCheck.GetStats: %v", err)
	}

	session := gin.H{
		"id":      state.ID,
		"cursor":  state.Cursor,
		"unread":  state.Unread,
		"issued":  state.Issued,
		"applied": state.Applied,
	}
	body := gin.H{
		"status":       "healthy",
		"service":      serviceName,
		"version":      version,
		"environment":  srv.environment,
		"dependencies": deps,
		"session":      session,
		"websocket":    hubStats,
	}
	if srv.parse != nil {
		body["parser"] = srv.parse.GetMetrics()
	}
	if srv.alertUC != nil {
		body["alerts"] = srv.alertUC.Stats()
	}

	response.OK(c, body)
}

// readyCheck fails while any dependency is unreachable.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	deps, failed := srv.runChecks(c.Request.Context())
	if failed != "" {
		response.HttpError(c, errors.NewHTTPError(errors.CodeSourceUnavailable, failed+" connection not available", http.StatusServiceUnavailable))
		return
	}

	response.OK(c, gin.H{
		"status":       "ready",
		"service":      serviceName,
		"version":      version,
		"dependencies": deps,
	})
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": serviceName,
		"version": version,
	})
}
