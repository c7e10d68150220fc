package httpserver

import (
	"builders-panel/internal/middleware"
	pollerHTTP "builders-panel/internal/poller/delivery/http"
	wsHTTP "builders-panel/internal/websocket/delivery/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Api              = "/api/v1"
	NotificationsApi = Api + "/notifications"
)

func (srv *HTTPServer) mapHandlers() {
	// A nil *Registry must not become a non-nil Registerer.
	var reg prometheus.Registerer
	if srv.registry != nil {
		reg = srv.registry
	}
	mw := middleware.New(srv.l, srv.discord, reg)

	corsConfig := middleware.DefaultCORSConfig()
	if len(srv.corsOrigins) > 0 {
		corsConfig.AllowedOrigins = srv.corsOrigins
	}
	srv.gin.Use(mw.Recovery(), mw.RequestLog(), mw.Metrics(), middleware.CORS(corsConfig))

	// Health check endpoints
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.registry != nil {
		srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))
	}

	// Panel API
	pollerHTTP.New(srv.l, srv.panelUC, srv.discord).MapRoutes(srv.gin.Group(NotificationsApi))

	// WebSocket push
	wsHTTP.New(srv.l, srv.wsUC, wsHTTP.WSConfig{
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
		AllowedOrigins:  srv.wsConfig.AllowedOrigins,
	}).RegisterRoutes(srv.gin.Group(""))
}
