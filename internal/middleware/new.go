package middleware

import (
	"builders-panel/pkg/discord"
	"builders-panel/pkg/log"

	"github.com/prometheus/client_golang/prometheus"
)

type Middleware struct {
	l       log.Logger
	d       discord.IDiscord
	metrics *httpMetrics
}

// New builds the middleware set. d may be nil; a nil reg disables HTTP metrics.
func New(l log.Logger, d discord.IDiscord, reg prometheus.Registerer) Middleware {
	return Middleware{
		l:       l,
		d:       d,
		metrics: newHTTPMetrics(reg),
	}
}
