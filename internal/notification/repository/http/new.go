package http

import (
	"net/http"
	"strings"
	"time"

	"builders-panel/internal/notification/repository"
	"builders-panel/pkg/log"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout = 5 * time.Second
	byUserPath     = "/notifications/by-user"
)

// Options configures the REST backed repository.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Location *time.Location
	// Client overrides the default client, mostly for tests.
	Client *http.Client
}

type implRepository struct {
	l       log.Logger
	client  *http.Client
	baseURL string
	loc     *time.Location
}

var _ repository.Repository = &implRepository{}

func New(l log.Logger, opts Options) *implRepository {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
			}),
		}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &implRepository{
		l:       l,
		client:  client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		loc:     loc,
	}
}
