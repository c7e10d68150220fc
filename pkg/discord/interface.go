package discord

import (
	"context"
	"net/http"
	"strings"
	"time"

	"builders-panel/pkg/log"
)

type IDiscord interface {
	SendMessage(ctx context.Context, content string) error
	SendEmbed(ctx context.Context, options MessageOptions) error
	ReportBug(ctx context.Context, message string) error
	Close() error
}

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
		BaseURL:         webhookBaseURL,
	}
}

// New builds a webhook client. Zero fields of cfg take their defaults.
func New(l log.Logger, id, token string, cfg Config) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, ErrWebhookRequired
	}

	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	switch {
	case cfg.NoRetry:
		cfg.RetryCount = 0
	case cfg.RetryCount <= 0:
		cfg.RetryCount = def.RetryCount
	}
	if cfg.DefaultUsername == "" {
		cfg.DefaultUsername = def.DefaultUsername
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &discordImpl{
		l:      l,
		id:     id,
		token:  token,
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}, nil
}
