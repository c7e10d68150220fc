package http

import (
	"time"

	"builders-panel/internal/poller"
	"builders-panel/pkg/discord"
	"builders-panel/pkg/log"
)

type Handler struct {
	l   log.Logger
	uc  poller.UseCase
	d   discord.IDiscord
	now func() time.Time
}

// New creates the panel API handler. d may be nil.
func New(l log.Logger, uc poller.UseCase, d discord.IDiscord) *Handler {
	return &Handler{
		l:   l,
		uc:  uc,
		d:   d,
		now: time.Now,
	}
}
