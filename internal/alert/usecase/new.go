package usecase

import (
	"sync/atomic"
	"time"

	"builders-panel/internal/alert"
	"builders-panel/pkg/discord"
	"builders-panel/pkg/log"
	"builders-panel/pkg/telegram"

	"golang.org/x/time/rate"
)

const dispatchTimeout = 30 * time.Second

type implUseCase struct {
	l        log.Logger
	discord  discord.IDiscord
	telegram telegram.ITelegram
	limiter  *rate.Limiter
	userID   int64
	now      func() time.Time

	// dispatch runs f; asynchronous outside tests.
	dispatch func(f func())

	sent       atomic.Int64
	suppressed atomic.Int64
	failed     atomic.Int64
}

// New escalates to every non-nil sink. At least one is required.
func New(l log.Logger, d discord.IDiscord, tg telegram.ITelegram, opts alert.Options) (alert.UseCase, error) {
	if (d == nil && tg == nil) || opts.Every <= 0 || opts.Burst < 1 {
		return nil, alert.ErrInvalidInput
	}
	return &implUseCase{
		l:        l,
		discord:  d,
		telegram: tg,
		limiter:  rate.NewLimiter(rate.Every(opts.Every), opts.Burst),
		userID:   opts.UserID,
		now:      time.Now,
		dispatch: func(f func()) { go f() },
	}, nil
}

func (uc *implUseCase) Stats() alert.Stats {
	return alert.Stats{
		Sent:       uc.sent.Load(),
		Suppressed: uc.suppressed.Load(),
		Failed:     uc.failed.Load(),
	}
}
