package usecase

import (
	"context"
	"fmt"
	"time"

	"builders-panel/internal/poller"
	"builders-panel/pkg/log"

	"github.com/robfig/cron/v3"
)

const stopTimeout = 10 * time.Second

// cronLogger routes cron's own logging to the panel logger.
type cronLogger struct {
	ctx context.Context
	l   log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugf(c.ctx, "internal.poller.usecase.cron: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorf(c.ctx, "internal.poller.usecase.cron: %s %v: %v", msg, keysAndValues, err)
}

// Run polls every interval until ctx is done. Intervals are whole seconds; a tick that
// starts while the previous poll is still running is skipped.
func (uc *implUseCase) Run(ctx context.Context) error {
	if !uc.running.CompareAndSwap(false, true) {
		return poller.ErrAlreadyRunning
	}
	defer uc.running.Store(false)

	logger := cronLogger{ctx: ctx, l: uc.l}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	every := cron.Every(uc.opts.Interval)
	c.Schedule(every, cron.FuncJob(func() { uc.tick(ctx) }))

	if every.Delay != uc.opts.Interval {
		uc.l.Warnf(ctx, "internal.poller.usecase.Run: interval %s rounded to %s", uc.opts.Interval, every.Delay)
	}
	uc.l.Infof(ctx, "internal.poller.usecase.Run: polling user %d every %s (session %s)",
		uc.opts.UserID, every.Delay, uc.session.ID())
	c.Start()

	<-ctx.Done()

	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(stopTimeout):
		return fmt.Errorf("internal.poller.usecase.Run: poll still running after %s", stopTimeout)
	}
	uc.l.Infof(context.Background(), "internal.poller.usecase.Run: stopped")
	return nil
}

// tick runs one scheduled poll. Failures were logged by Poll and the next tick retries.
func (uc *implUseCase) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	_, _ = uc.Poll(ctx)
}
