package usecase

import (
	"context"
	"errors"
	"fmt"

	"builders-panel/internal/alert"
	"builders-panel/internal/formatter"
	"builders-panel/internal/model"
)

func (uc *implUseCase) OnListUpdate(ctx context.Context, u model.ListUpdate) {}

func (uc *implUseCase) OnUnreadCountChange(ctx context.Context, unread int) {}

// OnNewNotification escalates failures without blocking the poll loop.
func (uc *implUseCase) OnNewNotification(ctx context.Context, n model.Notification) {
	if !formatter.EventType(n.Record.EventType).IsFailure() {
		return
	}

	ctx = context.WithoutCancel(ctx)
	uc.dispatch(func() {
		ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()

		if err := uc.Escalate(ctx, n); err != nil {
			if errors.Is(err, alert.ErrThrottled) {
				uc.l.Debugf(ctx, "internal.alert.usecase.OnNewNotification: %s throttled", n.Record.EventType)
				return
			}
			uc.l.Warnf(ctx, "internal.alert.usecase.OnNewNotification.Escalate: %v", err)
		}
	})
}

func (uc *implUseCase) Escalate(ctx context.Context, n model.Notification) error {
	if !uc.limiter.Allow() {
		uc.suppressed.Add(1)
		return alert.ErrThrottled
	}

	var errs []error
	if uc.discord != nil {
		if err := uc.discord.SendEmbed(ctx, uc.buildEmbed(n)); err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}
	if uc.telegram != nil {
		if err := uc.telegram.SendText(ctx, uc.buildText(n)); err != nil {
			errs = append(errs, fmt.Errorf("telegram: %w", err))
		}
	}
	if len(errs) > 0 {
		uc.failed.Add(1)
		return fmt.Errorf("%w: %w", alert.ErrDispatchFailed, errors.Join(errs...))
	}
	uc.sent.Add(1)
	return nil
}
