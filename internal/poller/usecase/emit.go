package usecase

import (
	"context"

	"builders-panel/internal/model"
	"builders-panel/internal/tracker"
)

// emitLocked delivers the events of an applied delta: toasts oldest first, then the list,
// then the badge. The list is always emitted when forceList is set. Callers hold emitMu.
func (uc *implUseCase) emitLocked(ctx context.Context, d tracker.Delta, forceList bool) model.ListUpdate {
	toasts := !(uc.opts.SuppressInitialToasts && !uc.primed)
	uc.primed = true

	uc.metrics.newTotal.Add(float64(len(d.New)))
	uc.metrics.snapshotSize.Set(float64(len(d.Snapshot)))
	if toasts {
		for _, r := range d.New {
			uc.listener.OnNewNotification(ctx, uc.notification(ctx, r))
		}
	} else if len(d.New) > 0 {
		uc.l.Debugf(ctx, "internal.poller.usecase.emitLocked: suppressed %d initial toasts", len(d.New))
	}

	var update model.ListUpdate
	if forceList || d.ListChanged {
		update = uc.render(ctx, d.Snapshot, d.Unread)
		uc.listener.OnListUpdate(ctx, update)
	}

	uc.emitUnreadLocked(ctx, d)
	return update
}

func (uc *implUseCase) emitUnreadLocked(ctx context.Context, d tracker.Delta) {
	uc.metrics.unread.Set(float64(d.Unread))
	if d.UnreadChanged {
		uc.listener.OnUnreadCountChange(ctx, d.Unread)
	}
}

func (uc *implUseCase) notification(ctx context.Context, r model.Record) model.Notification {
	return model.Notification{
		Record:        r,
		Content:       uc.parser.Parse(ctx, r),
		ToastDuration: uc.opts.ToastDuration,
	}
}

func (uc *implUseCase) render(ctx context.Context, snap model.Snapshot, unread int) model.ListUpdate {
	items := make([]model.Notification, 0, len(snap))
	for _, r := range snap {
		items = append(items, uc.notification(ctx, r))
	}
	return model.ListUpdate{Items: items, Unread: unread}
}
