package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"
	"builders-panel/internal/tracker"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	triggerPoll    = "poll"
	triggerRefresh = "refresh"
	triggerRead    = "read_all"
)

func (uc *implUseCase) startSpan(ctx context.Context, trigger string) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, "poller."+trigger, trace.WithAttributes(
		attribute.Int64("panel.user_id", uc.opts.UserID),
		attribute.String("panel.session_id", uc.session.ID()),
	))
}

// fetch takes a sequence number and loads the snapshot. The sequence is taken before the
// request so overlapping fetches are ordered by issuance, not by completion.
func (uc *implUseCase) fetch(ctx context.Context, trigger string) (uint64, model.Snapshot, error) {
	seq := uc.session.Issue()
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int64("panel.seq", int64(seq)))

	start := time.Now()
	snap, err := uc.repo.ListByUser(ctx, uc.opts.UserID)
	uc.metrics.fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		uc.metrics.fetches.WithLabelValues(trigger, resultError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return seq, nil, fmt.Errorf("%w: %w", poller.ErrFetch, err)
	}
	span.SetAttributes(attribute.Int("panel.snapshot_size", len(snap)))
	return seq, snap, nil
}

func (uc *implUseCase) Poll(ctx context.Context) (poller.PollResult, error) {
	ctx, span := uc.startSpan(ctx, triggerPoll)
	defer span.End()

	seq, snap, err := uc.fetch(ctx, triggerPoll)
	if err != nil {
		uc.l.Warnf(ctx, "internal.poller.usecase.Poll.fetch: seq=%d: %v", seq, err)
		return poller.PollResult{Seq: seq}, err
	}

	uc.emitMu.Lock()
	defer uc.emitMu.Unlock()

	d, err := uc.session.Apply(seq, snap)
	if errors.Is(err, tracker.ErrStaleResult) {
		uc.metrics.fetches.WithLabelValues(triggerPoll, resultStale).Inc()
		span.SetAttributes(attribute.Bool("panel.stale", true))
		uc.l.Debugf(ctx, "internal.poller.usecase.Poll: dropped stale result seq=%d", seq)
		return poller.PollResult{Seq: seq, Stale: true}, nil
	}
	uc.metrics.fetches.WithLabelValues(triggerPoll, resultOK).Inc()

	uc.emitLocked(ctx, d, false)
	return poller.PollResult{
		Seq:    seq,
		Total:  len(d.Snapshot),
		New:    len(d.New),
		Unread: d.Unread,
	}, nil
}

func (uc *implUseCase) Refresh(ctx context.Context) (model.ListUpdate, error) {
	ctx, span := uc.startSpan(ctx, triggerRefresh)
	defer span.End()

	seq, snap, err := uc.fetch(ctx, triggerRefresh)
	if err != nil {
		uc.l.Warnf(ctx, "internal.poller.usecase.Refresh.fetch: seq=%d: %v", seq, err)
		return model.ListUpdate{}, err
	}

	uc.emitMu.Lock()
	defer uc.emitMu.Unlock()

	d, err := uc.session.Apply(seq, snap)
	if errors.Is(err, tracker.ErrStaleResult) {
		uc.metrics.fetches.WithLabelValues(triggerRefresh, resultStale).Inc()
		uc.l.Debugf(ctx, "internal.poller.usecase.Refresh: stale result seq=%d, serving current state", seq)
		st := uc.session.State()
		return uc.render(ctx, st.Snapshot, st.Unread), nil
	}
	uc.metrics.fetches.WithLabelValues(triggerRefresh, resultOK).Inc()

	return uc.emitLocked(ctx, d, true), nil
}

func (uc *implUseCase) MarkAllRead(ctx context.Context) (model.ListUpdate, error) {
	ctx, span := uc.startSpan(ctx, triggerRead)
	defer span.End()

	seq, snap, err := uc.fetch(ctx, triggerRead)
	if err != nil {
		uc.l.Warnf(ctx, "internal.poller.usecase.MarkAllRead.fetch: seq=%d: %v", seq, err)
		return model.ListUpdate{}, err
	}

	uc.emitMu.Lock()
	defer uc.emitMu.Unlock()

	d, err := uc.session.MarkAllRead(seq, snap)
	if errors.Is(err, tracker.ErrStaleResult) {
		// Identities were merged but the cursor stays; only the badge can change.
		uc.metrics.fetches.WithLabelValues(triggerRead, resultStale).Inc()
		uc.emitUnreadLocked(ctx, d)
		return uc.render(ctx, d.Snapshot, d.Unread), nil
	}
	uc.metrics.fetches.WithLabelValues(triggerRead, resultOK).Inc()

	return uc.emitLocked(ctx, d, true), nil
}

func (uc *implUseCase) ClearUpstream(ctx context.Context) error {
	if err := uc.repo.DeleteByUser(ctx, uc.opts.UserID); err != nil {
		uc.l.Errorf(ctx, "internal.poller.usecase.ClearUpstream.DeleteByUser: %v", err)
		return err
	}

	uc.emitMu.Lock()
	uc.session.Reset()
	uc.emitMu.Unlock()

	if _, err := uc.Refresh(ctx); err != nil {
		uc.l.Warnf(ctx, "internal.poller.usecase.ClearUpstream.Refresh: %v", err)
	}
	return nil
}

func (uc *implUseCase) Unread() poller.UnreadBadge {
	return poller.NewUnreadBadge(uc.session.State().Unread)
}

func (uc *implUseCase) Current(ctx context.Context) model.ListUpdate {
	st := uc.session.State()
	return uc.render(ctx, st.Snapshot, st.Unread)
}

func (uc *implUseCase) State() tracker.State {
	return uc.session.State()
}
