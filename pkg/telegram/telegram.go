package telegram

import (
	"context"
	"fmt"
	"unicode/utf8"
)

func (t *telegramImpl) SendText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(t.chat, Truncate(text, MaxMessageLen), t.opts); err != nil {
		t.l.Warnf(ctx, "pkg.telegram.SendText: chat %d: %v", t.chat.ID, err)
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (t *telegramImpl) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// Truncate cuts s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
