package alert

import (
	"context"

	"builders-panel/internal/model"
	"builders-panel/internal/poller"
)

// UseCase escalates failure notifications to the operators' Discord and Telegram chats.
type UseCase interface {
	poller.Listener

	// Escalate sends n to every sink unless the rate limit is exhausted.
	Escalate(ctx context.Context, n model.Notification) error
	Stats() Stats
}
