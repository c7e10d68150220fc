package telegram

import "time"

const (
	DefaultTimeout = 10 * time.Second
	DefaultAPIURL  = "https://api.telegram.org"

	// MaxMessageLen is the Telegram limit for a text message, in UTF-16 units.
	MaxMessageLen = 4096
)
