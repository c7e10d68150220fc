package discord

import "errors"

var (
	ErrWebhookRequired = errors.New("discord: webhook id and token are required")
	ErrMessageTooLong  = errors.New("discord: message too long")
)
