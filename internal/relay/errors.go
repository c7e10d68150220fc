package relay

import "errors"

var (
	ErrUnknownKind    = errors.New("relay: event without kind")
	ErrInvalidChannel = errors.New("relay: invalid channel")
)
