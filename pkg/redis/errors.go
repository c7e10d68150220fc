package redis

import "errors"

var (
	ErrAddrRequired = errors.New("redis: address is required")
	ErrNotConnected = errors.New("redis: client is not connected")
)
