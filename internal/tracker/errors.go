package tracker

import "errors"

// ErrStaleResult is returned when a fetch result was issued before one already applied.
var ErrStaleResult = errors.New("stale snapshot: a newer request was already applied")
