package alert

import "time"

// Options throttle escalation: at most Burst alerts at once, refilled one per Every.
type Options struct {
	UserID int64
	Every  time.Duration
	Burst  int
}

type Stats struct {
	Sent       int64 `json:"sent"`
	Suppressed int64 `json:"suppressed"`
	Failed     int64 `json:"failed"`
}
