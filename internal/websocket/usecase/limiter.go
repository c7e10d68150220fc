package usecase

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// connectLimiter throttles new connections per user with a token bucket each.
type connectLimiter struct {
	mu       sync.Mutex
	every    time.Duration
	burst    int
	limiters map[string]*rate.Limiter
}

// newConnectLimiter allows perMinute connections per user; zero disables the limit.
func newConnectLimiter(perMinute int) *connectLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &connectLimiter{
		every:    time.Minute / time.Duration(perMinute),
		burst:    perMinute,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (cl *connectLimiter) allow(userID string) bool {
	if cl == nil {
		return true
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()

	lim, ok := cl.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Every(cl.every), cl.burst)
		cl.limiters[userID] = lim
	}
	return lim.Allow()
}
