package host

import "golang.org/x/time/rate"

// SessionLimiter throttles how fast new sessions may start.
type SessionLimiter struct {
	limiter *rate.Limiter
}

// NewSessionLimiter allows perSecond new sessions on average with bursts of up
// to burst. A non-positive perSecond disables the limit.
func NewSessionLimiter(perSecond float64, burst int) *SessionLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &SessionLimiter{limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Allow reports whether a session may start now.
func (l *SessionLimiter) Allow() bool {
	return l.limiter.Allow()
}
