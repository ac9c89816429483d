package scoring

import (
	"math"
	"time"
)

// BackoffPolicy computes the wait between scoring attempts. The delay
// is fully deterministic: exponential growth capped at Cap, plus a
// linear JitterStep*attempt stagger so concurrent retries of different
// tweets drift apart instead of synchronizing.
type BackoffPolicy struct {
	Base       time.Duration
	Cap        time.Duration
	JitterStep time.Duration
}

// DefaultBackoff returns the standard policy: 1s, 2.1s, 4.2s, 8.3s,
// 16.4s, then capped at 20s plus the stagger.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		Base:       1 * time.Second,
		Cap:        20 * time.Second,
		JitterStep: 100 * time.Millisecond,
	}
}

// Delay calculates the wait after the given attempt (0-indexed):
// min(Base * 2^attempt, Cap) + JitterStep*attempt.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	delay := float64(p.Base) * math.Pow(2, float64(attempt))
	if delay > float64(p.Cap) {
		delay = float64(p.Cap)
	}
	return time.Duration(delay) + time.Duration(attempt)*p.JitterStep
}
