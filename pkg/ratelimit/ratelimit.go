// Package ratelimit paces outbound model requests so a growth run stays
// inside the provider's requests-per-minute quota.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter keyed to a requests-per-minute
// budget. A nil Limiter never blocks, so callers can treat "no limit
// configured" and "limiter" uniformly.
type Limiter struct {
	limiter *rate.Limiter
}

// PerMinute creates a Limiter allowing rpm requests per minute with a
// burst of one. Non-positive rpm disables limiting.
func PerMinute(rpm int) *Limiter {
	if rpm <= 0 {
		return nil
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}
}

// Wait blocks until the next request may proceed or the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
