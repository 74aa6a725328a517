// Package ratelimiter throttles requests to a model by estimated prompt
// tokens and by request count.
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiters.
// Implementations can be local (in-memory) or distributed (Redis, etc.).
type Limiter interface {
	// TryConsume atomically checks capacity and consumes tokens and one
	// request if both are available.
	TryConsume(numTokens int) bool

	// TimeUntilAvailable returns how long until tokens would be available.
	// It does not consume anything.
	TimeUntilAvailable(tokens int) time.Duration

	// WaitAndConsume waits until tokens are available, then consumes them.
	// Returns error if context is cancelled or maxWait is exceeded.
	WaitAndConsume(ctx context.Context, tokens int, maxWait time.Duration) error
}

// RateLimiter enforces per-minute token and request budgets. Budgets refill
// continuously and may be spent in a burst up to one minute's worth.
type RateLimiter struct {
	tokens   *rate.Limiter
	requests *rate.Limiter
}

var _ Limiter = (*RateLimiter)(nil)

// New creates a RateLimiter. A non-positive budget is unlimited.
func New(tokensPerMinute, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		tokens:   perMinute(tokensPerMinute),
		requests: perMinute(requestsPerMinute),
	}
}

func perMinute(n int) *rate.Limiter {
	if n <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(float64(n)/time.Minute.Seconds()), n)
}

// TryConsume consumes numTokens and one request, or nothing.
func (rl *RateLimiter) TryConsume(numTokens int) bool {
	now := time.Now()

	tr := rl.tokens.ReserveN(now, numTokens)
	if !tr.OK() || tr.DelayFrom(now) > 0 {
		tr.CancelAt(now)
		return false
	}

	rr := rl.requests.ReserveN(now, 1)
	if !rr.OK() || rr.DelayFrom(now) > 0 {
		rr.CancelAt(now)
		tr.CancelAt(now)
		return false
	}
	return true
}

// TimeUntilAvailable returns the longer of the token and request waits.
// A request larger than the per-minute budget never becomes available and
// reports rate.InfDuration.
func (rl *RateLimiter) TimeUntilAvailable(tokens int) time.Duration {
	now := time.Now()
	return max(probe(rl.tokens, now, tokens), probe(rl.requests, now, 1))
}

func probe(l *rate.Limiter, now time.Time, n int) time.Duration {
	r := l.ReserveN(now, n)
	if !r.OK() {
		return rate.InfDuration
	}
	defer r.CancelAt(now)
	return r.DelayFrom(now)
}

// WaitAndConsume waits until tokens and one request are available (up to
// maxWait), then consumes them. If maxWait is 0, there is no limit.
func (rl *RateLimiter) WaitAndConsume(ctx context.Context, tokens int, maxWait time.Duration) error {
	if wait := rl.TimeUntilAvailable(tokens); maxWait > 0 && wait > maxWait {
		return fmt.Errorf("rate limit wait time %v exceeds max wait %v", wait, maxWait)
	}

	if maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, maxWait)
		defer cancel()
	}

	if err := rl.tokens.WaitN(ctx, tokens); err != nil {
		return fmt.Errorf("waiting for tokens: %w", err)
	}
	if err := rl.requests.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for request slot: %w", err)
	}
	return nil
}
