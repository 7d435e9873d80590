package crawler

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// delayPacer enforces the configured inter-request delay using a token
// bucket, so waits are interruptible by the context.
type delayPacer struct {
	limiter *rate.Limiter
}

// NewDelayPacer builds a Pacer emitting one token per delay interval. A
// non-positive delay disables pacing.
func NewDelayPacer(delay time.Duration) Pacer {
	if delay <= 0 {
		return &delayPacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &delayPacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request may go out or the context ends.
func (p *delayPacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}
	return nil
}
