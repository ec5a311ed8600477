package scoring

import (
	"context"
	"time"
)

// DefaultPacingInterval is the minimum spacing between the completion of one
// outbound AI request and the start of the next. Gemini's free tier throttles
// aggressively below this.
const DefaultPacingInterval = 1500 * time.Millisecond

// Pacer throttles outbound AI requests. Wait is called before every call
// attempt and Done after it returns, whether or not the attempt succeeded:
// this is a fixed floor measured from the previous completion, not an
// adaptive backoff.
type Pacer interface {
	Wait(ctx context.Context) error
	Done()
}

type intervalPacer struct {
	interval time.Duration
	last     time.Time
}

// NewPacer builds a Pacer enforcing the given interval between one attempt's
// completion and the next attempt's start. The first Wait returns immediately.
func NewPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		interval = DefaultPacingInterval
	}
	return &intervalPacer{interval: interval}
}

// Wait blocks until the interval since the last completed attempt has passed.
// Time spent inside the previous request does not count against the interval.
func (p *intervalPacer) Wait(ctx context.Context) error {
	if p.last.IsZero() {
		return nil
	}
	return waitFor(ctx, p.interval-time.Since(p.last))
}

// Done stamps the completion of an attempt. The next Wait measures from here.
func (p *intervalPacer) Done() {
	p.last = time.Now()
}

func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
