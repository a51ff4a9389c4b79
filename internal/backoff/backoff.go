// Package backoff provides bounded exponential backoff with jitter for
// retrying transient judge-call failures.
package backoff

import (
	"context"
	"math"
	"math/rand"
	"time"
)

type Policy struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
	Jitter  float64
}

func DefaultPolicy() Policy {
	return Policy{
		Initial: 500 * time.Millisecond,
		Max:     15 * time.Second,
		Factor:  2,
		Jitter:  0.1,
	}
}

// Duration computes the delay before the given retry. Attempts are
// 1-indexed: attempt 1 sleeps roughly Initial.
func (p Policy) Duration(attempt int) time.Duration {
	return p.durationWithRand(attempt, rand.Float64())
}

func (p Policy) durationWithRand(attempt int, random float64) time.Duration {
	exp := math.Max(float64(attempt-1), 0)
	base := float64(p.Initial) * math.Pow(p.Factor, exp)
	jittered := base + base*p.Jitter*random
	return time.Duration(math.Min(float64(p.Max), jittered))
}

// Sleep blocks for the attempt's backoff duration or until the context is
// cancelled, whichever comes first.
func Sleep(ctx context.Context, p Policy, attempt int) error {
	timer := time.NewTimer(p.Duration(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
