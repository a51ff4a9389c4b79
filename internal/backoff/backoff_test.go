package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationGrowth(t *testing.T) {
	p := Policy{Initial: 100 * time.Millisecond, Max: 10 * time.Second, Factor: 2, Jitter: 0}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		got := p.durationWithRand(tt.attempt, 0)
		assert.Equal(t, tt.want, got, "attempt %d", tt.attempt)
	}
}

func TestDurationCappedAtMax(t *testing.T) {
	p := Policy{Initial: time.Second, Max: 3 * time.Second, Factor: 2, Jitter: 0}

	assert.Equal(t, 3*time.Second, p.durationWithRand(10, 0))
}

func TestDurationJitterBounded(t *testing.T) {
	p := Policy{Initial: 100 * time.Millisecond, Max: time.Minute, Factor: 2, Jitter: 0.5}

	lo := p.durationWithRand(1, 0)
	hi := p.durationWithRand(1, 0.999)

	assert.Equal(t, 100*time.Millisecond, lo)
	assert.Greater(t, hi, lo)
	assert.LessOrEqual(t, hi, 150*time.Millisecond)
}

func TestSleepHonorsCancellation(t *testing.T) {
	p := Policy{Initial: time.Minute, Max: time.Minute, Factor: 1, Jitter: 0}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, p, 1)
	require.ErrorIs(t, err, context.Canceled)
}
