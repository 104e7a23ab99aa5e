package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
		{"shift overflow capped", 70, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateBackoff(tt.failures, baseInterval))
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		require.LessOrEqual(t, got, maxBackoff, "failures=%d", failures)
		require.Positive(t, got, "failures=%d", failures)
	}
}

func TestCalculateBackoff_LongBaseNeverShortens(t *testing.T) {
	base := 60 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 60 * time.Second},
		{"one failure", 1, 60 * time.Second},
		{"five failures", 5, 60 * time.Second},
		{"shift overflow", 70, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateBackoff(tt.failures, base))
		})
	}

	for failures := 0; failures <= 64; failures++ {
		require.GreaterOrEqual(t, calculateBackoff(failures, base), base, "failures=%d", failures)
	}
}

type countingLoader struct {
	calls atomic.Int32
	err   error
}

func (l *countingLoader) Load(context.Context) error {
	l.calls.Add(1)
	return l.err
}

func TestStartPoller_ReloadsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := &countingLoader{}

	StartPoller(ctx, l, 5*time.Millisecond, zerolog.Nop())
	require.Eventually(t, func() bool { return l.calls.Load() >= 3 }, time.Second, time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := l.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, l.calls.Load(), "poller kept loading after cancel")
}

func TestStartPoller_KeepsGoingAfterFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := &countingLoader{err: errors.New("offline")}

	StartPoller(ctx, l, time.Millisecond, zerolog.Nop())
	require.Eventually(t, func() bool { return l.calls.Load() >= 2 }, time.Second, time.Millisecond)
}
