package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opticstore/notify-queue/internal/model"
)

func TestNextAttempt_Backoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	wantDelays := []time.Duration{2 * time.Minute, 4 * time.Minute, 8 * time.Minute, 16 * time.Minute}

	var prev time.Duration
	for i, want := range wantDelays {
		attempts := i + 1

		status, nextRetryAt := NextAttempt(attempts, DefaultMaxAttempts, now)

		assert.Equal(t, model.StatusPending, status, "attempt %d should stay retryable", attempts)
		assert.Equal(t, want, nextRetryAt.Sub(now), "attempt %d", attempts)
		assert.Greater(t, nextRetryAt.Sub(now), prev, "backoff must strictly increase")
		prev = nextRetryAt.Sub(now)
	}
}

func TestNextAttempt_Exhausted(t *testing.T) {
	now := time.Now()

	status, _ := NextAttempt(DefaultMaxAttempts, DefaultMaxAttempts, now)
	assert.Equal(t, model.StatusFailed, status)

	status, _ = NextAttempt(DefaultMaxAttempts+3, DefaultMaxAttempts, now)
	assert.Equal(t, model.StatusFailed, status)
}

func TestNextAttempt_CustomMaxAttempts(t *testing.T) {
	now := time.Now()

	status, nextRetryAt := NextAttempt(2, 3, now)
	assert.Equal(t, model.StatusPending, status)
	assert.Equal(t, 4*time.Minute, nextRetryAt.Sub(now))

	status, _ = NextAttempt(3, 3, now)
	assert.Equal(t, model.StatusFailed, status)
}
