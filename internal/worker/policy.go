package worker

import (
	"time"

	"github.com/opticstore/notify-queue/internal/model"
)

// DefaultMaxAttempts bounds how many delivery attempts a job gets before it is
// moved to the terminal failed state.
const DefaultMaxAttempts = 5

// NextAttempt decides a job's fate after a failed delivery attempt. It is a
// pure function of the new attempt count: either the job is out of attempts
// and becomes failed, or it goes back to pending with an exponentially growing
// delay of 2^attempts minutes (2, 4, 8, 16, 32 for attempts 1..5). The
// returned retry time is meaningless for a failed job.
func NextAttempt(attempts, maxAttempts int, now time.Time) (string, time.Time) {
	if attempts >= maxAttempts {
		return model.StatusFailed, time.Time{}
	}

	backoff := time.Duration(1<<uint(attempts)) * time.Minute

	return model.StatusPending, now.Add(backoff)
}
