package youtube

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gnzdotmx/ytmanager/internal/utils"
	"github.com/jpillora/backoff"
	"google.golang.org/api/googleapi"
)

// RetryPolicy bounds the retries of read-only calls
type RetryPolicy struct {
	Attempts int
	Min      time.Duration
	Max      time.Duration
}

// DefaultRetryPolicy is used when none is configured
var DefaultRetryPolicy = RetryPolicy{Attempts: 4, Min: 500 * time.Millisecond, Max: 10 * time.Second}

// retryable reports whether err is a rate limit or a server side failure
func retryable(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError
}

// do runs fn until it succeeds, fails with a permanent error, or the
// attempts are exhausted. Only idempotent calls go through here.
func (p RetryPolicy) do(ctx context.Context, op string, fn func() error) error {
	attempts := max(p.Attempts, 1)
	boff := &backoff.Backoff{Min: p.Min, Max: p.Max, Factor: 2, Jitter: true}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		wait := boff.Duration()
		utils.LogVerbose("%s failed (attempt %d/%d), retrying in %s: %v", op, attempt, attempts, wait, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
