package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/eapache/go-resiliency/retrier"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
)

// dependencyClassifier retries only infrastructure failures.
type dependencyClassifier struct{}

func (dependencyClassifier) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case errors.Is(err, apperrors.ErrDependency):
		return retrier.Retry
	default:
		return retrier.Fail
	}
}

// readRetrier re-runs idempotent reads that failed on a dependency. Writes are never
// retried here.
type readRetrier struct {
	r *retrier.Retrier
}

func newReadRetrier(attempts int) *readRetrier {
	if attempts < 0 {
		attempts = 0
	}
	return &readRetrier{r: retrier.New(retrier.ExponentialBackoff(attempts, 50*time.Millisecond), dependencyClassifier{})}
}

func (rr *readRetrier) do(ctx context.Context, fn func(ctx context.Context) error) error {
	if rr == nil {
		return fn(ctx)
	}
	return rr.r.RunCtx(ctx, fn)
}
