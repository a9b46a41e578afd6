package ports

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// ActivitySink receives audit events. Record must not block the caller and never fails
// the operation that produced the event.
type ActivitySink interface {
	Record(ctx context.Context, event domain.ActivityEvent)
}

// HousekeepingSink receives cleaning requests. A PENDING task of the same type for the
// same room is not duplicated; created reports whether a new task was stored.
type HousekeepingSink interface {
	EnqueueTask(ctx context.Context, task domain.HousekeepingTask) (created bool, err error)
}
