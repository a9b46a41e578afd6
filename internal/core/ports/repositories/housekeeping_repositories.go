package repositories

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// HousekeepingRepository stores cleaning tasks.
type HousekeepingRepository interface {
	// EnqueueTask stores task unless a PENDING task of the same type already exists for the
	// room. It reports whether a new task was created.
	EnqueueTask(ctx context.Context, task domain.HousekeepingTask) (bool, error)

	// ListPendingTasks returns PENDING tasks, oldest first.
	ListPendingTasks(ctx context.Context) ([]domain.HousekeepingTask, error)
}
