package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
)

type housekeepingRepository struct {
	store *Store
}

var _ portsrepo.HousekeepingRepository = (*housekeepingRepository)(nil)

func (r *housekeepingRepository) EnqueueTask(ctx context.Context, task domain.HousekeepingTask) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.tasks {
		if t.RoomID == task.RoomID && t.Type == task.Type && t.Status == domain.TaskPending {
			return false, nil
		}
	}
	if task.TaskID == "" {
		task.TaskID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	r.store.tasks = append(r.store.tasks, task)
	n := len(r.store.tasks)
	remember(ctx, func() { r.store.tasks = r.store.tasks[:n-1] })
	return true, nil
}

func (r *housekeepingRepository) ListPendingTasks(ctx context.Context) ([]domain.HousekeepingTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	pending := make([]domain.HousekeepingTask, 0)
	for _, t := range r.store.tasks {
		if t.Status == domain.TaskPending {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].RequestedAt.Before(pending[j].RequestedAt) })
	return pending, nil
}
