package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/mapping"
)

type PgxHousekeepingRepository struct {
	BaseRepository
}

func newPgxHousekeepingRepository(pool *pgxpool.Pool) *PgxHousekeepingRepository {
	return &PgxHousekeepingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HousekeepingRepository = (*PgxHousekeepingRepository)(nil)

// EnqueueTask relies on the partial unique index over pending (room_id, task_type).
func (r *PgxHousekeepingRepository) EnqueueTask(ctx context.Context, task domain.HousekeepingTask) (bool, error) {
	if task.TaskID == "" {
		task.TaskID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	m := mapping.ToModelHousekeepingTask(task)
	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO housekeeping_tasks (task_id, room_id, reservation_id, task_type, status, priority, requested_at, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (room_id, task_type) WHERE status = 'PENDING' DO NOTHING`,
		m.TaskID, m.RoomID, m.ReservationID, m.Type, m.Status, m.Priority, m.RequestedAt, m.RequestedBy)
	if err != nil {
		return false, mapError("failed to enqueue housekeeping task", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxHousekeepingRepository) ListPendingTasks(ctx context.Context) ([]domain.HousekeepingTask, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT task_id, room_id, reservation_id, task_type, status, priority, requested_at, requested_by
		FROM housekeeping_tasks WHERE status = 'PENDING' ORDER BY requested_at`)
	if err != nil {
		return nil, mapError("failed to query housekeeping tasks", err)
	}
	defer rows.Close()

	tasks := make([]domain.HousekeepingTask, 0)
	for rows.Next() {
		var m models.HousekeepingTask
		if err := rows.Scan(&m.TaskID, &m.RoomID, &m.ReservationID, &m.Type, &m.Status, &m.Priority, &m.RequestedAt, &m.RequestedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan housekeeping task row", err)
		}
		tasks = append(tasks, mapping.ToDomainHousekeepingTask(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating housekeeping task rows", err)
	}
	return tasks, nil
}
