package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/mapping"
)

type PgxRoomRepository struct {
	BaseRepository
}

func newPgxRoomRepository(pool *pgxpool.Pool) *PgxRoomRepository {
	return &PgxRoomRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoomRepositoryFacade = (*PgxRoomRepository)(nil)

const roomColumns = `room_id, room_number, room_type_code, floor, base_price, status, needs_cleaning,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanRoom(row pgx.Row) (models.Room, error) {
	var m models.Room
	err := row.Scan(&m.RoomID, &m.Number, &m.RoomTypeCode, &m.Floor, &m.BasePrice, &m.Status, &m.NeedsCleaning,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version)
	return m, err
}

func (r *PgxRoomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	m, err := scanRoom(r.db(ctx).QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE room_id = $1`, roomID))
	if err != nil {
		return nil, mapError("room "+roomID, err)
	}
	room := mapping.ToDomainRoom(m)
	return &room, nil
}

func (r *PgxRoomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, mapError("failed to list rooms", err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan room row", err)
		}
		rooms = append(rooms, mapping.ToDomainRoom(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating room rows", err)
	}
	return rooms, nil
}

func (r *PgxRoomRepository) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, needsCleaning bool, userID string, now time.Time) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE rooms
		SET status = $2, needs_cleaning = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE room_id = $1`,
		roomID, string(status), needsCleaning, now, userID)
	if err != nil {
		return mapError("failed to update room "+roomID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", roomID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	m := mapping.ToModelRoom(room)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO rooms (`+roomColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		ON CONFLICT (room_id) DO UPDATE SET
			room_number = EXCLUDED.room_number,
			room_type_code = EXCLUDED.room_type_code,
			floor = EXCLUDED.floor,
			base_price = EXCLUDED.base_price,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by,
			version = rooms.version + 1`,
		m.RoomID, m.Number, m.RoomTypeCode, m.Floor, m.BasePrice, m.Status, m.NeedsCleaning,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError("failed to save room "+room.RoomID, err)
	}
	return nil
}
