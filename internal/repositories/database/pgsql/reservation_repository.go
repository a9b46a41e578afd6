package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/mapping"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/pagination"
)

type PgxReservationRepository struct {
	BaseRepository
}

func newPgxReservationRepository(pool *pgxpool.Pool) *PgxReservationRepository {
	return &PgxReservationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

const reservationColumns = `reservation_id, room_id, guest_name, guest_phone, guest_email, guest_id_number, guest_nationality,
	check_in, check_out, adults, children, total_amount, status, source, notes,
	checked_in_at, checked_out_at, cancelled_at, cancellation_reason, refund_amount, no_show_charge,
	created_at, created_by, last_updated_at, last_updated_by, version`

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var m models.Reservation
	err := row.Scan(
		&m.ReservationID, &m.RoomID, &m.GuestName, &m.GuestPhone, &m.GuestEmail, &m.GuestIDNumber, &m.GuestNationality,
		&m.CheckIn, &m.CheckOut, &m.Adults, &m.Children, &m.TotalAmount, &m.Status, &m.Source, &m.Notes,
		&m.CheckedInAt, &m.CheckedOutAt, &m.CancelledAt, &m.CancellationReason, &m.RefundAmount, &m.NoShowCharge,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	m, err := scanReservation(r.db(ctx).QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE reservation_id = $1`, reservationID))
	if err != nil {
		return nil, mapError("reservation "+reservationID, err)
	}
	res := mapping.ToDomainReservation(m)
	return &res, nil
}

// ListReservations pages with a (check_in, created_at, reservation_id) keyset cursor.
func (r *PgxReservationRepository) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, *string, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 8)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.RoomID != "" {
		where = append(where, "room_id = "+arg(filter.RoomID))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(statuses)+")")
	}
	if !filter.From.IsZero() {
		where = append(where, "check_out > "+arg(domain.DateOnly(filter.From)))
	}
	if !filter.To.IsZero() {
		where = append(where, "check_in < "+arg(domain.DateOnly(filter.To)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "%v", err)
		}
		where = append(where, fmt.Sprintf("(check_in, created_at, reservation_id) > (%s, %s, %s)",
			arg(domain.DateOnly(c.CheckIn)), arg(c.CreatedAt), arg(c.ReservationID)))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY check_in, created_at, reservation_id"
	if filter.Limit > 0 {
		// One extra row tells whether another page exists.
		query += " LIMIT " + arg(filter.Limit+1)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError("failed to query reservations", err)
	}
	defer rows.Close()

	results := make([]domain.Reservation, 0)
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan reservation row", err)
		}
		results = append(results, mapping.ToDomainReservation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating reservation rows", err)
	}

	if filter.Limit <= 0 || len(results) <= filter.Limit {
		return results, nil, nil
	}
	results = results[:filter.Limit]
	last := results[len(results)-1]
	token := pagination.EncodeToken(pagination.Cursor{CheckIn: last.CheckIn, CreatedAt: last.CreatedAt, ReservationID: last.ReservationID})
	return results, &token, nil
}

func (r *PgxReservationRepository) SaveReservation(ctx context.Context, res *domain.Reservation) error {
	m := mapping.ToModelReservation(*res)

	if res.Version == 0 {
		_, err := r.db(ctx).Exec(ctx, `
			INSERT INTO reservations (`+reservationColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, 1)`,
			m.ReservationID, m.RoomID, m.GuestName, m.GuestPhone, m.GuestEmail, m.GuestIDNumber, m.GuestNationality,
			m.CheckIn, m.CheckOut, m.Adults, m.Children, m.TotalAmount, m.Status, m.Source, m.Notes,
			m.CheckedInAt, m.CheckedOutAt, m.CancelledAt, m.CancellationReason, m.RefundAmount, m.NoShowCharge,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return withRoom(mapError("failed to insert reservation "+res.ReservationID, err), res.RoomID)
		}
		res.Version = 1
		return nil
	}

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE reservations SET
			room_id = $3, guest_name = $4, guest_phone = $5, guest_email = $6, guest_id_number = $7, guest_nationality = $8,
			check_in = $9, check_out = $10, adults = $11, children = $12, total_amount = $13, status = $14, source = $15,
			notes = $16, checked_in_at = $17, checked_out_at = $18, cancelled_at = $19, cancellation_reason = $20,
			refund_amount = $21, no_show_charge = $22, last_updated_at = $23, last_updated_by = $24,
			version = version + 1
		WHERE reservation_id = $1 AND version = $2`,
		m.ReservationID, m.Version,
		m.RoomID, m.GuestName, m.GuestPhone, m.GuestEmail, m.GuestIDNumber, m.GuestNationality,
		m.CheckIn, m.CheckOut, m.Adults, m.Children, m.TotalAmount, m.Status, m.Source,
		m.Notes, m.CheckedInAt, m.CheckedOutAt, m.CancelledAt, m.CancellationReason,
		m.RefundAmount, m.NoShowCharge, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return withRoom(mapError("failed to update reservation "+res.ReservationID, err), res.RoomID)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, "reservations", "reservation_id", res.ReservationID)
	}
	res.Version++
	return nil
}

// withRoom fills the room on conflicts raised by the exclusion constraint.
func withRoom(err error, roomID string) error {
	if c, ok := err.(*apperrors.ConflictError); ok {
		c.RoomID = roomID
	}
	return err
}

func (r *PgxReservationRepository) DeleteReservation(ctx context.Context, reservationID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM reservations WHERE reservation_id = $1`, reservationID)
	if err != nil {
		return mapError("failed to delete reservation "+reservationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s: %w", reservationID, apperrors.ErrNotFound)
	}
	return nil
}
