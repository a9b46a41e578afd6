package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is the reservations table row. Guest fields are flattened into columns.
type Reservation struct {
	ReservationID      string          `db:"reservation_id"`
	RoomID             string          `db:"room_id"`
	GuestName          string          `db:"guest_name"`
	GuestPhone         string          `db:"guest_phone"`
	GuestEmail         string          `db:"guest_email"`
	GuestIDNumber      string          `db:"guest_id_number"`
	GuestNationality   string          `db:"guest_nationality"`
	CheckIn            time.Time       `db:"check_in"`
	CheckOut           time.Time       `db:"check_out"`
	Adults             int             `db:"adults"`
	Children           int             `db:"children"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	Status             string          `db:"status"`
	Source             string          `db:"source"`
	Notes              string          `db:"notes"`
	CheckedInAt        sql.NullTime    `db:"checked_in_at"`
	CheckedOutAt       sql.NullTime    `db:"checked_out_at"`
	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	CancellationReason string          `db:"cancellation_reason"`
	RefundAmount       decimal.Decimal `db:"refund_amount"`
	NoShowCharge       decimal.Decimal `db:"no_show_charge"`
	AuditFields
}
