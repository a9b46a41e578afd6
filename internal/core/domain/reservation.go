package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "PENDING"
	StatusConfirmed  ReservationStatus = "CONFIRMED"
	StatusCheckedIn  ReservationStatus = "CHECKED_IN"
	StatusCheckedOut ReservationStatus = "CHECKED_OUT"
	StatusCancelled  ReservationStatus = "CANCELLED"
	StatusNoShow     ReservationStatus = "NO_SHOW"
)

// IsTerminal reports whether no further transitions are allowed.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return false
	default:
		return false
	}
}

// HoldsInventory reports whether a reservation in this status blocks its room/date range.
func (s ReservationStatus) HoldsInventory() bool {
	switch s {
	case StatusCancelled, StatusNoShow:
		return false
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut:
		return true
	default:
		return true
	}
}

// IsAwaitingArrival reports whether the guest has not arrived yet.
func (s ReservationStatus) IsAwaitingArrival() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ReservationSource is the channel a booking came through.
type ReservationSource string

const (
	SourceWalkIn  ReservationSource = "WALK_IN"
	SourcePhone   ReservationSource = "PHONE"
	SourceEmail   ReservationSource = "EMAIL"
	SourceWebsite ReservationSource = "WEBSITE"
	SourceOTA     ReservationSource = "OTA"
	SourceAgent   ReservationSource = "AGENT"
)

// Guest holds the identity fields captured at booking.
type Guest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	IDNumber    string `json:"idNumber"`
	Nationality string `json:"nationality"`
}

// Reservation is a booking of one room for a half-open date range.
type Reservation struct {
	ReservationID string            `json:"reservationID"`
	RoomID        string            `json:"roomID"`
	Guest         Guest             `json:"guest"`
	CheckIn       time.Time         `json:"checkIn"`
	CheckOut      time.Time         `json:"checkOut"`
	Adults        int               `json:"adults"`
	Children      int               `json:"children"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	Status        ReservationStatus `json:"status"`
	Source        ReservationSource `json:"source"`
	Notes         string            `json:"notes"`

	CheckedInAt        *time.Time      `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time      `json:"checkedOutAt,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty"`
	RefundAmount       decimal.Decimal `json:"refundAmount"`
	NoShowCharge       decimal.Decimal `json:"noShowCharge"`
	AuditFields
}

// Range returns the stay as a DateRange.
func (r Reservation) Range() DateRange {
	return DateRange{CheckIn: DateOnly(r.CheckIn), CheckOut: DateOnly(r.CheckOut)}
}

// Nights is the number of chargeable nights.
func (r Reservation) Nights() int {
	return r.Range().Nights()
}

// ReservationFilter narrows ListReservations. Zero values mean "any".
type ReservationFilter struct {
	RoomID    string
	Statuses  []ReservationStatus
	From      time.Time // stays ending after From
	To        time.Time // stays starting before To
	Limit     int
	NextToken *string
}
