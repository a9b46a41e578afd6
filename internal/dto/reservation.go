package dto

import (
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GuestRequest carries guest identity fields.
type GuestRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	IDNumber    string `json:"idNumber"`
	Nationality string `json:"nationality"`
}

// ToDomain converts the request into a domain.Guest.
func (g GuestRequest) ToDomain() domain.Guest {
	return domain.Guest{
		Name:        g.Name,
		Phone:       g.Phone,
		Email:       g.Email,
		IDNumber:    g.IDNumber,
		Nationality: g.Nationality,
	}
}

// CreateReservationRequest books a room for a stay.
type CreateReservationRequest struct {
	RoomID   string                   `json:"roomID" binding:"required"`
	Guest    GuestRequest             `json:"guest" binding:"required"`
	CheckIn  Date                     `json:"checkIn"`
	CheckOut Date                     `json:"checkOut"`
	Adults   int                      `json:"adults" binding:"required,min=1"`
	Children int                      `json:"children" binding:"min=0"`
	Source   domain.ReservationSource `json:"source" binding:"omitempty,oneof=WALK_IN PHONE EMAIL WEBSITE OTA AGENT"`
	Notes    string                   `json:"notes"`
	// Status may be PENDING for tentative holds; CONFIRMED otherwise.
	Status domain.ReservationStatus `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED"`
}

// UpdateReservationRequest edits guest-facing fields. Dates and room go through reschedule.
type UpdateReservationRequest struct {
	Guest    *GuestRequest             `json:"guest"`
	Adults   *int                      `json:"adults" binding:"omitempty,min=1"`
	Children *int                      `json:"children" binding:"omitempty,min=0"`
	Source   *domain.ReservationSource `json:"source" binding:"omitempty,oneof=WALK_IN PHONE EMAIL WEBSITE OTA AGENT"`
	Notes    *string                   `json:"notes"`
}

// CheckInRequest controls a check-in.
type CheckInRequest struct {
	// AllowEarly confirms a check-in before the booked arrival date; the stay is extended
	// back to the business day.
	AllowEarly bool `json:"allowEarly"`
}

// NoShowPolicy selects the charge applied when a guest does not arrive.
type NoShowPolicy string

const (
	NoShowFirstNight NoShowPolicy = "FIRST_NIGHT"
	NoShowFullStay   NoShowPolicy = "FULL_STAY"
	NoShowNone       NoShowPolicy = "NONE"
	NoShowCustom     NoShowPolicy = "CUSTOM"
)

// NoShowRequest marks an arrival as a no-show.
type NoShowRequest struct {
	Policy       NoShowPolicy    `json:"policy" binding:"required,oneof=FIRST_NIGHT FULL_STAY NONE CUSTOM"`
	CustomAmount decimal.Decimal `json:"customAmount"`
	ReleaseRoom  bool            `json:"releaseRoom"`
}

// NoShowResult reports what a no-show did.
type NoShowResult struct {
	Reservation  *domain.Reservation `json:"reservation"`
	Charge       decimal.Decimal     `json:"charge"`
	RoomReleased bool                `json:"roomReleased"`
}

// CancelReservationRequest cancels a reservation with an optional refund.
type CancelReservationRequest struct {
	Reason          string               `json:"reason"`
	RefundAmount    decimal.Decimal      `json:"refundAmount"`
	RefundMethod    domain.PaymentMethod `json:"refundMethod" binding:"omitempty,payment_method"`
	RefundReference string               `json:"refundReference"`
}

// RescheduleRequest moves or resizes a reservation.
type RescheduleRequest struct {
	RoomID   string `json:"roomID" binding:"required"`
	CheckIn  Date   `json:"checkIn"`
	CheckOut Date   `json:"checkOut"`
}

// RescheduleResult reports a completed move/resize.
type RescheduleResult struct {
	Reservation         *domain.Reservation `json:"reservation"`
	Quote               *domain.StayQuote   `json:"quote"`
	RoomChanged         bool                `json:"roomChanged"`
	FolioChargesUpdated int                 `json:"folioChargesUpdated"`
}

// ListReservationsParams defines the query parameters for listing reservations.
type ListReservationsParams struct {
	RoomID    string    `form:"roomID"`
	Status    []string  `form:"status"`
	From      time.Time `form:"from" time_format:"2006-01-02"`
	To        time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int       `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken *string   `form:"nextToken"`
}

// ListReservationsResponse is a page of reservations.
type ListReservationsResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	NextToken    *string              `json:"nextToken,omitempty"`
}
