package repositories

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// ReservationReader defines read operations for reservation data
type ReservationReader interface {
	// FindReservationByID retrieves a reservation; apperrors.ErrNotFound if missing.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// ListReservations retrieves reservations matching the filter, ordered by check-in then creation time.
	// It returns the reservations and a token for the next page when filter.Limit is set.
	ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, *string, error)
}

// ReservationWriter defines write operations for reservation data
type ReservationWriter interface {
	// SaveReservation inserts a reservation with Version 0, otherwise updates it when the
	// stored version equals r.Version (apperrors.ErrStaleVersion if not). The stored
	// version is incremented and written back into r.
	SaveReservation(ctx context.Context, r *domain.Reservation) error

	// DeleteReservation permanently removes a reservation. Lifecycle operations never call
	// it; cancelled and no-show reservations are kept for history.
	DeleteReservation(ctx context.Context, reservationID string) error
}

// ReservationRepositoryFacade combines all reservation-related repository interfaces
type ReservationRepositoryFacade interface {
	ReservationReader
	ReservationWriter
}
