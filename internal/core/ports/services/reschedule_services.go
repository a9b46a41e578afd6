package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// RescheduleSvc moves a reservation to another room or date range.
type RescheduleSvc interface {
	// Reschedule is all-or-nothing: on failure neither the reservation nor its folio change.
	Reschedule(ctx context.Context, reservationID string, req dto.RescheduleRequest, userID string) (*dto.RescheduleResult, error)
}
