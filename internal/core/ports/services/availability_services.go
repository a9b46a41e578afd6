package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// AvailabilitySvc answers whether a room is free for a stay.
type AvailabilitySvc interface {
	// EnsureAvailable returns nil when no live reservation other than excludeReservationID
	// overlaps stay on roomID, otherwise an *apperrors.ConflictError.
	EnsureAvailable(ctx context.Context, roomID string, stay domain.DateRange, excludeReservationID string) error

	// CheckAvailability reports availability without treating a conflict as an error.
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
}
