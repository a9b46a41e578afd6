package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

type availabilityService struct {
	BaseService
	roomRepo        portsrepo.RoomReader
	reservationRepo portsrepo.ReservationReader
}

// NewAvailabilityService creates an AvailabilitySvc.
func NewAvailabilityService(roomRepo portsrepo.RoomReader, reservationRepo portsrepo.ReservationReader, base BaseService) portssvc.AvailabilitySvc {
	return &availabilityService{BaseService: base, roomRepo: roomRepo, reservationRepo: reservationRepo}
}

var _ portssvc.AvailabilitySvc = (*availabilityService)(nil)

// findConflict loads the reservations that may overlap stay and returns the first conflict.
func (s *availabilityService) findConflict(ctx context.Context, roomID string, stay domain.DateRange, excludeID string) (*domain.Reservation, error) {
	existing, _, err := s.reservationRepo.ListReservations(ctx, domain.ReservationFilter{
		RoomID: roomID,
		From:   stay.CheckIn,
		To:     stay.CheckOut,
	})
	if err != nil {
		return nil, apperrors.NewDependencyError("list reservations", err)
	}
	return domain.FindConflict(existing, roomID, stay, excludeID), nil
}

func (s *availabilityService) EnsureAvailable(ctx context.Context, roomID string, stay domain.DateRange, excludeReservationID string) error {
	conflict, err := s.findConflict(ctx, roomID, stay, excludeReservationID)
	if err != nil {
		return err
	}
	if conflict != nil {
		return &apperrors.ConflictError{
			RoomID:                   roomID,
			ConflictingReservationID: conflict.ReservationID,
			Message: fmt.Sprintf("room is booked from %s to %s",
				conflict.CheckIn.Format(time.DateOnly), conflict.CheckOut.Format(time.DateOnly)),
		}
	}
	return nil
}

func (s *availabilityService) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stay, err := domain.NewDateRange(req.CheckIn.Time, req.CheckOut.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("checkOut", "%s", err.Error())
	}
	if _, err := s.roomRepo.FindRoomByID(ctx, req.RoomID); err != nil {
		return nil, apperrors.NewDependencyError("find room", err)
	}

	conflict, err := s.findConflict(ctx, req.RoomID, stay, req.ExcludeReservationID)
	if err != nil {
		return nil, err
	}
	if conflict == nil {
		return &dto.AvailabilityResponse{Available: true}, nil
	}
	in, out := dto.NewDate(conflict.CheckIn), dto.NewDate(conflict.CheckOut)
	return &dto.AvailabilityResponse{
		Available:                false,
		ConflictingReservationID: conflict.ReservationID,
		ConflictCheckIn:          &in,
		ConflictCheckOut:         &out,
	}, nil
}
