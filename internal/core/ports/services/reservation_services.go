package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// ReservationReaderSvc defines read operations for reservation data
type ReservationReaderSvc interface {
	// GetReservation retrieves a reservation by its ID.
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// ListReservations retrieves a page of reservations.
	ListReservations(ctx context.Context, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error)
}

// ReservationWriterSvc defines booking and edit operations
type ReservationWriterSvc interface {
	// CreateReservation validates, gates, checks availability and prices a new booking.
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest, userID string) (*domain.Reservation, error)

	// UpdateReservation edits guest fields, occupancy, source and notes.
	UpdateReservation(ctx context.Context, reservationID string, req dto.UpdateReservationRequest, userID string) (*domain.Reservation, error)
}

// ReservationLifecycleSvc drives the reservation state machine.
type ReservationLifecycleSvc interface {
	CheckIn(ctx context.Context, reservationID string, req dto.CheckInRequest, userID string) (*domain.Reservation, error)
	CheckOut(ctx context.Context, reservationID string, userID string) (*domain.Reservation, error)
	MarkNoShow(ctx context.Context, reservationID string, req dto.NoShowRequest, userID string) (*dto.NoShowResult, error)
	Cancel(ctx context.Context, reservationID string, req dto.CancelReservationRequest, userID string) (*domain.Reservation, error)
}

// ReservationSvcFacade combines all reservation-related service interfaces
type ReservationSvcFacade interface {
	ReservationReaderSvc
	ReservationWriterSvc
	ReservationLifecycleSvc
}
