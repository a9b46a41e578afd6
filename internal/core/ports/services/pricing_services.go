package services

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// PricingSvc computes nightly rates and stay totals.
type PricingSvc interface {
	// NightlyRate prices one night for a room, with the modifier trail.
	NightlyRate(ctx context.Context, room domain.Room, date time.Time) (domain.NightlyRate, error)

	// QuoteStay prices every night of stay and sums the rounded nightly rates.
	QuoteStay(ctx context.Context, room domain.Room, stay domain.DateRange) (*domain.StayQuote, error)

	// Quote looks the room up and prices the requested stay.
	Quote(ctx context.Context, req dto.QuoteRequest) (*domain.StayQuote, error)
}
