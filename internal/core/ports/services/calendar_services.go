package services

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// CalendarSvc enforces the business-day boundary.
type CalendarSvc interface {
	Calendar(ctx context.Context) (domain.BusinessCalendar, error)

	// EnsureOpen rejects dates before the business day.
	EnsureOpen(ctx context.Context, operation string, date time.Time) error

	// EnsureOpenRange applies EnsureOpen to every night of stay.
	EnsureOpenRange(ctx context.Context, operation string, stay domain.DateRange) error

	// EnsureAfterBusinessDay rejects dates on or before the business day.
	EnsureAfterBusinessDay(ctx context.Context, operation string, date time.Time) error
}
