package services

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// SettingsProviderSvc exposes cached pricing and tax settings.
type SettingsProviderSvc interface {
	// RateTables returns the weekday/weekend rate tables keyed by room-type code.
	RateTables(ctx context.Context) (map[string]domain.RateTable, error)
	Seasons(ctx context.Context) ([]domain.Season, error)
	WeekdayModifiers(ctx context.Context) ([]domain.WeekdayModifier, error)
	SpecialDates(ctx context.Context) ([]domain.SpecialDate, error)

	// TaxRateFor returns the rates for category, falling back to service 10 / VAT 18.
	TaxRateFor(ctx context.Context, category domain.ChargeCategory) (domain.TaxRate, error)

	// LastAuditDate is read through on every call; it moves when the night audit runs.
	LastAuditDate(ctx context.Context) (time.Time, error)

	// Invalidate drops every cached accessor.
	Invalidate()
}
