package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// SettingsReader exposes the pricing and tax configuration. Each accessor is independent;
// an empty result means "unset".
type SettingsReader interface {
	ListRateTables(ctx context.Context) ([]domain.RateTable, error)
	ListSeasons(ctx context.Context) ([]domain.Season, error)
	ListWeekdayModifiers(ctx context.Context) ([]domain.WeekdayModifier, error)
	ListSpecialDates(ctx context.Context) ([]domain.SpecialDate, error)
	ListTaxRates(ctx context.Context) ([]domain.TaxRate, error)

	// GetLastAuditDate returns the date of the last completed night audit.
	GetLastAuditDate(ctx context.Context) (time.Time, error)
}

// SettingsWriter is used by seeding and by the night-audit process.
type SettingsWriter interface {
	SetLastAuditDate(ctx context.Context, date time.Time) error
}

// SettingsRepositoryFacade combines settings read and write access
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
