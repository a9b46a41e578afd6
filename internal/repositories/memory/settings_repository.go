package memory

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
)

type settingsRepository struct {
	store *Store
}

var _ portsrepo.SettingsRepositoryFacade = (*settingsRepository)(nil)

func (r *settingsRepository) ListRateTables(ctx context.Context) ([]domain.RateTable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.RateTable(nil), r.store.rateTables...), ctx.Err()
}

func (r *settingsRepository) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Season(nil), r.store.seasons...), ctx.Err()
}

func (r *settingsRepository) ListWeekdayModifiers(ctx context.Context) ([]domain.WeekdayModifier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.WeekdayModifier(nil), r.store.weekdayModifiers...), ctx.Err()
}

func (r *settingsRepository) ListSpecialDates(ctx context.Context) ([]domain.SpecialDate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.SpecialDate(nil), r.store.specialDates...), ctx.Err()
}

func (r *settingsRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.TaxRate(nil), r.store.taxRates...), ctx.Err()
}

func (r *settingsRepository) GetLastAuditDate(ctx context.Context) (time.Time, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.lastAuditDate, ctx.Err()
}

func (r *settingsRepository) SetLastAuditDate(ctx context.Context, date time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev := r.store.lastAuditDate
	r.store.lastAuditDate = domain.DateOnly(date)
	remember(ctx, func() { r.store.lastAuditDate = prev })
	return nil
}

// ReplaceSettings swaps the whole pricing configuration. Empty slices clear a section.
func (s *Store) ReplaceSettings(rateTables []domain.RateTable, seasons []domain.Season, weekday []domain.WeekdayModifier, specials []domain.SpecialDate, taxes []domain.TaxRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateTables = rateTables
	s.seasons = seasons
	s.weekdayModifiers = weekday
	s.specialDates = specials
	s.taxRates = taxes
}
