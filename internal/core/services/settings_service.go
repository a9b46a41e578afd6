package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
)

const (
	defaultSettingsTTL = 5 * time.Minute
	settingsCacheKey   = "all"
)

// cachedSetting memoizes one settings accessor.
type cachedSetting[T any] struct {
	name  string
	cache *expirable.LRU[string, T]
	load  func(ctx context.Context) (T, error)
}

func newCachedSetting[T any](name string, ttl time.Duration, load func(ctx context.Context) (T, error)) *cachedSetting[T] {
	return &cachedSetting[T]{
		name:  name,
		cache: expirable.NewLRU[string, T](1, nil, ttl),
		load:  load,
	}
}

func (c *cachedSetting[T]) get(ctx context.Context) (T, error) {
	if v, ok := c.cache.Get(settingsCacheKey); ok {
		metrics.IncSettingsLookup(c.name, true)
		return v, nil
	}
	metrics.IncSettingsLookup(c.name, false)
	v, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, apperrors.NewDependencyError("settings."+c.name, err)
	}
	c.cache.Add(settingsCacheKey, v)
	return v, nil
}

// settingsService implements portssvc.SettingsProviderSvc.
type settingsService struct {
	repo portsrepo.SettingsReader

	rateTables *cachedSetting[map[string]domain.RateTable]
	seasons    *cachedSetting[[]domain.Season]
	weekdays   *cachedSetting[[]domain.WeekdayModifier]
	specials   *cachedSetting[[]domain.SpecialDate]
	taxRates   *cachedSetting[map[domain.ChargeCategory]domain.TaxRate]
}

// NewSettingsService creates a SettingsProviderSvc caching each accessor for ttl.
func NewSettingsService(repo portsrepo.SettingsReader, ttl time.Duration) portssvc.SettingsProviderSvc {
	if ttl <= 0 {
		ttl = defaultSettingsTTL
	}
	s := &settingsService{repo: repo}
	s.rateTables = newCachedSetting("rate_tables", ttl, func(ctx context.Context) (map[string]domain.RateTable, error) {
		tables, err := repo.ListRateTables(ctx)
		if err != nil {
			return nil, err
		}
		byType := make(map[string]domain.RateTable, len(tables))
		for _, t := range tables {
			byType[t.RoomTypeCode] = t
		}
		return byType, nil
	})
	s.seasons = newCachedSetting("seasons", ttl, repo.ListSeasons)
	s.weekdays = newCachedSetting("weekday_modifiers", ttl, repo.ListWeekdayModifiers)
	s.specials = newCachedSetting("special_dates", ttl, repo.ListSpecialDates)
	s.taxRates = newCachedSetting("tax_rates", ttl, func(ctx context.Context) (map[domain.ChargeCategory]domain.TaxRate, error) {
		rates, err := repo.ListTaxRates(ctx)
		if err != nil {
			return nil, err
		}
		byCategory := make(map[domain.ChargeCategory]domain.TaxRate, len(rates))
		for _, r := range rates {
			byCategory[r.Category] = r
		}
		return byCategory, nil
	})
	return s
}

var _ portssvc.SettingsProviderSvc = (*settingsService)(nil)

func (s *settingsService) RateTables(ctx context.Context) (map[string]domain.RateTable, error) {
	return s.rateTables.get(ctx)
}

func (s *settingsService) Seasons(ctx context.Context) ([]domain.Season, error) {
	return s.seasons.get(ctx)
}

func (s *settingsService) WeekdayModifiers(ctx context.Context) ([]domain.WeekdayModifier, error) {
	return s.weekdays.get(ctx)
}

func (s *settingsService) SpecialDates(ctx context.Context) ([]domain.SpecialDate, error) {
	return s.specials.get(ctx)
}

func (s *settingsService) TaxRateFor(ctx context.Context, category domain.ChargeCategory) (domain.TaxRate, error) {
	rates, err := s.taxRates.get(ctx)
	if err != nil {
		return domain.TaxRate{}, err
	}
	if rate, ok := rates[category]; ok {
		return rate, nil
	}
	return domain.TaxRate{
		Category:             category,
		ServiceChargePercent: domain.DefaultServiceChargePercent,
		VATPercent:           domain.DefaultVATPercent,
	}, nil
}

func (s *settingsService) LastAuditDate(ctx context.Context) (time.Time, error) {
	d, err := s.repo.GetLastAuditDate(ctx)
	if err != nil {
		return time.Time{}, apperrors.NewDependencyError("settings.last_audit_date", err)
	}
	return domain.DateOnly(d), nil
}

func (s *settingsService) Invalidate() {
	s.rateTables.cache.Purge()
	s.seasons.cache.Purge()
	s.weekdays.cache.Purge()
	s.specials.cache.Purge()
	s.taxRates.cache.Purge()
}
