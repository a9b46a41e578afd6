package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/accounting"
)

// pricingRules is one consistent read of the pricing settings.
type pricingRules struct {
	tables   map[string]domain.RateTable
	seasons  []domain.Season
	weekdays []domain.WeekdayModifier
	specials []domain.SpecialDate
}

type pricingService struct {
	BaseService
	settings portssvc.SettingsProviderSvc
	roomRepo portsrepo.RoomReader
}

// NewPricingService creates a PricingSvc.
func NewPricingService(settings portssvc.SettingsProviderSvc, roomRepo portsrepo.RoomReader, base BaseService) portssvc.PricingSvc {
	return &pricingService{BaseService: base, settings: settings, roomRepo: roomRepo}
}

var _ portssvc.PricingSvc = (*pricingService)(nil)

func (s *pricingService) loadRules(ctx context.Context) (pricingRules, error) {
	var rules pricingRules
	var err error
	if rules.tables, err = s.settings.RateTables(ctx); err != nil {
		return rules, err
	}
	if rules.seasons, err = s.settings.Seasons(ctx); err != nil {
		return rules, err
	}
	if rules.weekdays, err = s.settings.WeekdayModifiers(ctx); err != nil {
		return rules, err
	}
	if rules.specials, err = s.settings.SpecialDates(ctx); err != nil {
		return rules, err
	}
	return rules, nil
}

func (s *pricingService) NightlyRate(ctx context.Context, room domain.Room, date time.Time) (domain.NightlyRate, error) {
	rules, err := s.loadRules(ctx)
	if err != nil {
		return domain.NightlyRate{}, err
	}
	return priceNight(rules, room, date), nil
}

func (s *pricingService) QuoteStay(ctx context.Context, room domain.Room, stay domain.DateRange) (*domain.StayQuote, error) {
	if err := stay.Validate(); err != nil {
		return nil, apperrors.NewValidationError("checkOut", "%s", err.Error())
	}
	rules, err := s.loadRules(ctx)
	if err != nil {
		return nil, err
	}
	quote := &domain.StayQuote{
		RoomID:   room.RoomID,
		CheckIn:  domain.DateOnly(stay.CheckIn),
		CheckOut: domain.DateOnly(stay.CheckOut),
		Total:    decimal.Zero,
	}
	for _, d := range stay.Dates() {
		night := priceNight(rules, room, d)
		quote.Nights = append(quote.Nights, night)
		quote.Total = quote.Total.Add(night.Rate)
	}
	return quote, nil
}

func (s *pricingService) Quote(ctx context.Context, req dto.QuoteRequest) (*domain.StayQuote, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stay, err := domain.NewDateRange(req.CheckIn.Time, req.CheckOut.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("checkOut", "%s", err.Error())
	}
	room, err := s.roomRepo.FindRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find room", err)
	}
	return s.QuoteStay(ctx, *room, stay)
}

// priceNight applies, in order: base rate, then either the special date (exclusive) or
// the season followed by the weekday modifier. Only the final rate is rounded.
func priceNight(rules pricingRules, room domain.Room, date time.Time) domain.NightlyRate {
	date = domain.DateOnly(date)
	base := room.BasePrice
	if table, ok := rules.tables[room.RoomTypeCode]; ok {
		base = table.RateFor(date)
	}

	night := domain.NightlyRate{Date: date, BaseRate: base}
	rate := base
	apply := func(kind domain.ModifierKind, id, name string, pct decimal.Decimal) {
		after := accounting.ApplyPercent(rate, pct)
		night.Modifiers = append(night.Modifiers, domain.AppliedModifier{
			Kind:    kind,
			RuleID:  id,
			Name:    name,
			Percent: pct,
			Before:  rate.Round(2),
			After:   after.Round(2),
		})
		rate = after
	}

	if sd, ok := pickSpecialDate(rules.specials, room.RoomTypeCode, date); ok {
		apply(domain.ModifierSpecialDate, sd.SpecialDateID, sd.Name, sd.ModifierPercent)
		night.Rate = rate.Round(2)
		return night
	}
	if season, ok := pickSeason(rules.seasons, room.RoomTypeCode, date); ok {
		apply(domain.ModifierSeason, season.SeasonID, season.Name, season.ModifierPercent)
	}
	if wm, ok := pickWeekdayModifier(rules.weekdays, room.RoomTypeCode, date.Weekday()); ok {
		apply(domain.ModifierWeekday, wm.ModifierID, wm.Name, wm.ModifierPercent)
	}
	night.Rate = rate.Round(2)
	return night
}

// ruleRank orders competing rules of one kind: a room-type restricted rule beats an
// unrestricted one, then the larger absolute modifier, then the lowest id.
type ruleRank struct {
	restricted bool
	magnitude  decimal.Decimal
	id         string
}

func (a ruleRank) beats(b ruleRank) bool {
	if a.restricted != b.restricted {
		return a.restricted
	}
	if c := a.magnitude.Cmp(b.magnitude); c != 0 {
		return c > 0
	}
	return a.id < b.id
}

func rankOf(restriction domain.RoomTypeRestriction, pct decimal.Decimal, id string) ruleRank {
	return ruleRank{restricted: len(restriction) > 0, magnitude: pct.Abs(), id: id}
}

func pickSpecialDate(specials []domain.SpecialDate, roomType string, date time.Time) (domain.SpecialDate, bool) {
	var best domain.SpecialDate
	var bestRank ruleRank
	found := false
	for _, sd := range specials {
		if !sd.Active || !domain.DateOnly(sd.Date).Equal(date) || !sd.RoomTypes.Allows(roomType) {
			continue
		}
		r := rankOf(sd.RoomTypes, sd.ModifierPercent, sd.SpecialDateID)
		if !found || r.beats(bestRank) {
			best, bestRank, found = sd, r, true
		}
	}
	return best, found
}

func pickSeason(seasons []domain.Season, roomType string, date time.Time) (domain.Season, bool) {
	var best domain.Season
	var bestRank ruleRank
	found := false
	for _, season := range seasons {
		if !season.Active || !season.Covers(date) || !season.RoomTypes.Allows(roomType) {
			continue
		}
		r := rankOf(season.RoomTypes, season.ModifierPercent, season.SeasonID)
		if !found || r.beats(bestRank) {
			best, bestRank, found = season, r, true
		}
	}
	return best, found
}

func pickWeekdayModifier(mods []domain.WeekdayModifier, roomType string, weekday time.Weekday) (domain.WeekdayModifier, bool) {
	var best domain.WeekdayModifier
	var bestRank ruleRank
	found := false
	for _, wm := range mods {
		if !wm.Enabled || wm.Weekday != weekday || !wm.RoomTypes.Allows(roomType) {
			continue
		}
		r := rankOf(wm.RoomTypes, wm.ModifierPercent, wm.ModifierID)
		if !found || r.beats(bestRank) {
			best, bestRank, found = wm, r, true
		}
	}
	return best, found
}
