package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IsWeekend uses a fixed Friday/Saturday/Sunday definition.
func IsWeekend(d time.Time) bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// RateTable holds the weekday and weekend nightly rate for a room type.
type RateTable struct {
	RoomTypeCode string          `json:"roomTypeCode"`
	WeekdayRate  decimal.Decimal `json:"weekdayRate"`
	WeekendRate  decimal.Decimal `json:"weekendRate"`
}

// RateFor picks the weekday or weekend rate for d.
func (t RateTable) RateFor(d time.Time) decimal.Decimal {
	if IsWeekend(d) {
		return t.WeekendRate
	}
	return t.WeekdayRate
}

// RoomTypeRestriction limits a rule to some room types; empty means all.
type RoomTypeRestriction []string

// Allows reports whether the rule applies to roomType.
func (r RoomTypeRestriction) Allows(roomType string) bool {
	if len(r) == 0 {
		return true
	}
	for _, code := range r {
		if code == roomType {
			return true
		}
	}
	return false
}

// Season applies a percentage modifier over an inclusive date range.
type Season struct {
	SeasonID        string              `json:"seasonID"`
	Name            string              `json:"name"`
	StartDate       time.Time           `json:"startDate"`
	EndDate         time.Time           `json:"endDate"`
	ModifierPercent decimal.Decimal     `json:"modifierPercent"`
	Active          bool                `json:"active"`
	RoomTypes       RoomTypeRestriction `json:"roomTypes,omitempty"`
}

// Covers reports whether d falls within the season, both ends inclusive.
func (s Season) Covers(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(s.StartDate)) && !d.After(DateOnly(s.EndDate))
}

// WeekdayModifier applies a percentage modifier on one day of the week.
type WeekdayModifier struct {
	ModifierID      string              `json:"modifierID"`
	Name            string              `json:"name"`
	Weekday         time.Weekday        `json:"weekday"`
	ModifierPercent decimal.Decimal     `json:"modifierPercent"`
	Enabled         bool                `json:"enabled"`
	RoomTypes       RoomTypeRestriction `json:"roomTypes,omitempty"`
}

// SpecialDate applies an exclusive percentage modifier on one date.
type SpecialDate struct {
	SpecialDateID   string              `json:"specialDateID"`
	Name            string              `json:"name"`
	Date            time.Time           `json:"date"`
	ModifierPercent decimal.Decimal     `json:"modifierPercent"`
	Active          bool                `json:"active"`
	RoomTypes       RoomTypeRestriction `json:"roomTypes,omitempty"`
}

// ModifierKind identifies which rule produced an AppliedModifier.
type ModifierKind string

const (
	ModifierSpecialDate ModifierKind = "SPECIAL_DATE"
	ModifierSeason      ModifierKind = "SEASON"
	ModifierWeekday     ModifierKind = "WEEKDAY"
)

// AppliedModifier records one step of the pricing trail for display.
type AppliedModifier struct {
	Kind    ModifierKind    `json:"kind"`
	RuleID  string          `json:"ruleID"`
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
	Before  decimal.Decimal `json:"before"`
	After   decimal.Decimal `json:"after"`
}

// NightlyRate is the priced result for one night.
type NightlyRate struct {
	Date      time.Time         `json:"date"`
	BaseRate  decimal.Decimal   `json:"baseRate"`
	Rate      decimal.Decimal   `json:"rate"`
	Modifiers []AppliedModifier `json:"modifiers"`
}

// StayQuote is the priced result for a whole stay.
type StayQuote struct {
	RoomID   string          `json:"roomID"`
	CheckIn  time.Time       `json:"checkIn"`
	CheckOut time.Time       `json:"checkOut"`
	Nights   []NightlyRate   `json:"nights"`
	Total    decimal.Decimal `json:"total"`
}

// RateOn returns the priced rate for date d, if it belongs to the quote.
func (q StayQuote) RateOn(d time.Time) (decimal.Decimal, bool) {
	d = DateOnly(d)
	for _, n := range q.Nights {
		if DateOnly(n.Date).Equal(d) {
			return n.Rate, true
		}
	}
	return decimal.Zero, false
}
