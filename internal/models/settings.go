package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is the rate_tables table row.
type RateTable struct {
	RoomTypeCode string          `db:"room_type_code"`
	WeekdayRate  decimal.Decimal `db:"weekday_rate"`
	WeekendRate  decimal.Decimal `db:"weekend_rate"`
}

// Season is the seasons table row.
type Season struct {
	SeasonID        string          `db:"season_id"`
	Name            string          `db:"name"`
	StartDate       time.Time       `db:"start_date"`
	EndDate         time.Time       `db:"end_date"`
	ModifierPercent decimal.Decimal `db:"modifier_percent"`
	Active          bool            `db:"active"`
	RoomTypes       []string        `db:"room_types"`
}

// WeekdayModifier is the weekday_modifiers table row. Weekday is 0 (Sunday) to 6.
type WeekdayModifier struct {
	ModifierID      string          `db:"modifier_id"`
	Name            string          `db:"name"`
	Weekday         int             `db:"weekday"`
	ModifierPercent decimal.Decimal `db:"modifier_percent"`
	Enabled         bool            `db:"enabled"`
	RoomTypes       []string        `db:"room_types"`
}

// SpecialDate is the special_dates table row.
type SpecialDate struct {
	SpecialDateID   string          `db:"special_date_id"`
	Name            string          `db:"name"`
	Date            time.Time       `db:"special_date"`
	ModifierPercent decimal.Decimal `db:"modifier_percent"`
	Active          bool            `db:"active"`
	RoomTypes       []string        `db:"room_types"`
}

// TaxRate is the tax_rates table row.
type TaxRate struct {
	Category             string          `db:"category"`
	ServiceChargePercent decimal.Decimal `db:"service_charge_percent"`
	VATPercent           decimal.Decimal `db:"vat_percent"`
}

// HousekeepingTask is the housekeeping_tasks table row.
type HousekeepingTask struct {
	TaskID        string    `db:"task_id"`
	RoomID        string    `db:"room_id"`
	ReservationID string    `db:"reservation_id"`
	Type          string    `db:"task_type"`
	Status        string    `db:"status"`
	Priority      string    `db:"priority"`
	RequestedAt   time.Time `db:"requested_at"`
	RequestedBy   string    `db:"requested_by"`
}
