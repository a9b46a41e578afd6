package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

func pct(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func date(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceNight_SeasonTieBreak(t *testing.T) {
	room := domain.Room{RoomID: "101", RoomTypeCode: "STD", BasePrice: pct(100)}
	wide := domain.Season{SeasonID: "a", StartDate: date(6, 1), EndDate: date(6, 30), ModifierPercent: pct(-30), Active: true}
	narrow := domain.Season{SeasonID: "b", StartDate: date(6, 1), EndDate: date(6, 30), ModifierPercent: pct(5), Active: true, RoomTypes: domain.RoomTypeRestriction{"STD"}}
	twin := domain.Season{SeasonID: "c", StartDate: date(6, 1), EndDate: date(6, 30), ModifierPercent: pct(-5), Active: true, RoomTypes: domain.RoomTypeRestriction{"STD"}}

	tests := []struct {
		name    string
		seasons []domain.Season
		wantID  string
		want    string
	}{
		{name: "restricted beats larger unrestricted", seasons: []domain.Season{wide, narrow}, wantID: "b", want: "105"},
		{name: "equal magnitude picks lowest id", seasons: []domain.Season{twin, narrow}, wantID: "b", want: "105"},
		{name: "inactive ignored", seasons: []domain.Season{{SeasonID: "z", StartDate: date(6, 1), EndDate: date(6, 30), ModifierPercent: pct(50)}}, want: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			night := priceNight(pricingRules{seasons: tt.seasons}, room, date(6, 3))
			assert.Equal(t, tt.want, night.Rate.String())
			if tt.wantID == "" {
				assert.Empty(t, night.Modifiers)
				return
			}
			require.Len(t, night.Modifiers, 1)
			assert.Equal(t, tt.wantID, night.Modifiers[0].RuleID)
		})
	}
}

func TestPriceNight_SeasonThenWeekday(t *testing.T) {
	room := domain.Room{RoomID: "101", RoomTypeCode: "STD", BasePrice: pct(100)}
	rules := pricingRules{
		seasons:  []domain.Season{{SeasonID: "s", StartDate: date(6, 1), EndDate: date(6, 30), ModifierPercent: pct(-10), Active: true}},
		weekdays: []domain.WeekdayModifier{{ModifierID: "tue", Weekday: time.Tuesday, ModifierPercent: pct(10), Enabled: true}},
	}
	night := priceNight(rules, room, date(6, 3))
	require.Len(t, night.Modifiers, 2)
	assert.Equal(t, domain.ModifierSeason, night.Modifiers[0].Kind)
	assert.Equal(t, domain.ModifierWeekday, night.Modifiers[1].Kind)
	assert.Equal(t, "99", night.Rate.String())
}

func roomCharge(night time.Time, amount int64, roomNumber string) domain.FolioTransaction {
	return domain.FolioTransaction{
		Type:        domain.TxnCharge,
		Category:    domain.CategoryRoom,
		Description: roomChargeDescription(roomNumber, night),
		Debit:       pct(amount),
		Credit:      decimal.Zero,
		StayDate:    &night,
	}
}

func quoteOf(rates ...int64) *domain.StayQuote {
	q := &domain.StayQuote{Total: decimal.Zero}
	for i, r := range rates {
		q.Nights = append(q.Nights, domain.NightlyRate{Date: date(6, 1+i), Rate: pct(r)})
		q.Total = q.Total.Add(pct(r))
	}
	return q
}

var roomTax = domain.TaxRate{Category: domain.CategoryRoom, ServiceChargePercent: pct(10), VATPercent: pct(18)}

func TestRewriteRoomCharges_ExtensionAppendsNight(t *testing.T) {
	folio := &domain.Folio{
		FolioID: "f1",
		Status:  domain.FolioOpen,
		Transactions: []domain.FolioTransaction{
			roomCharge(date(6, 1), 130, "101"),
			roomCharge(date(6, 2), 100, "101"),
			{Type: domain.TxnPayment, Category: domain.CategoryPayment, Debit: decimal.Zero, Credit: pct(50)},
		},
	}

	updated, rows, total := rewriteRoomCharges(folio, quoteOf(130, 100, 100), roomTax, "101", date(6, 1))
	assert.Equal(t, 3, rows)
	assert.Equal(t, "330", total.String())
	require.Len(t, updated.Transactions, 4)
	assert.Equal(t, "130", updated.Transactions[0].Debit.String())
	assert.Equal(t, "100", updated.Transactions[1].Debit.String())

	added := updated.Transactions[3]
	require.NotNil(t, added.StayDate)
	assert.True(t, added.StayDate.Equal(date(6, 3)))
	assert.Equal(t, "100", added.Debit.String())
	assert.Equal(t, "Room 101, night of 2025-06-03", added.Description)
	assert.NotNil(t, added.Tax)
	assert.Equal(t, "280", updated.Balance.String())
	assert.Len(t, folio.Transactions, 3, "input folio untouched")
}

func TestRewriteRoomCharges_ClosedNightsKeepTheirCharges(t *testing.T) {
	folio := &domain.Folio{
		FolioID: "f1",
		Status:  domain.FolioOpen,
		Transactions: []domain.FolioTransaction{
			roomCharge(date(6, 1), 130, "101"),
			roomCharge(date(6, 2), 100, "101"),
			roomCharge(date(6, 3), 100, "101"),
		},
	}

	updated, rows, total := rewriteRoomCharges(folio, quoteOf(190, 160, 160), roomTax, "201", date(6, 3))
	assert.Equal(t, 1, rows)
	assert.Equal(t, "390", total.String())
	require.Len(t, updated.Transactions, 3)
	assert.Equal(t, "130", updated.Transactions[0].Debit.String())
	assert.Equal(t, "Room 101, night of 2025-06-01", updated.Transactions[0].Description)
	assert.Equal(t, "100", updated.Transactions[1].Debit.String())
	assert.Equal(t, "160", updated.Transactions[2].Debit.String())
	assert.Equal(t, "Room 201, night of 2025-06-03", updated.Transactions[2].Description)
	assert.Equal(t, "390", updated.Balance.String())
}

func TestRewriteRoomCharges_ShorteningRemovesNight(t *testing.T) {
	folio := &domain.Folio{
		FolioID: "f1",
		Status:  domain.FolioOpen,
		Transactions: []domain.FolioTransaction{
			roomCharge(date(6, 1), 130, "101"),
			roomCharge(date(6, 2), 100, "101"),
			roomCharge(date(6, 3), 100, "101"),
		},
	}

	updated, rows, total := rewriteRoomCharges(folio, quoteOf(130, 100), roomTax, "101", date(6, 1))
	assert.Equal(t, 3, rows)
	assert.Equal(t, "230", total.String())
	require.Len(t, updated.Transactions, 2)
	assert.Equal(t, "230", updated.Balance.String())
}

func TestRewriteRoomCharges_UndatedRowsShareEvenly(t *testing.T) {
	folio := &domain.Folio{
		FolioID: "f1",
		Status:  domain.FolioOpen,
		Transactions: []domain.FolioTransaction{
			{Type: domain.TxnCharge, Category: domain.CategoryRoom, Debit: pct(100), Credit: decimal.Zero},
			{Type: domain.TxnCharge, Category: domain.CategoryRoom, Debit: pct(100), Credit: decimal.Zero},
		},
	}

	updated, rows, total := rewriteRoomCharges(folio, quoteOf(130, 100, 100), roomTax, "101", date(6, 1))
	assert.Equal(t, 2, rows)
	assert.Equal(t, "330", total.String())
	require.Len(t, updated.Transactions, 2)
	assert.Equal(t, "165", updated.Transactions[0].Debit.String())
	assert.Equal(t, "165", updated.Transactions[1].Debit.String())
}

func TestChangedNights(t *testing.T) {
	oldStay := domain.DateRange{CheckIn: date(6, 1), CheckOut: date(6, 3)}
	newStay := domain.DateRange{CheckIn: date(6, 1), CheckOut: date(6, 4)}
	got := changedNights(oldStay, newStay)
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(date(6, 3)))
}
