package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hotel_frontdesk/internal/platform/seed"
)

// ApplySeed upserts rooms and replaces the settings sections present in data, in one
// transaction.
func ApplySeed(ctx context.Context, pool *pgxpool.Pool, data *seed.Data) error {
	base := BaseRepository{Pool: pool}
	rooms := newPgxRoomRepository(pool)
	settings := newPgxSettingsRepository(pool)

	return base.withinTx(ctx, func(ctx context.Context) error {
		for _, room := range data.Rooms {
			if err := rooms.SaveRoom(ctx, room); err != nil {
				return err
			}
		}

		batch := &pgx.Batch{}
		if len(data.RateTables) > 0 {
			batch.Queue(`DELETE FROM rate_tables`)
			for _, t := range data.RateTables {
				batch.Queue(`INSERT INTO rate_tables (room_type_code, weekday_rate, weekend_rate) VALUES ($1, $2, $3)`,
					t.RoomTypeCode, t.WeekdayRate, t.WeekendRate)
			}
		}
		if len(data.Seasons) > 0 {
			batch.Queue(`DELETE FROM seasons`)
			for _, s := range data.Seasons {
				batch.Queue(`INSERT INTO seasons (season_id, name, start_date, end_date, modifier_percent, active, room_types)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					s.SeasonID, s.Name, s.StartDate, s.EndDate, s.ModifierPercent, s.Active, []string(s.RoomTypes))
			}
		}
		if len(data.WeekdayModifiers) > 0 {
			batch.Queue(`DELETE FROM weekday_modifiers`)
			for _, w := range data.WeekdayModifiers {
				batch.Queue(`INSERT INTO weekday_modifiers (modifier_id, name, weekday, modifier_percent, enabled, room_types)
					VALUES ($1, $2, $3, $4, $5, $6)`,
					w.ModifierID, w.Name, int(w.Weekday), w.ModifierPercent, w.Enabled, []string(w.RoomTypes))
			}
		}
		if len(data.SpecialDates) > 0 {
			batch.Queue(`DELETE FROM special_dates`)
			for _, s := range data.SpecialDates {
				batch.Queue(`INSERT INTO special_dates (special_date_id, name, special_date, modifier_percent, active, room_types)
					VALUES ($1, $2, $3, $4, $5, $6)`,
					s.SpecialDateID, s.Name, s.Date, s.ModifierPercent, s.Active, []string(s.RoomTypes))
			}
		}
		if len(data.TaxRates) > 0 {
			batch.Queue(`DELETE FROM tax_rates`)
			for _, t := range data.TaxRates {
				batch.Queue(`INSERT INTO tax_rates (category, service_charge_percent, vat_percent) VALUES ($1, $2, $3)`,
					string(t.Category), t.ServiceChargePercent, t.VATPercent)
			}
		}
		if batch.Len() > 0 {
			if err := base.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
				return mapError("failed to seed settings", err)
			}
		}

		if !data.LastAuditDate.IsZero() {
			return settings.SetLastAuditDate(ctx, data.LastAuditDate)
		}
		return nil
	})
}
