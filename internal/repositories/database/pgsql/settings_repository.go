package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// listRows runs query and maps each row with scan.
func listRows[M any, D any](ctx context.Context, q querier, name, query string, scan func(pgx.Rows, *M) error, toDomain func(M) D) ([]D, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to query "+name, err)
	}
	defer rows.Close()

	out := make([]D, 0)
	for rows.Next() {
		var m M
		if err := scan(rows, &m); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan "+name+" row", err)
		}
		out = append(out, toDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating "+name+" rows", err)
	}
	return out, nil
}

func (r *PgxSettingsRepository) ListRateTables(ctx context.Context) ([]domain.RateTable, error) {
	return listRows(ctx, r.db(ctx), "rate tables",
		`SELECT room_type_code, weekday_rate, weekend_rate FROM rate_tables ORDER BY room_type_code`,
		func(rows pgx.Rows, m *models.RateTable) error {
			return rows.Scan(&m.RoomTypeCode, &m.WeekdayRate, &m.WeekendRate)
		}, mapping.ToDomainRateTable)
}

func (r *PgxSettingsRepository) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	return listRows(ctx, r.db(ctx), "seasons",
		`SELECT season_id, name, start_date, end_date, modifier_percent, active, room_types FROM seasons ORDER BY season_id`,
		func(rows pgx.Rows, m *models.Season) error {
			return rows.Scan(&m.SeasonID, &m.Name, &m.StartDate, &m.EndDate, &m.ModifierPercent, &m.Active, &m.RoomTypes)
		}, mapping.ToDomainSeason)
}

func (r *PgxSettingsRepository) ListWeekdayModifiers(ctx context.Context) ([]domain.WeekdayModifier, error) {
	return listRows(ctx, r.db(ctx), "weekday modifiers",
		`SELECT modifier_id, name, weekday, modifier_percent, enabled, room_types FROM weekday_modifiers ORDER BY modifier_id`,
		func(rows pgx.Rows, m *models.WeekdayModifier) error {
			return rows.Scan(&m.ModifierID, &m.Name, &m.Weekday, &m.ModifierPercent, &m.Enabled, &m.RoomTypes)
		}, mapping.ToDomainWeekdayModifier)
}

func (r *PgxSettingsRepository) ListSpecialDates(ctx context.Context) ([]domain.SpecialDate, error) {
	return listRows(ctx, r.db(ctx), "special dates",
		`SELECT special_date_id, name, special_date, modifier_percent, active, room_types FROM special_dates ORDER BY special_date_id`,
		func(rows pgx.Rows, m *models.SpecialDate) error {
			return rows.Scan(&m.SpecialDateID, &m.Name, &m.Date, &m.ModifierPercent, &m.Active, &m.RoomTypes)
		}, mapping.ToDomainSpecialDate)
}

func (r *PgxSettingsRepository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	return listRows(ctx, r.db(ctx), "tax rates",
		`SELECT category, service_charge_percent, vat_percent FROM tax_rates ORDER BY category`,
		func(rows pgx.Rows, m *models.TaxRate) error {
			return rows.Scan(&m.Category, &m.ServiceChargePercent, &m.VATPercent)
		}, mapping.ToDomainTaxRate)
}

func (r *PgxSettingsRepository) GetLastAuditDate(ctx context.Context) (time.Time, error) {
	var d time.Time
	err := r.db(ctx).QueryRow(ctx, `SELECT last_audit_date FROM business_calendar WHERE id = 1`).Scan(&d)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, mapError("failed to read last audit date", err)
	}
	return domain.DateOnly(d), nil
}

func (r *PgxSettingsRepository) SetLastAuditDate(ctx context.Context, date time.Time) error {
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO business_calendar (id, last_audit_date) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_audit_date = EXCLUDED.last_audit_date`,
		domain.DateOnly(date))
	if err != nil {
		return mapError("failed to set last audit date", err)
	}
	return nil
}
