package memory

import (
	"context"

	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/seed"
)

// NewRepositoryProvider creates the in-memory implementations of all repository interfaces
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &txManager{store: store},
		RoomRepo:         &roomRepository{store: store},
		ReservationRepo:  &reservationRepository{store: store},
		FolioRepo:        &folioRepository{store: store},
		SettingsRepo:     &settingsRepository{store: store},
		HousekeepingRepo: &housekeepingRepository{store: store},
	}
}

// ApplySeed loads rooms and settings from parsed seed data. Settings sections present in
// data replace the stored ones.
func (s *Store) ApplySeed(ctx context.Context, data *seed.Data) error {
	rooms := &roomRepository{store: s}
	for _, room := range data.Rooms {
		if err := rooms.SaveRoom(ctx, room); err != nil {
			return err
		}
	}
	s.ReplaceSettings(data.RateTables, data.Seasons, data.WeekdayModifiers, data.SpecialDates, data.TaxRates)
	if !data.LastAuditDate.IsZero() {
		return (&settingsRepository{store: s}).SetLastAuditDate(ctx, data.LastAuditDate)
	}
	return nil
}
