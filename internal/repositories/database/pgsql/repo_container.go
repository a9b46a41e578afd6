package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &TxManager{BaseRepository: BaseRepository{Pool: dbPool}},
		RoomRepo:         newPgxRoomRepository(dbPool),
		ReservationRepo:  newPgxReservationRepository(dbPool),
		FolioRepo:        newPgxFolioRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
		HousekeepingRepo: newPgxHousekeepingRepository(dbPool),
	}
}
