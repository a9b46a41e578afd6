package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// RoomReader defines read operations for room data
type RoomReader interface {
	// FindRoomByID retrieves a room; apperrors.ErrNotFound if missing.
	FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error)

	// ListRooms retrieves all rooms ordered by room number.
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// RoomWriter defines write operations for room data
type RoomWriter interface {
	// UpdateRoomStatus sets the occupancy/housekeeping status of a room.
	UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, needsCleaning bool, userID string, now time.Time) error

	// SaveRoom inserts or updates a room (used for inventory seeding).
	SaveRoom(ctx context.Context, room domain.Room) error
}

// RoomRepositoryFacade combines all room-related repository interfaces
type RoomRepositoryFacade interface {
	RoomReader
	RoomWriter
}
