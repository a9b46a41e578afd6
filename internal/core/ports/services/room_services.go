package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// RoomSvc reads room inventory.
type RoomSvc interface {
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}
