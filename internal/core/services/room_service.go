package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
)

type roomService struct {
	BaseService
	roomRepo portsrepo.RoomReader
}

// NewRoomService creates a RoomSvc.
func NewRoomService(roomRepo portsrepo.RoomReader, base BaseService) portssvc.RoomSvc {
	return &roomService{BaseService: base, roomRepo: roomRepo}
}

var _ portssvc.RoomSvc = (*roomService)(nil)

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	room, err := s.roomRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find room", err)
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rooms, err := s.roomRepo.ListRooms(ctx)
	if err != nil {
		return nil, apperrors.NewDependencyError("list rooms", err)
	}
	return rooms, nil
}
