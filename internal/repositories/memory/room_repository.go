package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
)

type roomRepository struct {
	store *Store
}

var _ portsrepo.RoomRepositoryFacade = (*roomRepository)(nil)

func (r *roomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	room, ok := r.store.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", roomID, apperrors.ErrNotFound)
	}
	return &room, nil
}

func (r *roomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rooms := make([]domain.Room, 0, len(r.store.rooms))
	for _, room := range r.store.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms, nil
}

func (r *roomRepository) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, needsCleaning bool, userID string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %s: %w", roomID, apperrors.ErrNotFound)
	}
	room := prev
	room.Status = status
	room.NeedsCleaning = needsCleaning
	room.Touch(userID, now)
	room.Version++
	r.store.rooms[roomID] = room
	remember(ctx, func() { r.store.rooms[roomID] = prev })
	return nil
}

func (r *roomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room.RoomID == "" {
		return apperrors.NewValidationError("roomID", "is required")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, existed := r.store.rooms[room.RoomID]
	if existed {
		room.Version = prev.Version + 1
	} else if room.Version == 0 {
		room.Version = 1
	}
	r.store.rooms[room.RoomID] = room
	remember(ctx, func() {
		if existed {
			r.store.rooms[room.RoomID] = prev
		} else {
			delete(r.store.rooms, room.RoomID)
		}
	})
	return nil
}
