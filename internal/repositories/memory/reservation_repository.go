package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/pagination"
)

type reservationRepository struct {
	store *Store
}

var _ portsrepo.ReservationRepositoryFacade = (*reservationRepository)(nil)

func (r *reservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	res, ok := r.store.reservations[reservationID]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, apperrors.ErrNotFound)
	}
	return &res, nil
}

func matchesFilter(res domain.Reservation, f domain.ReservationFilter) bool {
	if f.RoomID != "" && res.RoomID != f.RoomID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if res.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && !domain.DateOnly(res.CheckOut).After(domain.DateOnly(f.From)) {
		return false
	}
	if !f.To.IsZero() && !domain.DateOnly(res.CheckIn).Before(domain.DateOnly(f.To)) {
		return false
	}
	return true
}

func (r *reservationRepository) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var cursor *pagination.Cursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "%v", err)
		}
		cursor = &c
	}

	r.store.mu.RLock()
	matched := make([]domain.Reservation, 0)
	for _, res := range r.store.reservations {
		if !matchesFilter(res, filter) {
			continue
		}
		if cursor != nil && !cursor.After(res.CheckIn, res.CreatedAt, res.ReservationID) {
			continue
		}
		matched = append(matched, res)
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CheckIn.Equal(b.CheckIn) {
			return a.CheckIn.Before(b.CheckIn)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ReservationID < b.ReservationID
	})

	if filter.Limit <= 0 || len(matched) <= filter.Limit {
		return matched, nil, nil
	}
	page := matched[:filter.Limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{CheckIn: last.CheckIn, CreatedAt: last.CreatedAt, ReservationID: last.ReservationID})
	return page, &token, nil
}

func (r *reservationRepository) SaveReservation(ctx context.Context, res *domain.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prev, existed := r.store.reservations[res.ReservationID]
	switch {
	case res.Version == 0 && existed:
		return fmt.Errorf("reservation %s: %w", res.ReservationID, apperrors.ErrDuplicate)
	case res.Version != 0 && !existed:
		return fmt.Errorf("reservation %s: %w", res.ReservationID, apperrors.ErrNotFound)
	case existed && prev.Version != res.Version:
		return fmt.Errorf("reservation %s at version %d: %w", res.ReservationID, res.Version, apperrors.ErrStaleVersion)
	}

	// Same guarantee as the exclusion constraint in Postgres.
	if res.Status.HoldsInventory() {
		others := make([]domain.Reservation, 0, len(r.store.reservations))
		for _, o := range r.store.reservations {
			others = append(others, o)
		}
		if c := domain.FindConflict(others, res.RoomID, res.Range(), res.ReservationID); c != nil {
			return &apperrors.ConflictError{RoomID: res.RoomID, ConflictingReservationID: c.ReservationID, Message: "overlapping stay"}
		}
	}

	saved := *res
	saved.Version++
	r.store.reservations[saved.ReservationID] = saved
	res.Version = saved.Version
	remember(ctx, func() {
		if existed {
			r.store.reservations[prev.ReservationID] = prev
		} else {
			delete(r.store.reservations, saved.ReservationID)
		}
	})
	return nil
}

func (r *reservationRepository) DeleteReservation(ctx context.Context, reservationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.reservations[reservationID]
	if !ok {
		return fmt.Errorf("reservation %s: %w", reservationID, apperrors.ErrNotFound)
	}
	delete(r.store.reservations, reservationID)
	remember(ctx, func() { r.store.reservations[reservationID] = prev })
	return nil
}
