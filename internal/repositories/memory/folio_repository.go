package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
)

type folioRepository struct {
	store *Store
}

var _ portsrepo.FolioRepositoryFacade = (*folioRepository)(nil)

func (r *folioRepository) FindFolioByReservationID(ctx context.Context, reservationID string) (*domain.Folio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	folio, ok := r.store.folios[reservationID]
	if !ok {
		return nil, fmt.Errorf("folio for reservation %s: %w", reservationID, apperrors.ErrNotFound)
	}
	return folio.Clone(), nil
}

// checkVersion returns the stored folio; callers hold the write lock.
func (r *folioRepository) checkVersion(folio *domain.Folio) (*domain.Folio, error) {
	stored, ok := r.store.folios[folio.ReservationID]
	if !ok {
		return nil, fmt.Errorf("folio %s: %w", folio.FolioID, apperrors.ErrNotFound)
	}
	if stored.Version != folio.Version {
		return nil, fmt.Errorf("folio %s at version %d: %w", folio.FolioID, folio.Version, apperrors.ErrStaleVersion)
	}
	return stored, nil
}

// put stores next in place of prev (nil for an insert) and bumps the caller's version.
func (r *folioRepository) put(ctx context.Context, folio *domain.Folio, prev, next *domain.Folio) {
	next.Version = folio.Version + 1
	r.store.folios[folio.ReservationID] = next
	folio.Version = next.Version
	remember(ctx, func() {
		if prev == nil {
			delete(r.store.folios, folio.ReservationID)
			return
		}
		r.store.folios[folio.ReservationID] = prev
	})
}

func (r *folioRepository) SaveFolio(ctx context.Context, folio *domain.Folio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if folio.Version == 0 {
		if _, exists := r.store.folios[folio.ReservationID]; exists {
			return fmt.Errorf("folio for reservation %s: %w", folio.ReservationID, apperrors.ErrDuplicate)
		}
		r.put(ctx, folio, nil, folio.Clone())
		return nil
	}

	stored, err := r.checkVersion(folio)
	if err != nil {
		return err
	}
	next := folio.Clone()
	next.Transactions = stored.Clone().Transactions
	r.put(ctx, folio, stored, next)
	return nil
}

func (r *folioRepository) AppendFolioTransactions(ctx context.Context, folio *domain.Folio, txns []domain.FolioTransaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, err := r.checkVersion(folio)
	if err != nil {
		return err
	}
	next := folio.Clone()
	tail := (&domain.Folio{Transactions: txns}).Clone().Transactions
	next.Transactions = append(stored.Clone().Transactions, tail...)
	r.put(ctx, folio, stored, next)
	return nil
}

func (r *folioRepository) ReplaceFolioTransactions(ctx context.Context, folio *domain.Folio) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, err := r.checkVersion(folio)
	if err != nil {
		return err
	}
	r.put(ctx, folio, stored, folio.Clone())
	return nil
}
