package repositories

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// FolioReader defines read operations for folio data
type FolioReader interface {
	// FindFolioByReservationID retrieves the folio and its ordered transactions.
	FindFolioByReservationID(ctx context.Context, reservationID string) (*domain.Folio, error)
}

// FolioWriter defines write operations for folio data.
// Every write checks folio.Version against the stored row (apperrors.ErrStaleVersion on
// mismatch) and writes the incremented version back into folio.
type FolioWriter interface {
	// SaveFolio inserts a new folio (Version 0) with its transactions, or updates the
	// header of an existing one (status, balance, closure) without touching transactions.
	SaveFolio(ctx context.Context, folio *domain.Folio) error

	// AppendFolioTransactions stores txns, which must already be the tail of
	// folio.Transactions, together with the new header.
	AppendFolioTransactions(ctx context.Context, folio *domain.Folio, txns []domain.FolioTransaction) error

	// ReplaceFolioTransactions rewrites the whole transaction log from folio.Transactions.
	ReplaceFolioTransactions(ctx context.Context, folio *domain.Folio) error
}

// FolioRepositoryFacade combines all folio-related repository interfaces
type FolioRepositoryFacade interface {
	FolioReader
	FolioWriter
}
