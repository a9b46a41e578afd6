package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// FolioReaderSvc defines read operations for folios
type FolioReaderSvc interface {
	// GetFolio returns the statement for a reservation's folio after verifying its ledger.
	GetFolio(ctx context.Context, reservationID string) (*dto.FolioResponse, error)

	// VerifyFolio replays the ledger and reports the first balance mismatch.
	VerifyFolio(ctx context.Context, reservationID string) error
}

// FolioWriterSvc defines posting and status operations on folios
type FolioWriterSvc interface {
	// OpenFolio returns the reservation's folio, creating it if absent.
	OpenFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error)

	// PostCharge posts a tax-inclusive charge.
	PostCharge(ctx context.Context, reservationID string, req dto.PostChargeRequest, userID string) (*domain.FolioTransaction, error)

	// PostAdjustment posts a correction on either side of the ledger.
	PostAdjustment(ctx context.Context, reservationID string, req dto.AdjustmentRequest, userID string) (*domain.FolioTransaction, error)

	// CloseFolio closes a settled folio.
	CloseFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error)

	SuspendFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error)
	ResumeFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error)
}

// FolioSvcFacade combines all folio-related service interfaces
type FolioSvcFacade interface {
	FolioReaderSvc
	FolioWriterSvc
}
