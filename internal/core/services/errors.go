package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

var (
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrOutstandingBalance = errors.New("folio has an outstanding balance")
	ErrFolioClosed        = errors.New("folio is closed")
	ErrFolioSuspended     = errors.New("folio is suspended")
	ErrFolioNotFound      = fmt.Errorf("folio: %w", apperrors.ErrNotFound)
)

// OutstandingBalanceError rejects check-out or folio closure while money is owed either way.
type OutstandingBalanceError struct {
	Balance decimal.Decimal
}

func (e *OutstandingBalanceError) Error() string {
	return fmt.Sprintf("%s of %s", ErrOutstandingBalance.Error(), e.Balance.StringFixed(2))
}

func (e *OutstandingBalanceError) Unwrap() []error {
	return []error{ErrOutstandingBalance, apperrors.ErrValidation}
}

// SplitPaymentError reports the split that stopped a batch. Splits before Index stay posted.
type SplitPaymentError struct {
	Index int
	Err   error
}

func (e *SplitPaymentError) Error() string {
	return fmt.Sprintf("split %d failed: %v", e.Index, e.Err)
}

func (e *SplitPaymentError) Unwrap() error { return e.Err }

func invalidTransition(operation string, status domain.ReservationStatus) error {
	return fmt.Errorf("%w: %w", ErrInvalidTransition,
		apperrors.NewValidationError("status", "cannot %s a reservation that is %s", operation, status))
}
