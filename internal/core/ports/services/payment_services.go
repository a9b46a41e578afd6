package services

import (
	"context"

	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// PaymentSvc posts payments, deposits and refunds to folios.
type PaymentSvc interface {
	// PostPayment settles some or all of the outstanding balance.
	PostPayment(ctx context.Context, reservationID string, req dto.PaymentRequest, userID string) (*dto.PaymentResult, error)

	// PostDeposit records an advance payment; the folio is opened if needed.
	PostDeposit(ctx context.Context, reservationID string, req dto.PaymentRequest, userID string) (*dto.PaymentResult, error)

	// PostRefund returns money up to the total credits already posted.
	PostRefund(ctx context.Context, reservationID string, req dto.RefundRequest, userID string) (*dto.PaymentResult, error)

	// PostSplitPayment validates every split before posting any, then posts them in order.
	PostSplitPayment(ctx context.Context, reservationID string, req dto.SplitPaymentRequest, userID string) (*dto.SplitPaymentResult, error)
}
