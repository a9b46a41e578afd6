package dto

import (
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostChargeRequest posts a tax-inclusive charge to a folio.
type PostChargeRequest struct {
	Category    domain.ChargeCategory `json:"category" binding:"required"`
	Description string                `json:"description" binding:"required"`
	UnitAmount  decimal.Decimal       `json:"unitAmount"`
	Quantity    int                   `json:"quantity" binding:"omitempty,min=1"`
	// ApplyTax decomposes the gross using the category's service-charge and VAT rates.
	ApplyTax bool `json:"applyTax"`
	// Explicit rates override the category rates when ApplyTax is set.
	ServiceChargePercent *decimal.Decimal `json:"serviceChargePercent"`
	VATPercent           *decimal.Decimal `json:"vatPercent"`
}

// PaymentRequest is one payment (or deposit) posting.
type PaymentRequest struct {
	Method    domain.PaymentMethod `json:"method" binding:"required,payment_method"`
	Amount    decimal.Decimal      `json:"amount"`
	Reference string               `json:"reference"`
	Notes     string               `json:"notes"`
}

// SplitPaymentRequest settles a balance through several methods in one action.
type SplitPaymentRequest struct {
	Splits []PaymentRequest `json:"splits" binding:"required,min=1,dive"`
	// ConfirmMismatch acknowledges that the splits do not add up to the outstanding balance.
	ConfirmMismatch bool `json:"confirmMismatch"`
}

// RefundRequest returns money to the guest.
type RefundRequest struct {
	Method    domain.PaymentMethod `json:"method" binding:"required,payment_method"`
	Amount    decimal.Decimal      `json:"amount"`
	Reference string               `json:"reference"`
	Reason    string               `json:"reason" binding:"required"`
}

// AdjustmentRequest corrects a folio. A positive amount debits, a negative amount credits.
type AdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required"`
}

// PaymentResult reports a posted payment, deposit or refund.
type PaymentResult struct {
	Transaction domain.FolioTransaction `json:"transaction"`
	Balance     decimal.Decimal         `json:"balance"`
	// Remaining is the outstanding amount still owed after the posting (zero when settled).
	Remaining decimal.Decimal `json:"remaining"`
	Partial   bool            `json:"partial"`
}

// SplitPaymentResult reports a split payment batch. Splits posted before a failure stay posted.
type SplitPaymentResult struct {
	Posted      []domain.FolioTransaction `json:"posted"`
	FailedIndex *int                      `json:"failedIndex,omitempty"`
	FailedError string                    `json:"failedError,omitempty"`
	Balance     decimal.Decimal           `json:"balance"`
	Mismatch    decimal.Decimal           `json:"mismatch"`
}

// FolioResponse is the statement view of a folio.
type FolioResponse struct {
	Folio        *domain.Folio   `json:"folio"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}
