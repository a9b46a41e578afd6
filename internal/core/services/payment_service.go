package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

type paymentService struct {
	BaseService
	reservationRepo portsrepo.ReservationReader
	calendar        portssvc.CalendarSvc
	ledger          *folioLedger
	locks           *entityLocker
}

var _ portssvc.PaymentSvc = (*paymentService)(nil)

// validatePaymentFields checks one payment or refund line. field prefixes error fields.
func validatePaymentFields(field string, method domain.PaymentMethod, amount decimal.Decimal, reference string) error {
	if !method.IsKnown() {
		return apperrors.NewValidationError(field+".method", "unknown payment method %q", method)
	}
	if !amount.IsPositive() {
		return apperrors.NewValidationError(field+".amount", "amount must be greater than zero")
	}
	if method.RequiresReference() && strings.TrimSpace(reference) == "" {
		return apperrors.NewValidationError(field+".reference", "a reference is required for %s payments", method)
	}
	return nil
}

func paymentEntry(category domain.ChargeCategory, method domain.PaymentMethod, amount decimal.Decimal, reference, description string, businessDate time.Time) domain.FolioTransaction {
	return domain.FolioTransaction{
		BusinessDate:  domain.DateOnly(businessDate),
		Type:          domain.TxnPayment,
		Category:      category,
		Description:   description,
		Debit:         decimal.Zero,
		Credit:        amount.Round(2),
		PaymentMethod: method,
		Reference:     strings.TrimSpace(reference),
	}
}

func refundEntry(method domain.PaymentMethod, amount decimal.Decimal, reference, description string, businessDate time.Time) domain.FolioTransaction {
	return domain.FolioTransaction{
		BusinessDate:  domain.DateOnly(businessDate),
		Type:          domain.TxnRefund,
		Category:      domain.CategoryRefund,
		Description:   description,
		Debit:         amount.Round(2),
		Credit:        decimal.Zero,
		PaymentMethod: method,
		Reference:     strings.TrimSpace(reference),
	}
}

func describePayment(prefix string, method domain.PaymentMethod, notes string) string {
	desc := fmt.Sprintf("%s (%s)", prefix, strings.ToLower(strings.ReplaceAll(string(method), "_", " ")))
	if notes = strings.TrimSpace(notes); notes != "" {
		desc += ": " + notes
	}
	return desc
}

func paymentResult(folio *domain.Folio, txn domain.FolioTransaction) *dto.PaymentResult {
	remaining := outstanding(folio)
	return &dto.PaymentResult{
		Transaction: txn,
		Balance:     folio.Balance,
		Remaining:   remaining,
		Partial:     remaining.GreaterThan(domain.BalanceEpsilon),
	}
}

// PostPayment settles up to the outstanding balance.
func (s *paymentService) PostPayment(ctx context.Context, reservationID string, req dto.PaymentRequest, userID string) (*dto.PaymentResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := validatePaymentFields("payment", req.Method, req.Amount, req.Reference); err != nil {
		return nil, err
	}
	amount := req.Amount.Round(2)

	unlock, err := s.locks.Lock(ctx, folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if owed := outstanding(folio); amount.GreaterThan(owed) {
		return nil, apperrors.NewValidationError("payment.amount", "payment %s exceeds outstanding balance %s",
			amount.StringFixed(2), owed.StringFixed(2))
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	entry := paymentEntry(domain.CategoryPayment, req.Method, amount, req.Reference, describePayment("Payment", req.Method, req.Notes), cal.BusinessDay())
	updated, posted, err := s.ledger.post(ctx, folio, userID, entry)
	if err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActionFolioPaymentPosted, entityFolio, updated.FolioID, map[string]any{
		"amount": amount.StringFixed(2),
		"method": string(req.Method),
	})
	return paymentResult(updated, posted[0]), nil
}

// PostDeposit records an advance payment before arrival; no outstanding check applies.
func (s *paymentService) PostDeposit(ctx context.Context, reservationID string, req dto.PaymentRequest, userID string) (*dto.PaymentResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := validatePaymentFields("deposit", req.Method, req.Amount, req.Reference); err != nil {
		return nil, err
	}
	amount := req.Amount.Round(2)

	unlockRes, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRes()

	res, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find reservation", err)
	}
	if !res.Status.IsAwaitingArrival() {
		return nil, invalidTransition("take a deposit for", res.Status)
	}

	unlock, err := s.locks.Lock(ctx, folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	var events pendingEvents
	folio, err := s.ledger.ensure(ctx, res, userID, &events)
	if err != nil {
		return nil, err
	}
	entry := paymentEntry(domain.CategoryDeposit, req.Method, amount, req.Reference, describePayment("Deposit", req.Method, req.Notes), cal.BusinessDay())
	updated, posted, err := s.ledger.post(ctx, folio, userID, entry)
	if err != nil {
		return nil, err
	}
	events.add(userID, domain.ActionFolioPaymentPosted, entityFolio, updated.FolioID, map[string]any{
		"amount":  amount.StringFixed(2),
		"method":  string(req.Method),
		"deposit": true,
	})
	s.publish(ctx, events)
	return paymentResult(updated, posted[0]), nil
}

// PostRefund returns money to the guest, bounded by what the guest has paid.
func (s *paymentService) PostRefund(ctx context.Context, reservationID string, req dto.RefundRequest, userID string) (*dto.PaymentResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := validatePaymentFields("refund", req.Method, req.Amount, req.Reference); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("refund.reason", "a reason is required")
	}
	amount := req.Amount.Round(2)

	unlock, err := s.locks.Lock(ctx, folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if limit := refundable(folio); amount.GreaterThan(limit) {
		return nil, apperrors.NewValidationError("refund.amount", "refund %s exceeds refundable amount %s",
			amount.StringFixed(2), limit.StringFixed(2))
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	entry := refundEntry(req.Method, amount, req.Reference, "Refund: "+strings.TrimSpace(req.Reason), cal.BusinessDay())
	updated, posted, err := s.ledger.post(ctx, folio, userID, entry)
	if err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActionFolioRefundPosted, entityFolio, updated.FolioID, map[string]any{
		"amount": amount.StringFixed(2),
		"method": string(req.Method),
		"reason": req.Reason,
	})
	return paymentResult(updated, posted[0]), nil
}

// PostSplitPayment validates every split before posting any. A total that differs from
// the outstanding balance needs ConfirmMismatch. Splits post one at a time; a failure
// stops the batch and earlier splits stay posted.
func (s *paymentService) PostSplitPayment(ctx context.Context, reservationID string, req dto.SplitPaymentRequest, userID string) (*dto.SplitPaymentResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if len(req.Splits) == 0 {
		return nil, apperrors.NewValidationError("splits", "at least one split is required")
	}
	total := decimal.Zero
	for i, split := range req.Splits {
		if err := validatePaymentFields(fmt.Sprintf("splits[%d]", i), split.Method, split.Amount, split.Reference); err != nil {
			return nil, err
		}
		total = total.Add(split.Amount.Round(2))
	}

	unlock, err := s.locks.Lock(ctx, folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.ensurePostable(ctx, folio); err != nil {
		return nil, err
	}
	mismatch := total.Sub(outstanding(folio))
	if !mismatch.IsZero() && !req.ConfirmMismatch {
		return nil, apperrors.NewValidationError("splits",
			"splits total %s but the outstanding balance is %s; confirm the mismatch to proceed",
			total.StringFixed(2), outstanding(folio).StringFixed(2))
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.SplitPaymentResult{Balance: folio.Balance, Mismatch: mismatch}
	for i, split := range req.Splits {
		entry := paymentEntry(domain.CategoryPayment, split.Method, split.Amount, split.Reference,
			describePayment(fmt.Sprintf("Split payment %d/%d", i+1, len(req.Splits)), split.Method, split.Notes), cal.BusinessDay())
		updated, posted, err := s.ledger.post(ctx, folio, userID, entry)
		if err != nil {
			idx := i
			result.FailedIndex = &idx
			result.FailedError = err.Error()
			s.LogError(ctx, err, "Split payment stopped", slog.String("reservation_id", reservationID), slog.Int("index", i))
			return result, &SplitPaymentError{Index: i, Err: err}
		}
		folio = updated
		result.Posted = append(result.Posted, posted...)
		result.Balance = updated.Balance
		s.record(ctx, userID, domain.ActionFolioPaymentPosted, entityFolio, updated.FolioID, map[string]any{
			"amount":      split.Amount.StringFixed(2),
			"method":      string(split.Method),
			"split_index": i,
		})
	}
	return result, nil
}
