package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/accounting"
)

type folioService struct {
	BaseService
	reservationRepo portsrepo.ReservationReader
	calendar        portssvc.CalendarSvc
	ledger          *folioLedger
	locks           *entityLocker
}

var _ portssvc.FolioSvcFacade = (*folioService)(nil)

// chargeCategories are the categories a clerk may post as a charge.
var chargeCategories = map[domain.ChargeCategory]bool{
	domain.CategoryRoom:          true,
	domain.CategoryFoodBeverage:  true,
	domain.CategoryMinibar:       true,
	domain.CategoryLaundry:       true,
	domain.CategorySpa:           true,
	domain.CategoryTelephone:     true,
	domain.CategoryNoShow:        true,
	domain.CategoryCancellation:  true,
	domain.CategoryMiscellaneous: true,
}

func (s *folioService) GetFolio(ctx context.Context, reservationID string) (*dto.FolioResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.verify(ctx, folio); err != nil {
		return nil, err
	}
	debits, credits := accounting.Totals(folio.Transactions)
	return &dto.FolioResponse{Folio: folio, TotalDebits: debits, TotalCredits: credits}, nil
}

func (s *folioService) VerifyFolio(ctx context.Context, reservationID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return err
	}
	return s.ledger.verify(ctx, folio)
}

func (s *folioService) OpenFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlock, err := s.locks.Lock(ctx, reservationKey(reservationID), folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find reservation", err)
	}
	if res.Status == domain.StatusCancelled || res.Status == domain.StatusNoShow {
		return nil, invalidTransition("open a folio for", res.Status)
	}

	var events pendingEvents
	folio, err := s.ledger.ensure(ctx, res, userID, &events)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return folio, nil
}

// PostCharge posts a gross charge. When tax applies, the gross is decomposed into net,
// service charge and VAT; the posted debit is always the gross.
func (s *folioService) PostCharge(ctx context.Context, reservationID string, req dto.PostChargeRequest, userID string) (*domain.FolioTransaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if !chargeCategories[req.Category] {
		return nil, apperrors.NewValidationError("category", "%q is not a chargeable category", req.Category)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
	}
	if !req.UnitAmount.IsPositive() {
		return nil, apperrors.NewValidationError("unitAmount", "amount must be greater than zero")
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	for field, pct := range map[string]*decimal.Decimal{"serviceChargePercent": req.ServiceChargePercent, "vatPercent": req.VATPercent} {
		if pct != nil && pct.IsNegative() {
			return nil, apperrors.NewValidationError(field, "must not be negative")
		}
	}

	unlockRes, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRes()

	res, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find reservation", err)
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

	gross := req.UnitAmount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	var tax *domain.TaxBreakdown
	if req.ApplyTax {
		rate, err := s.ledger.settings.TaxRateFor(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		if req.ServiceChargePercent != nil {
			rate.ServiceChargePercent = *req.ServiceChargePercent
		}
		if req.VATPercent != nil {
			rate.VATPercent = *req.VATPercent
		}
		tb := accounting.TaxInclusiveBreakdown(req.UnitAmount, quantity, rate.ServiceChargePercent, rate.VATPercent)
		tax = &tb
		gross = tb.Gross
	}

	var events pendingEvents
	folio, err := s.ledger.ensure(ctx, res, userID, &events)
	if err != nil {
		return nil, err
	}
	updated, posted, err := s.ledger.post(ctx, folio, userID, chargeEntry(req.Category, description, gross, cal.BusinessDay(), tax))
	if err != nil {
		return nil, err
	}
	events.add(userID, domain.ActionFolioChargePosted, entityFolio, updated.FolioID, map[string]any{
		"category": string(req.Category),
		"amount":   gross.StringFixed(2),
	})
	s.publish(ctx, events)
	return &posted[0], nil
}

// PostAdjustment corrects an existing folio. Positive amounts debit, negative amounts credit.
func (s *folioService) PostAdjustment(ctx context.Context, reservationID string, req dto.AdjustmentRequest, userID string) (*domain.FolioTransaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	amount := req.Amount.Round(2)
	if amount.IsZero() {
		return nil, apperrors.NewValidationError("amount", "adjustment amount must not be zero")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
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
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}

	entry := domain.FolioTransaction{
		BusinessDate: cal.BusinessDay(),
		Type:         domain.TxnAdjustment,
		Category:     domain.CategoryAdjustment,
		Description:  description,
		Debit:        decimal.Zero,
		Credit:       decimal.Zero,
	}
	if amount.IsPositive() {
		entry.Debit = amount
	} else {
		entry.Credit = amount.Neg()
	}
	updated, posted, err := s.ledger.post(ctx, folio, userID, entry)
	if err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActionFolioAdjustmentPosted, entityFolio, updated.FolioID, map[string]any{
		"amount": amount.StringFixed(2),
	})
	return &posted[0], nil
}

func (s *folioService) CloseFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlock, err := s.locks.Lock(ctx, folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	closed, err := s.ledger.close(ctx, folio, userID)
	if err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActionFolioClosed, entityFolio, closed.FolioID, map[string]any{
		"balance": closed.Balance.StringFixed(2),
	})
	return closed, nil
}

func (s *folioService) SuspendFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	return s.setStatus(ctx, reservationID, domain.FolioOpen, domain.FolioSuspended, userID)
}

func (s *folioService) ResumeFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	return s.setStatus(ctx, reservationID, domain.FolioSuspended, domain.FolioOpen, userID)
}

// setStatus flips between open and suspended; nothing else about the folio changes.
func (s *folioService) setStatus(ctx context.Context, reservationID string, from, to domain.FolioStatus, userID string) (*domain.Folio, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlock, err := s.locks.Lock(ctx, folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if folio.Status == domain.FolioClosed {
		return nil, ErrFolioClosed
	}
	if folio.Status != from {
		return nil, apperrors.NewValidationError("status", "folio is %s, expected %s", folio.Status, from)
	}

	updated := folio.Clone()
	updated.Status = to
	updated.Touch(userID, s.Now())
	if err := s.ledger.saveHeader(ctx, updated); err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActionFolioStatusChanged, entityFolio, updated.FolioID, map[string]any{
		"from": string(from),
		"to":   string(to),
	})
	return updated, nil
}
