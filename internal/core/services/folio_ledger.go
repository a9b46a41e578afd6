package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/accounting"
)

// folioLedger holds the lock-free folio primitives shared by the lifecycle, folio,
// payment and reschedule services. Callers own the folio lock.
type folioLedger struct {
	folioRepo portsrepo.FolioRepositoryFacade
	roomRepo  portsrepo.RoomReader
	settings  portssvc.SettingsProviderSvc
	now       func() time.Time
}

// find returns the folio for a reservation, or nil when none has been opened.
func (l *folioLedger) find(ctx context.Context, reservationID string) (*domain.Folio, error) {
	folio, err := l.folioRepo.FindFolioByReservationID(ctx, reservationID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDependencyError("find folio", err)
	}
	return folio, nil
}

// get is find that treats a missing folio as ErrFolioNotFound.
func (l *folioLedger) get(ctx context.Context, reservationID string) (*domain.Folio, error) {
	folio, err := l.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if folio == nil {
		return nil, ErrFolioNotFound
	}
	return folio, nil
}

// verify replays the stored log. Drift is reported, never corrected.
func (l *folioLedger) verify(ctx context.Context, folio *domain.Folio) error {
	err := accounting.VerifyRunningBalances(folio.FolioID, folio.Transactions)
	if err == nil {
		_, replayed := accounting.ReplayBalances(folio.Transactions)
		if !replayed.Equal(folio.Balance) {
			err = &apperrors.InvariantError{
				FolioID:  folio.FolioID,
				Stored:   folio.Balance.StringFixed(2),
				Expected: replayed.StringFixed(2),
			}
		}
	}
	if err != nil {
		var invErr *apperrors.InvariantError
		if errors.As(err, &invErr) {
			metrics.IncInvariantViolation()
			middleware.GetLoggerFromCtx(ctx).Error("Folio ledger invariant violated",
				slog.String("folio_id", invErr.FolioID),
				slog.String("transaction_id", invErr.TransactionID),
				slog.String("stored", invErr.Stored),
				slog.String("expected", invErr.Expected))
		}
		return err
	}
	return nil
}

// ensure returns the reservation's folio, opening one if absent. The new folio is saved
// immediately so later appends see a stored version.
func (l *folioLedger) ensure(ctx context.Context, res *domain.Reservation, userID string, events *pendingEvents) (*domain.Folio, error) {
	folio, err := l.find(ctx, res.ReservationID)
	if err != nil || folio != nil {
		return folio, err
	}

	roomNumber := ""
	if room, err := l.roomRepo.FindRoomByID(ctx, res.RoomID); err == nil {
		roomNumber = room.Number
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewDependencyError("find room", err)
	}

	now := l.now()
	folio = &domain.Folio{
		FolioID:       uuid.NewString(),
		ReservationID: res.ReservationID,
		GuestName:     res.Guest.Name,
		RoomID:        res.RoomID,
		RoomNumber:    roomNumber,
		CreditLimit:   decimal.Zero,
		Status:        domain.FolioOpen,
		Balance:       decimal.Zero,
		OpenedAt:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := l.folioRepo.SaveFolio(ctx, folio); err != nil {
		return nil, apperrors.NewDependencyError("save folio", err)
	}
	events.add(userID, domain.ActionFolioOpen, entityFolio, folio.FolioID,
		map[string]any{"reservation_id": res.ReservationID})
	return folio, nil
}

// ensurePostable rejects postings to closed or suspended folios and to folios whose
// stored ledger fails replay.
func (l *folioLedger) ensurePostable(ctx context.Context, folio *domain.Folio) error {
	switch folio.Status {
	case domain.FolioClosed:
		return ErrFolioClosed
	case domain.FolioSuspended:
		return ErrFolioSuspended
	case domain.FolioOpen:
	}
	return l.verify(ctx, folio)
}

// post appends entries and stores them. It returns the updated folio; the input folio
// is not modified. Balance-after values are always derived by replaying the whole log.
func (l *folioLedger) post(ctx context.Context, folio *domain.Folio, userID string, entries ...domain.FolioTransaction) (*domain.Folio, []domain.FolioTransaction, error) {
	if err := l.ensurePostable(ctx, folio); err != nil {
		return nil, nil, err
	}

	now := l.now()
	updated := folio.Clone()
	start := len(updated.Transactions)
	for _, e := range entries {
		e.TransactionID = uuid.NewString()
		e.FolioID = folio.FolioID
		e.PostedAt = now
		e.PostedBy = userID
		if e.Debit.IsZero() {
			e.Debit = decimal.Zero
		}
		if e.Credit.IsZero() {
			e.Credit = decimal.Zero
		}
		updated.Transactions = append(updated.Transactions, e)
	}
	updated.Transactions, updated.Balance = accounting.ReplayBalances(updated.Transactions)
	updated.Touch(userID, now)

	appended := updated.Transactions[start:]
	if err := l.folioRepo.AppendFolioTransactions(ctx, updated, appended); err != nil {
		return nil, nil, apperrors.NewDependencyError("append folio transactions", err)
	}
	for _, txn := range appended {
		metrics.IncFolioPosting(string(txn.Type), string(txn.Category))
	}
	return updated, appended, nil
}

// saveHeader stores a status change.
func (l *folioLedger) saveHeader(ctx context.Context, folio *domain.Folio) error {
	if err := l.folioRepo.SaveFolio(ctx, folio); err != nil {
		return apperrors.NewDependencyError("save folio", err)
	}
	return nil
}

// close marks a settled folio closed.
func (l *folioLedger) close(ctx context.Context, folio *domain.Folio, userID string) (*domain.Folio, error) {
	if err := l.ensurePostable(ctx, folio); err != nil {
		return nil, err
	}
	if !folio.IsSettled() {
		return nil, &OutstandingBalanceError{Balance: folio.Balance}
	}
	now := l.now()
	updated := folio.Clone()
	updated.Status = domain.FolioClosed
	updated.ClosedAt = &now
	updated.ClosedBy = userID
	updated.Touch(userID, now)
	if err := l.saveHeader(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// taxBreakdown decomposes a tax-inclusive amount with the category's rates.
func (l *folioLedger) taxBreakdown(ctx context.Context, category domain.ChargeCategory, unitGross decimal.Decimal, quantity int) (*domain.TaxBreakdown, error) {
	rate, err := l.settings.TaxRateFor(ctx, category)
	if err != nil {
		return nil, err
	}
	tb := accounting.TaxInclusiveBreakdown(unitGross, quantity, rate.ServiceChargePercent, rate.VATPercent)
	return &tb, nil
}

// chargeEntry builds a debit posting.
func chargeEntry(category domain.ChargeCategory, description string, gross decimal.Decimal, businessDate time.Time, tax *domain.TaxBreakdown) domain.FolioTransaction {
	return domain.FolioTransaction{
		BusinessDate: domain.DateOnly(businessDate),
		Type:         domain.TxnCharge,
		Category:     category,
		Description:  description,
		Debit:        gross.Round(2),
		Credit:       decimal.Zero,
		Tax:          tax,
	}
}

func roomChargeDescription(roomNumber string, night time.Time) string {
	return fmt.Sprintf("Room %s, night of %s", roomNumber, night.Format(time.DateOnly))
}

// roomNightRates allocates the booked total over the stay. Nightly quoted rates are
// used when they add up to the booked total; otherwise the total is split evenly.
func roomNightRates(quote *domain.StayQuote, bookedTotal decimal.Decimal) []decimal.Decimal {
	rates := make([]decimal.Decimal, len(quote.Nights))
	if bookedTotal.IsZero() || quote.Total.Equal(bookedTotal) {
		for i, n := range quote.Nights {
			rates[i] = n.Rate
		}
		return rates
	}
	return accounting.EvenSplit(bookedTotal, len(quote.Nights))
}

// refundable is the money received (payments and deposits) less refunds already made.
func refundable(folio *domain.Folio) decimal.Decimal {
	received, refunded := decimal.Zero, decimal.Zero
	for _, txn := range folio.Transactions {
		switch txn.Type {
		case domain.TxnPayment:
			received = received.Add(txn.Credit)
		case domain.TxnRefund:
			refunded = refunded.Add(txn.Debit)
		case domain.TxnCharge, domain.TxnAdjustment:
		}
	}
	return received.Sub(refunded)
}

// outstanding is the positive part of the balance.
func outstanding(folio *domain.Folio) decimal.Decimal {
	if folio == nil || folio.Balance.IsNegative() {
		return decimal.Zero
	}
	return folio.Balance
}
