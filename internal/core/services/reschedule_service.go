package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
	"github.com/SscSPs/hotel_frontdesk/internal/utils/accounting"
)

type rescheduleService struct {
	BaseService
	tx              portsrepo.TransactionManager
	roomRepo        portsrepo.RoomRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	folioRepo       portsrepo.FolioWriter
	housekeeping    ports.HousekeepingSink
	pricing         portssvc.PricingSvc
	calendar        portssvc.CalendarSvc
	availability    portssvc.AvailabilitySvc
	ledger          *folioLedger
	locks           *entityLocker
}

var _ portssvc.RescheduleSvc = (*rescheduleService)(nil)

// Reschedule moves a reservation to a new room and/or date range. Every check runs
// before anything is written; the writes share one unit of work. A stay that has not
// arrived is frozen once its check-in is on or before the business day. An in-house
// stay keeps its arrival, and its nights before the business day keep their charges.
func (s *rescheduleService) Reschedule(ctx context.Context, reservationID string, req dto.RescheduleRequest, userID string) (result *dto.RescheduleResult, err error) {
	defer func() { metrics.ObserveTransition("reschedule", err) }()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if req.RoomID == "" {
		return nil, apperrors.NewValidationError("roomID", "room is required")
	}
	newStay, err := domain.NewDateRange(req.CheckIn.Time, req.CheckOut.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("checkOut", "%s", err.Error())
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
	if res.Status.IsTerminal() {
		return nil, invalidTransition("reschedule", res.Status)
	}
	oldStay := res.Range()
	roomChanged := req.RoomID != res.RoomID
	inHouse := res.Status == domain.StatusCheckedIn

	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	if inHouse {
		if !newStay.CheckIn.Equal(oldStay.CheckIn) {
			return nil, apperrors.NewValidationError("checkIn", "the arrival date of a checked-in stay cannot change")
		}
		if err := gateOpenDates(cal, "reschedule", changedNights(oldStay, newStay)); err != nil {
			return nil, err
		}
	} else {
		if err := gateAfterBusinessDay(cal, "reschedule", res.CheckIn); err != nil {
			return nil, err
		}
		if err := gateOpenDates(cal, "reschedule", newStay.Dates()); err != nil {
			return nil, err
		}
	}

	unlockRooms, err := s.locks.Lock(ctx, roomKey(res.RoomID), roomKey(req.RoomID), folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRooms()

	room, err := s.roomRepo.FindRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find room", err)
	}
	if inHouse && roomChanged && room.Status == domain.RoomOccupied {
		metrics.IncConflict("reschedule")
		return nil, &apperrors.ConflictError{RoomID: room.RoomID, Message: "room is occupied"}
	}
	if err := ensureAvailable(ctx, s.availability, "reschedule", room.RoomID, newStay, reservationID); err != nil {
		return nil, err
	}
	quote, err := s.pricing.QuoteStay(ctx, *room, newStay)
	if err != nil {
		return nil, err
	}

	folio, err := s.ledger.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	var rewritten *domain.Folio
	chargesUpdated := 0
	total := quote.Total
	if folio != nil && hasRoomCharges(folio) {
		if err := s.ledger.ensurePostable(ctx, folio); err != nil {
			return nil, err
		}
		rate, err := s.ledger.settings.TaxRateFor(ctx, domain.CategoryRoom)
		if err != nil {
			return nil, err
		}
		rewritten, chargesUpdated, total = rewriteRoomCharges(folio, quote, rate, room.Number, cal.BusinessDay())
		if roomChanged {
			rewritten.RoomID = room.RoomID
			rewritten.RoomNumber = room.Number
		}
	}

	updated := *res
	updated.RoomID = room.RoomID
	updated.CheckIn = newStay.CheckIn
	updated.CheckOut = newStay.CheckOut
	updated.TotalAmount = total

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.Now()
		updated.Touch(userID, now)
		if err := s.reservationRepo.SaveReservation(ctx, &updated); err != nil {
			return apperrors.NewDependencyError("save reservation", err)
		}
		if rewritten != nil {
			for i := range rewritten.Transactions {
				if txn := &rewritten.Transactions[i]; txn.TransactionID == "" {
					txn.TransactionID = uuid.NewString()
					txn.FolioID = rewritten.FolioID
					txn.PostedAt = now
					txn.PostedBy = userID
				}
			}
			rewritten.Touch(userID, now)
			if err := s.folioRepo.ReplaceFolioTransactions(ctx, rewritten); err != nil {
				return apperrors.NewDependencyError("replace folio transactions", err)
			}
		}
		if inHouse && roomChanged {
			if err := s.roomRepo.UpdateRoomStatus(ctx, res.RoomID, domain.RoomVacant, true, userID, now); err != nil {
				return apperrors.NewDependencyError("update room status", err)
			}
			if err := s.roomRepo.UpdateRoomStatus(ctx, room.RoomID, domain.RoomOccupied, room.NeedsCleaning, userID, now); err != nil {
				return apperrors.NewDependencyError("update room status", err)
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Reschedule failed", slog.String("reservation_id", reservationID))
		return nil, err
	}

	if inHouse && roomChanged {
		requestCleaning(ctx, &s.BaseService, s.housekeeping, res.RoomID, reservationID, userID)
	}

	var events pendingEvents
	events.add(userID, domain.ActionReservationReschedule, entityReservation, reservationID, map[string]any{
		"from_room":      res.RoomID,
		"to_room":        updated.RoomID,
		"from_check_in":  oldStay.CheckIn.Format(time.DateOnly),
		"from_check_out": oldStay.CheckOut.Format(time.DateOnly),
		"to_check_in":    updated.CheckIn.Format(time.DateOnly),
		"to_check_out":   updated.CheckOut.Format(time.DateOnly),
		"total":          updated.TotalAmount.StringFixed(2),
	})
	if rewritten != nil {
		events.add(userID, domain.ActionFolioRoomChargesMoved, entityFolio, rewritten.FolioID, map[string]any{
			"rows":    chargesUpdated,
			"balance": rewritten.Balance.StringFixed(2),
		})
	}
	s.publish(ctx, events)

	return &dto.RescheduleResult{
		Reservation:         &updated,
		Quote:               quote,
		RoomChanged:         roomChanged,
		FolioChargesUpdated: chargesUpdated,
	}, nil
}

// changedNights lists nights present in exactly one of the two stays.
func changedNights(oldStay, newStay domain.DateRange) []time.Time {
	var out []time.Time
	for _, d := range newStay.Dates() {
		if !oldStay.ContainsDate(d) {
			out = append(out, d)
		}
	}
	for _, d := range oldStay.Dates() {
		if !newStay.ContainsDate(d) {
			out = append(out, d)
		}
	}
	return out
}

func hasRoomCharges(folio *domain.Folio) bool {
	for _, txn := range folio.Transactions {
		if txn.IsRoomCharge() {
			return true
		}
	}
	return false
}

// rewriteRoomCharges reprices the folio's room-charge rows against quote and returns the
// new folio, the number of rows touched and the room total for the stay. Rows for nights
// before businessDay are left as posted. Later rows are matched by stay date: matched
// rows take the night's rate and the new room number, rows for nights no longer in the
// stay are removed, and quoted nights without a row get a new row. Rows without a stay
// date instead share the unmatched nights' total evenly. Balances are replayed afterwards.
// The input folio is not modified.
func rewriteRoomCharges(folio *domain.Folio, quote *domain.StayQuote, rate domain.TaxRate, roomNumber string, businessDay time.Time) (*domain.Folio, int, decimal.Decimal) {
	updated := folio.Clone()
	businessDay = domain.DateOnly(businessDay)

	kept := make([]domain.FolioTransaction, 0, len(updated.Transactions))
	covered := make(map[time.Time]bool)
	var undated []int
	touched := 0
	total := decimal.Zero
	for _, txn := range updated.Transactions {
		if !txn.IsRoomCharge() {
			kept = append(kept, txn)
			continue
		}
		if txn.StayDate == nil {
			undated = append(undated, len(kept))
			kept = append(kept, txn)
			continue
		}
		night := domain.DateOnly(*txn.StayDate)
		if night.Before(businessDay) {
			covered[night] = true
			total = total.Add(txn.Debit)
			kept = append(kept, txn)
			continue
		}
		nightRate, ok := quote.RateOn(night)
		if !ok || covered[night] {
			touched++
			continue
		}
		covered[night] = true
		repriceRoomCharge(&txn, nightRate, rate)
		txn.Description = roomChargeDescription(roomNumber, night)
		total = total.Add(nightRate)
		kept = append(kept, txn)
		touched++
	}

	var missing []domain.NightlyRate
	missingTotal := decimal.Zero
	for _, n := range quote.Nights {
		if !covered[domain.DateOnly(n.Date)] {
			missing = append(missing, n)
			missingTotal = missingTotal.Add(n.Rate)
		}
	}
	if len(undated) > 0 {
		amounts := accounting.EvenSplit(missingTotal, len(undated))
		for k, idx := range undated {
			repriceRoomCharge(&kept[idx], amounts[k], rate)
		}
		touched += len(undated)
	} else {
		for _, n := range missing {
			night := domain.DateOnly(n.Date)
			tb := accounting.TaxInclusiveBreakdown(n.Rate, 1, rate.ServiceChargePercent, rate.VATPercent)
			entry := chargeEntry(domain.CategoryRoom, roomChargeDescription(roomNumber, night), n.Rate, businessDay, &tb)
			entry.StayDate = &night
			kept = append(kept, entry)
			touched++
		}
	}
	total = total.Add(missingTotal)

	updated.Transactions, updated.Balance = accounting.ReplayBalances(kept)
	return updated, touched, total
}

// repriceRoomCharge sets a room charge to amount, keeping the tax rates it was posted with.
func repriceRoomCharge(txn *domain.FolioTransaction, amount decimal.Decimal, rate domain.TaxRate) {
	servicePct, vatPct := rate.ServiceChargePercent, rate.VATPercent
	if txn.Tax != nil {
		servicePct, vatPct = txn.Tax.ServiceChargePercent, txn.Tax.VATPercent
	}
	tb := accounting.TaxInclusiveBreakdown(amount, 1, servicePct, vatPct)
	txn.Debit = amount
	txn.Credit = decimal.Zero
	txn.Tax = &tb
}
