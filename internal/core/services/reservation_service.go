package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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
)

const defaultListLimit = 50

// reservationService implements the booking, edit and lifecycle operations.
type reservationService struct {
	BaseService
	tx              portsrepo.TransactionManager
	roomRepo        portsrepo.RoomRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	housekeeping    ports.HousekeepingSink
	pricing         portssvc.PricingSvc
	calendar        portssvc.CalendarSvc
	availability    portssvc.AvailabilitySvc
	ledger          *folioLedger
	locks           *entityLocker
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

func (s *reservationService) load(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find reservation", err)
	}
	return res, nil
}

func (s *reservationService) findRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	room, err := s.roomRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, apperrors.NewDependencyError("find room", err)
	}
	return room, nil
}

func (s *reservationService) save(ctx context.Context, res *domain.Reservation) error {
	if err := s.reservationRepo.SaveReservation(ctx, res); err != nil {
		return apperrors.NewDependencyError("save reservation", err)
	}
	return nil
}

func (s *reservationService) setRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus, needsCleaning bool, userID string) error {
	if err := s.roomRepo.UpdateRoomStatus(ctx, roomID, status, needsCleaning, userID, s.Now()); err != nil {
		return apperrors.NewDependencyError("update room status", err)
	}
	return nil
}

// ensureAvailable counts conflicts per operation.
func ensureAvailable(ctx context.Context, availability portssvc.AvailabilitySvc, operation, roomID string, stay domain.DateRange, excludeID string) error {
	err := availability.EnsureAvailable(ctx, roomID, stay, excludeID)
	if errors.Is(err, apperrors.ErrConflict) {
		metrics.IncConflict(operation)
	}
	return err
}

func normalizeGuest(g domain.Guest) domain.Guest {
	g.Name = strings.TrimSpace(g.Name)
	g.Phone = strings.TrimSpace(g.Phone)
	g.Email = strings.TrimSpace(g.Email)
	g.IDNumber = strings.TrimSpace(g.IDNumber)
	g.Nationality = strings.TrimSpace(g.Nationality)
	return g
}

func validateOccupancy(adults, children int) error {
	if adults < 1 {
		return apperrors.NewValidationError("adults", "at least one adult is required")
	}
	if children < 0 {
		return apperrors.NewValidationError("children", "must not be negative")
	}
	return nil
}

// CreateReservation books a room. The arrival date must be on or after the business day.
func (s *reservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest, userID string) (res *domain.Reservation, err error) {
	defer func() { metrics.ObserveTransition("create", err) }()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	guest := normalizeGuest(req.Guest.ToDomain())
	if guest.Name == "" {
		return nil, apperrors.NewValidationError("guest.name", "guest name is required")
	}
	if err := validateOccupancy(req.Adults, req.Children); err != nil {
		return nil, err
	}
	stay, err := domain.NewDateRange(req.CheckIn.Time, req.CheckOut.Time)
	if err != nil {
		return nil, apperrors.NewValidationError("checkOut", "%s", err.Error())
	}
	status := req.Status
	switch status {
	case "":
		status = domain.StatusConfirmed
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return nil, apperrors.NewValidationError("status", "new reservations must be PENDING or CONFIRMED")
	}
	source := req.Source
	if source == "" {
		source = domain.SourceWalkIn
	}

	unlock, err := s.locks.Lock(ctx, roomKey(req.RoomID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	room, err := s.findRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	if err := gateOpen(cal, "create reservation", stay.CheckIn); err != nil {
		return nil, err
	}
	if err := ensureAvailable(ctx, s.availability, "create", room.RoomID, stay, ""); err != nil {
		return nil, err
	}
	quote, err := s.pricing.QuoteStay(ctx, *room, stay)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	res = &domain.Reservation{
		ReservationID: uuid.NewString(),
		RoomID:        room.RoomID,
		Guest:         guest,
		CheckIn:       stay.CheckIn,
		CheckOut:      stay.CheckOut,
		Adults:        req.Adults,
		Children:      req.Children,
		TotalAmount:   quote.Total,
		Status:        status,
		Source:        source,
		Notes:         req.Notes,
		RefundAmount:  decimal.Zero,
		NoShowCharge:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.save(ctx, res); err != nil {
		s.LogError(ctx, err, "Failed to save reservation", slog.String("room_id", room.RoomID))
		return nil, err
	}

	s.record(ctx, userID, domain.ActionReservationCreate, entityReservation, res.ReservationID, map[string]any{
		"room_id":   res.RoomID,
		"check_in":  res.CheckIn.Format(time.DateOnly),
		"check_out": res.CheckOut.Format(time.DateOnly),
		"total":     res.TotalAmount.StringFixed(2),
	})
	return res, nil
}

// UpdateReservation edits guest-facing fields while the arrival is still in the future.
func (s *reservationService) UpdateReservation(ctx context.Context, reservationID string, req dto.UpdateReservationRequest, userID string) (*domain.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlock, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	res, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status.IsTerminal() {
		return nil, invalidTransition("edit", res.Status)
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	if err := gateAfterBusinessDay(cal, "edit reservation", res.CheckIn); err != nil {
		return nil, err
	}

	updated := *res
	if req.Guest != nil {
		updated.Guest = normalizeGuest(req.Guest.ToDomain())
		if updated.Guest.Name == "" {
			return nil, apperrors.NewValidationError("guest.name", "guest name is required")
		}
	}
	if req.Adults != nil {
		updated.Adults = *req.Adults
	}
	if req.Children != nil {
		updated.Children = *req.Children
	}
	if err := validateOccupancy(updated.Adults, updated.Children); err != nil {
		return nil, err
	}
	if req.Source != nil {
		updated.Source = *req.Source
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	updated.Touch(userID, s.Now())

	if err := s.save(ctx, &updated); err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActionReservationUpdate, entityReservation, updated.ReservationID, nil)
	return &updated, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.load(ctx, reservationID)
}

func (s *reservationService) ListReservations(ctx context.Context, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := domain.ReservationFilter{
		RoomID:    params.RoomID,
		From:      params.From,
		To:        params.To,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	for _, raw := range params.Status {
		status := domain.ReservationStatus(strings.ToUpper(strings.TrimSpace(raw)))
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCheckedIn,
			domain.StatusCheckedOut, domain.StatusCancelled, domain.StatusNoShow:
			filter.Statuses = append(filter.Statuses, status)
		default:
			return nil, apperrors.NewValidationError("status", "unknown status %q", raw)
		}
	}

	reservations, next, err := s.reservationRepo.ListReservations(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDependencyError("list reservations", err)
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	return &dto.ListReservationsResponse{Reservations: reservations, NextToken: next}, nil
}

// CheckIn moves an arriving reservation in-house. The folio is opened if needed and every
// night without a room charge is charged at the booked rate.
func (s *reservationService) CheckIn(ctx context.Context, reservationID string, req dto.CheckInRequest, userID string) (res *domain.Reservation, err error) {
	defer func() { metrics.ObserveTransition("check_in", err) }()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlockRes, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRes()

	current, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsAwaitingArrival() {
		return nil, invalidTransition("check in", current.Status)
	}

	unlock, err := s.locks.Lock(ctx, roomKey(current.RoomID), folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	bd := cal.BusinessDay()
	stay := current.Range()
	extended := false
	switch {
	case stay.CheckIn.Before(bd):
		return nil, gateError(cal, "check-in", stay.CheckIn)
	case stay.CheckIn.After(bd):
		if !req.AllowEarly {
			return nil, apperrors.NewValidationError("allowEarly",
				"arrival is %s but the business day is %s; early check-in must be confirmed",
				stay.CheckIn.Format(time.DateOnly), bd.Format(time.DateOnly))
		}
		early := domain.DateRange{CheckIn: bd, CheckOut: stay.CheckIn}
		if err := ensureAvailable(ctx, s.availability, "check_in", current.RoomID, early, reservationID); err != nil {
			return nil, err
		}
		stay.CheckIn = bd
		extended = true
	}

	room, err := s.findRoom(ctx, current.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.RoomOccupied {
		metrics.IncConflict("check_in")
		return nil, &apperrors.ConflictError{RoomID: room.RoomID, Message: "room is occupied"}
	}
	inHouse, _, err := s.reservationRepo.ListReservations(ctx, domain.ReservationFilter{
		RoomID:   room.RoomID,
		Statuses: []domain.ReservationStatus{domain.StatusCheckedIn},
	})
	if err != nil {
		return nil, apperrors.NewDependencyError("list reservations", err)
	}
	for _, other := range inHouse {
		if other.ReservationID != reservationID {
			metrics.IncConflict("check_in")
			return nil, &apperrors.ConflictError{
				RoomID:                   room.RoomID,
				ConflictingReservationID: other.ReservationID,
				Message:                  "another guest is checked in to the room",
			}
		}
	}

	quote, err := s.pricing.QuoteStay(ctx, *room, stay)
	if err != nil {
		return nil, err
	}

	updated := *current
	if extended {
		updated.CheckIn = stay.CheckIn
		updated.TotalAmount = quote.Total
	}
	nightly := roomNightRates(quote, updated.TotalAmount)

	var events pendingEvents
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.Now()
		updated.Status = domain.StatusCheckedIn
		updated.CheckedInAt = &now
		updated.Touch(userID, now)
		if err := s.save(ctx, &updated); err != nil {
			return err
		}

		folio, err := s.ledger.ensure(ctx, &updated, userID, &events)
		if err != nil {
			return err
		}
		entries, err := s.roomChargeEntries(ctx, folio, room, quote, nightly, bd)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			posted, _, err := s.ledger.post(ctx, folio, userID, entries...)
			if err != nil {
				return err
			}
			events.add(userID, domain.ActionFolioChargePosted, entityFolio, posted.FolioID, map[string]any{
				"category": string(domain.CategoryRoom),
				"nights":   len(entries),
				"balance":  posted.Balance.StringFixed(2),
			})
		}
		return s.setRoomStatus(ctx, room.RoomID, domain.RoomOccupied, room.NeedsCleaning, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Check-in failed", slog.String("reservation_id", reservationID))
		return nil, err
	}

	events.add(userID, domain.ActionCheckIn, entityReservation, reservationID, map[string]any{
		"room_id":  room.RoomID,
		"check_in": updated.CheckIn.Format(time.DateOnly),
		"early":    extended,
	})
	s.publish(ctx, events)
	return &updated, nil
}

// roomChargeEntries builds one ROOM charge per night that is not charged yet.
func (s *reservationService) roomChargeEntries(ctx context.Context, folio *domain.Folio, room *domain.Room, quote *domain.StayQuote, nightly []decimal.Decimal, businessDate time.Time) ([]domain.FolioTransaction, error) {
	charged := make(map[time.Time]bool)
	for _, txn := range folio.Transactions {
		if txn.IsRoomCharge() && txn.StayDate != nil {
			charged[domain.DateOnly(*txn.StayDate)] = true
		}
	}

	var entries []domain.FolioTransaction
	for i, night := range quote.Nights {
		date := domain.DateOnly(night.Date)
		if charged[date] {
			continue
		}
		tax, err := s.ledger.taxBreakdown(ctx, domain.CategoryRoom, nightly[i], 1)
		if err != nil {
			return nil, err
		}
		entry := chargeEntry(domain.CategoryRoom,
			roomChargeDescription(room.Number, date),
			nightly[i], businessDate, tax)
		entry.StayDate = &date
		entries = append(entries, entry)
	}
	return entries, nil
}

// CheckOut completes a stay. It is never gated by the business day but requires a
// settled folio.
func (s *reservationService) CheckOut(ctx context.Context, reservationID string, userID string) (res *domain.Reservation, err error) {
	defer func() { metrics.ObserveTransition("check_out", err) }()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlockRes, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRes()

	current, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.StatusCheckedIn {
		return nil, invalidTransition("check out", current.Status)
	}

	unlock, err := s.locks.Lock(ctx, roomKey(current.RoomID), folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if folio != nil {
		if err := s.ledger.verify(ctx, folio); err != nil {
			return nil, err
		}
		if !folio.IsSettled() {
			return nil, &OutstandingBalanceError{Balance: folio.Balance}
		}
	}

	updated := *current
	var events pendingEvents
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.Now()
		updated.Status = domain.StatusCheckedOut
		updated.CheckedOutAt = &now
		updated.Touch(userID, now)
		if err := s.save(ctx, &updated); err != nil {
			return err
		}
		if folio != nil && folio.Status != domain.FolioClosed {
			closed, err := s.ledger.close(ctx, folio, userID)
			if err != nil {
				return err
			}
			events.add(userID, domain.ActionFolioClosed, entityFolio, closed.FolioID, map[string]any{
				"balance": closed.Balance.StringFixed(2),
			})
		}
		return s.setRoomStatus(ctx, updated.RoomID, domain.RoomVacant, true, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Check-out failed", slog.String("reservation_id", reservationID))
		return nil, err
	}

	requestCleaning(ctx, &s.BaseService, s.housekeeping, updated.RoomID, reservationID, userID)
	events.add(userID, domain.ActionCheckOut, entityReservation, reservationID, map[string]any{"room_id": updated.RoomID})
	s.publish(ctx, events)
	return &updated, nil
}

// requestCleaning is best-effort; the operation that vacated the room has already committed.
func requestCleaning(ctx context.Context, base *BaseService, sink ports.HousekeepingSink, roomID, reservationID, userID string) {
	if sink == nil {
		return
	}
	created, err := sink.EnqueueTask(ctx, domain.HousekeepingTask{
		TaskID:        uuid.NewString(),
		RoomID:        roomID,
		ReservationID: reservationID,
		Type:          domain.TaskCheckoutClean,
		Status:        domain.TaskPending,
		Priority:      "NORMAL",
		RequestedAt:   base.Now(),
		RequestedBy:   userID,
	})
	if err != nil {
		base.LogError(ctx, err, "Failed to enqueue housekeeping task", slog.String("room_id", roomID))
		return
	}
	if !created {
		base.LogDebug(ctx, "Checkout clean already pending", slog.String("room_id", roomID))
	}
}

// noShowCharge computes the fee for a no-show under the chosen policy.
func (s *reservationService) noShowCharge(ctx context.Context, res *domain.Reservation, req dto.NoShowRequest) (decimal.Decimal, error) {
	switch req.Policy {
	case dto.NoShowNone:
		return decimal.Zero, nil
	case dto.NoShowFullStay:
		return res.TotalAmount, nil
	case dto.NoShowCustom:
		if !req.CustomAmount.IsPositive() {
			return decimal.Zero, apperrors.NewValidationError("customAmount", "custom no-show charge must be greater than zero")
		}
		return req.CustomAmount.Round(2), nil
	case dto.NoShowFirstNight:
		room, err := s.findRoom(ctx, res.RoomID)
		if err != nil {
			return decimal.Zero, err
		}
		night, err := s.pricing.NightlyRate(ctx, *room, res.CheckIn)
		if err != nil {
			return decimal.Zero, err
		}
		return night.Rate, nil
	default:
		return decimal.Zero, apperrors.NewValidationError("policy", "unknown no-show policy %q", req.Policy)
	}
}

// MarkNoShow retires an arrival that did not turn up. Only allowed on the arrival date.
func (s *reservationService) MarkNoShow(ctx context.Context, reservationID string, req dto.NoShowRequest, userID string) (result *dto.NoShowResult, err error) {
	defer func() { metrics.ObserveTransition("no_show", err) }()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	unlockRes, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRes()

	current, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsAwaitingArrival() {
		return nil, invalidTransition("mark as no-show", current.Status)
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.DateOnly(current.CheckIn).Equal(cal.BusinessDay()) {
		return nil, gateError(cal, "no-show", current.CheckIn)
	}
	charge, err := s.noShowCharge(ctx, current, req)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, roomKey(current.RoomID), folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	updated := *current
	released := false
	var events pendingEvents
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.Now()
		updated.Status = domain.StatusNoShow
		updated.NoShowCharge = charge
		updated.Touch(userID, now)
		if err := s.save(ctx, &updated); err != nil {
			return err
		}

		if charge.IsPositive() {
			folio, err := s.ledger.ensure(ctx, &updated, userID, &events)
			if err != nil {
				return err
			}
			tax, err := s.ledger.taxBreakdown(ctx, domain.CategoryNoShow, charge, 1)
			if err != nil {
				return err
			}
			entry := chargeEntry(domain.CategoryNoShow,
				fmt.Sprintf("No-show charge (%s)", strings.ToLower(string(req.Policy))), charge, cal.BusinessDay(), tax)
			posted, _, err := s.ledger.post(ctx, folio, userID, entry)
			if err != nil {
				return err
			}
			events.add(userID, domain.ActionFolioChargePosted, entityFolio, posted.FolioID, map[string]any{
				"category": string(domain.CategoryNoShow),
				"amount":   charge.StringFixed(2),
			})
		}

		if req.ReleaseRoom {
			var err error
			released, err = s.releaseRoom(ctx, &updated, userID)
			return err
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "No-show failed", slog.String("reservation_id", reservationID))
		return nil, err
	}

	events.add(userID, domain.ActionNoShow, entityReservation, reservationID, map[string]any{
		"policy":        string(req.Policy),
		"charge":        charge.StringFixed(2),
		"room_released": released,
	})
	s.publish(ctx, events)
	return &dto.NoShowResult{Reservation: &updated, Charge: charge, RoomReleased: released}, nil
}

// releaseRoom frees the room of a retired reservation unless someone is in it or another
// live reservation overlaps the same dates.
func (s *reservationService) releaseRoom(ctx context.Context, res *domain.Reservation, userID string) (bool, error) {
	room, err := s.findRoom(ctx, res.RoomID)
	if err != nil {
		return false, err
	}
	if room.Status == domain.RoomOccupied {
		return false, nil
	}
	err = s.availability.EnsureAvailable(ctx, res.RoomID, res.Range(), res.ReservationID)
	if errors.Is(err, apperrors.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.setRoomStatus(ctx, room.RoomID, domain.RoomVacant, room.NeedsCleaning, userID); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel retires a reservation. Stays whose relevant date (arrival, or departure once
// checked in) is on or before the business day cannot be cancelled.
func (s *reservationService) Cancel(ctx context.Context, reservationID string, req dto.CancelReservationRequest, userID string) (res *domain.Reservation, err error) {
	defer func() { metrics.ObserveTransition("cancel", err) }()
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if req.RefundAmount.IsNegative() {
		return nil, apperrors.NewValidationError("refundAmount", "must not be negative")
	}
	refundAmount := req.RefundAmount.Round(2)
	refundMethod := req.RefundMethod
	if refundMethod == "" {
		refundMethod = domain.PaymentCash
	}

	unlockRes, err := s.locks.Lock(ctx, reservationKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlockRes()

	current, err := s.load(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, invalidTransition("cancel", current.Status)
	}
	cal, err := s.calendar.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	relevant := current.CheckIn
	if current.Status == domain.StatusCheckedIn {
		relevant = current.CheckOut
	}
	if err := gateAfterBusinessDay(cal, "cancel", relevant); err != nil {
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, roomKey(current.RoomID), folioKey(reservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	folio, err := s.ledger.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	postRefund := refundAmount.IsPositive() && folio != nil && refundable(folio).IsPositive()
	if postRefund {
		if err := validatePaymentFields("refund", refundMethod, refundAmount, req.RefundReference); err != nil {
			return nil, err
		}
		if limit := refundable(folio); refundAmount.GreaterThan(limit) {
			return nil, apperrors.NewValidationError("refundAmount", "refund %s exceeds refundable amount %s",
				refundAmount.StringFixed(2), limit.StringFixed(2))
		}
	}

	updated := *current
	wasInHouse := current.Status == domain.StatusCheckedIn
	var events pendingEvents
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.Now()
		updated.Status = domain.StatusCancelled
		updated.CancelledAt = &now
		updated.CancellationReason = strings.TrimSpace(req.Reason)
		updated.RefundAmount = refundAmount
		updated.Touch(userID, now)
		if err := s.save(ctx, &updated); err != nil {
			return err
		}

		if postRefund {
			entry := refundEntry(refundMethod, refundAmount, req.RefundReference, "Cancellation refund", cal.BusinessDay())
			posted, _, err := s.ledger.post(ctx, folio, userID, entry)
			if err != nil {
				return err
			}
			events.add(userID, domain.ActionFolioRefundPosted, entityFolio, posted.FolioID, map[string]any{
				"amount": refundAmount.StringFixed(2),
				"method": string(refundMethod),
			})
		}

		if wasInHouse {
			return s.setRoomStatus(ctx, updated.RoomID, domain.RoomVacant, true, userID)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Cancellation failed", slog.String("reservation_id", reservationID))
		return nil, err
	}

	events.add(userID, domain.ActionReservationCancel, entityReservation, reservationID, map[string]any{
		"reason":        updated.CancellationReason,
		"refund_amount": refundAmount.StringFixed(2),
		"was_in_house":  wasInHouse,
	})
	s.publish(ctx, events)
	return &updated, nil
}
