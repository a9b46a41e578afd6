package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/core/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/config"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/seed"
	"github.com/SscSPs/hotel_frontdesk/internal/repositories/memory"
)

// Business day is Sunday 2025-06-01. STD rooms cost 100 on weeknights and 130 on
// Friday to Sunday nights.
const testSeed = `
last_audit_date: 2025-05-31
rooms:
  - number: "101"
    type: STD
    floor: 1
    base_price: "100.00"
  - number: "102"
    type: STD
    floor: 1
    base_price: "100.00"
  - number: "201"
    type: DLX
    floor: 2
    base_price: "160.00"
rate_tables:
  - room_type: STD
    weekday_rate: "100.00"
    weekend_rate: "130.00"
  - room_type: DLX
    weekday_rate: "160.00"
    weekend_rate: "190.00"
seasons:
  - id: late-june
    name: Late June
    start: 2025-06-20
    end: 2025-06-30
    modifier_percent: "-10"
special_dates:
  - id: midsummer
    name: Midsummer
    date: 2025-06-23
    modifier_percent: "20"
tax_rates:
  - category: ROOM
    service_charge_percent: "10"
    vat_percent: "18"
  - category: NO_SHOW
    service_charge_percent: "0"
    vat_percent: "18"
`

const clerk = "clerk-1"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (r *recordingSink) Record(_ context.Context, e domain.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) actions() []domain.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityAction, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type FrontDeskTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	repos    portsrepo.RepositoryProvider
	svc      *portssvc.ServiceContainer
	activity *recordingSink
	seedData *seed.Data
}

func (s *FrontDeskTestSuite) SetupTest() {
	s.ctx = context.Background()
	data, err := seed.Parse([]byte(testSeed))
	s.Require().NoError(err)
	s.seedData = data

	s.store = memory.NewStore()
	s.Require().NoError(s.store.ApplySeed(s.ctx, data))
	s.repos = memory.NewRepositoryProvider(s.store)
	s.activity = &recordingSink{}

	cfg := &config.Config{RepoTimeout: 2 * time.Second, SettingsCacheTTL: time.Minute}
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	s.svc = services.NewServiceContainer(cfg, s.repos,
		services.WithActivitySink(s.activity),
		services.WithClock(func() time.Time { return now }),
	)
}

func (s *FrontDeskTestSuite) book(roomID string, in, out time.Time) *domain.Reservation {
	res, err := s.svc.Reservation.CreateReservation(s.ctx, dto.CreateReservationRequest{
		RoomID:   roomID,
		Guest:    dto.GuestRequest{Name: "Guest " + roomID},
		CheckIn:  dto.NewDate(in),
		CheckOut: dto.NewDate(out),
		Adults:   1,
	}, clerk)
	s.Require().NoError(err)
	return res
}

func (s *FrontDeskTestSuite) checkedIn(roomID string, out time.Time) *domain.Reservation {
	res := s.book(roomID, day(2025, 6, 1), out)
	_, err := s.svc.Reservation.CheckIn(s.ctx, res.ReservationID, dto.CheckInRequest{}, clerk)
	s.Require().NoError(err)
	return res
}

func (s *FrontDeskTestSuite) pay(reservationID, amount string) *dto.PaymentResult {
	result, err := s.svc.Payment.PostPayment(s.ctx, reservationID, dto.PaymentRequest{
		Method: domain.PaymentCash,
		Amount: dec(amount),
	}, clerk)
	s.Require().NoError(err)
	return result
}

// assertLedger checks the stored log replays to the stored balance.
func (s *FrontDeskTestSuite) assertLedger(reservationID string) *dto.FolioResponse {
	s.Require().NoError(s.svc.Folio.VerifyFolio(s.ctx, reservationID))
	resp, err := s.svc.Folio.GetFolio(s.ctx, reservationID)
	s.Require().NoError(err)
	s.True(resp.TotalDebits.Sub(resp.TotalCredits).Equal(resp.Folio.Balance),
		"debits %s - credits %s != balance %s", resp.TotalDebits, resp.TotalCredits, resp.Folio.Balance)
	return resp
}

func (s *FrontDeskTestSuite) room(roomID string) *domain.Room {
	room, err := s.svc.Room.GetRoom(s.ctx, roomID)
	s.Require().NoError(err)
	return room
}

// --- Pricing ---

func (s *FrontDeskTestSuite) TestBooking_TwoWeeknights() {
	res := s.book("101", day(2025, 6, 2), day(2025, 6, 4))
	s.True(res.TotalAmount.Equal(dec("200")), "total %s", res.TotalAmount)
	s.Equal(domain.StatusConfirmed, res.Status)
	s.Equal(domain.SourceWalkIn, res.Source)
	s.Contains(s.activity.actions(), domain.ActionReservationCreate)
}

func (s *FrontDeskTestSuite) TestQuote_SpecialDateOverridesSeason() {
	quote, err := s.svc.Pricing.Quote(s.ctx, dto.QuoteRequest{
		RoomID:   "101",
		CheckIn:  dto.NewDate(day(2025, 6, 23)),
		CheckOut: dto.NewDate(day(2025, 6, 25)),
	})
	s.Require().NoError(err)
	s.Require().Len(quote.Nights, 2)

	s.True(quote.Nights[0].Rate.Equal(dec("120")), "special night %s", quote.Nights[0].Rate)
	s.Require().Len(quote.Nights[0].Modifiers, 1)
	s.Equal(domain.ModifierSpecialDate, quote.Nights[0].Modifiers[0].Kind)

	s.True(quote.Nights[1].Rate.Equal(dec("90")), "season night %s", quote.Nights[1].Rate)
	s.True(quote.Total.Equal(dec("210")))
}

func (s *FrontDeskTestSuite) TestQuote_InvalidRange() {
	_, err := s.svc.Pricing.Quote(s.ctx, dto.QuoteRequest{
		RoomID:   "101",
		CheckIn:  dto.NewDate(day(2025, 6, 5)),
		CheckOut: dto.NewDate(day(2025, 6, 5)),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Availability ---

func (s *FrontDeskTestSuite) TestAvailability_HalfOpenRanges() {
	a := s.book("101", day(2025, 6, 1), day(2025, 6, 5))

	s.book("101", day(2025, 6, 5), day(2025, 6, 8))

	_, err := s.svc.Reservation.CreateReservation(s.ctx, dto.CreateReservationRequest{
		RoomID:   "101",
		Guest:    dto.GuestRequest{Name: "Late Guest"},
		CheckIn:  dto.NewDate(day(2025, 6, 4)),
		CheckOut: dto.NewDate(day(2025, 6, 6)),
		Adults:   2,
	}, clerk)
	var conflict *apperrors.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(a.ReservationID, conflict.ConflictingReservationID)

	resp, err := s.svc.Availability.CheckAvailability(s.ctx, dto.AvailabilityRequest{
		RoomID:   "101",
		CheckIn:  dto.NewDate(day(2025, 6, 4)),
		CheckOut: dto.NewDate(day(2025, 6, 5)),
	})
	s.Require().NoError(err)
	s.False(resp.Available)
	s.Equal(a.ReservationID, resp.ConflictingReservationID)

	resp, err = s.svc.Availability.CheckAvailability(s.ctx, dto.AvailabilityRequest{
		RoomID:               "101",
		CheckIn:              dto.NewDate(day(2025, 6, 4)),
		CheckOut:             dto.NewDate(day(2025, 6, 5)),
		ExcludeReservationID: a.ReservationID,
	})
	s.Require().NoError(err)
	s.True(resp.Available)
}

func (s *FrontDeskTestSuite) TestAvailability_CancelledStayFreesRoom() {
	a := s.book("102", day(2025, 6, 10), day(2025, 6, 12))
	_, err := s.svc.Reservation.Cancel(s.ctx, a.ReservationID, dto.CancelReservationRequest{Reason: "plans changed"}, clerk)
	s.Require().NoError(err)

	s.book("102", day(2025, 6, 10), day(2025, 6, 12))
}

// --- Business day gate ---

func (s *FrontDeskTestSuite) TestGate_CreateBeforeBusinessDay() {
	_, err := s.svc.Reservation.CreateReservation(s.ctx, dto.CreateReservationRequest{
		RoomID:   "101",
		Guest:    dto.GuestRequest{Name: "Yesterday"},
		CheckIn:  dto.NewDate(day(2025, 5, 31)),
		CheckOut: dto.NewDate(day(2025, 6, 2)),
		Adults:   1,
	}, clerk)
	var gate *apperrors.GateError
	s.Require().ErrorAs(err, &gate)
	s.True(gate.BlockedDate.Equal(day(2025, 5, 31)))
	s.True(gate.BusinessDay.Equal(day(2025, 6, 1)))
}

func (s *FrontDeskTestSuite) TestGate_CancelAndEditOnBusinessDay() {
	res := s.book("101", day(2025, 6, 1), day(2025, 6, 3))

	_, err := s.svc.Reservation.Cancel(s.ctx, res.ReservationID, dto.CancelReservationRequest{}, clerk)
	s.ErrorIs(err, apperrors.ErrGate)

	notes := "late arrival"
	_, err = s.svc.Reservation.UpdateReservation(s.ctx, res.ReservationID, dto.UpdateReservationRequest{Notes: &notes}, clerk)
	s.ErrorIs(err, apperrors.ErrGate)

	future := s.book("102", day(2025, 6, 9), day(2025, 6, 10))
	updated, err := s.svc.Reservation.UpdateReservation(s.ctx, future.ReservationID, dto.UpdateReservationRequest{Notes: &notes}, clerk)
	s.Require().NoError(err)
	s.Equal(notes, updated.Notes)
}

func (s *FrontDeskTestSuite) TestGate_LastAuditDateIsReadThrough() {
	cal, err := s.svc.Calendar.Calendar(s.ctx)
	s.Require().NoError(err)
	s.True(cal.BusinessDay().Equal(day(2025, 6, 1)))

	s.Require().NoError(s.repos.SettingsRepo.SetLastAuditDate(s.ctx, day(2025, 6, 1)))

	cal, err = s.svc.Calendar.Calendar(s.ctx)
	s.Require().NoError(err)
	s.True(cal.BusinessDay().Equal(day(2025, 6, 2)))
	s.ErrorIs(s.svc.Calendar.EnsureOpen(s.ctx, "post", day(2025, 6, 1)), apperrors.ErrGate)
}

// --- Lifecycle and folio ---

func (s *FrontDeskTestSuite) TestCheckIn_PostsNightlyRoomCharges() {
	res := s.checkedIn("101", day(2025, 6, 3))

	resp := s.assertLedger(res.ReservationID)
	s.Require().Len(resp.Folio.Transactions, 2)
	s.True(resp.Folio.Transactions[0].Debit.Equal(dec("130")))
	s.True(resp.Folio.Transactions[1].Debit.Equal(dec("100")))
	s.True(resp.Folio.Balance.Equal(dec("230")))

	tax := resp.Folio.Transactions[1].Tax
	s.Require().NotNil(tax)
	s.True(tax.Net.Add(tax.ServiceCharge).Add(tax.VAT).Equal(tax.Gross))

	s.Equal(domain.RoomOccupied, s.room("101").Status)

	_, err := s.svc.Reservation.CheckIn(s.ctx, res.ReservationID, dto.CheckInRequest{}, clerk)
	s.ErrorIs(err, services.ErrInvalidTransition)
	s.Len(s.assertLedger(res.ReservationID).Folio.Transactions, 2)
}

func (s *FrontDeskTestSuite) TestCheckIn_EarlyArrivalNeedsConfirmation() {
	res := s.book("102", day(2025, 6, 2), day(2025, 6, 4))

	_, err := s.svc.Reservation.CheckIn(s.ctx, res.ReservationID, dto.CheckInRequest{}, clerk)
	s.ErrorIs(err, apperrors.ErrValidation)

	updated, err := s.svc.Reservation.CheckIn(s.ctx, res.ReservationID, dto.CheckInRequest{AllowEarly: true}, clerk)
	s.Require().NoError(err)
	s.True(updated.CheckIn.Equal(day(2025, 6, 1)))
	s.True(updated.TotalAmount.Equal(dec("330")), "total %s", updated.TotalAmount)
	s.True(s.assertLedger(res.ReservationID).Folio.Balance.Equal(dec("330")))
}

func (s *FrontDeskTestSuite) TestCheckOut_BlockedUntilSettled() {
	res := s.checkedIn("101", day(2025, 6, 3))
	s.pay(res.ReservationID, "185")
	s.assertLedger(res.ReservationID)

	_, err := s.svc.Reservation.CheckOut(s.ctx, res.ReservationID, clerk)
	var owed *services.OutstandingBalanceError
	s.Require().ErrorAs(err, &owed)
	s.Equal("45.00", owed.Balance.StringFixed(2))
	s.ErrorIs(err, services.ErrOutstandingBalance)

	result := s.pay(res.ReservationID, "45")
	s.False(result.Partial)

	out, err := s.svc.Reservation.CheckOut(s.ctx, res.ReservationID, clerk)
	s.Require().NoError(err)
	s.Equal(domain.StatusCheckedOut, out.Status)

	room := s.room("101")
	s.Equal(domain.RoomVacant, room.Status)
	s.True(room.NeedsCleaning)

	resp := s.assertLedger(res.ReservationID)
	s.Equal(domain.FolioClosed, resp.Folio.Status)

	tasks, err := s.repos.HousekeepingRepo.ListPendingTasks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal("101", tasks[0].RoomID)

	_, err = s.svc.Reservation.CheckOut(s.ctx, res.ReservationID, clerk)
	s.ErrorIs(err, services.ErrInvalidTransition)
}

func (s *FrontDeskTestSuite) TestPayment_CannotExceedOutstanding() {
	res := s.checkedIn("101", day(2025, 6, 2))

	_, err := s.svc.Payment.PostPayment(s.ctx, res.ReservationID, dto.PaymentRequest{
		Method: domain.PaymentCash,
		Amount: dec("131"),
	}, clerk)
	s.ErrorIs(err, apperrors.ErrValidation)

	partial := s.pay(res.ReservationID, "30")
	s.True(partial.Partial)
	s.True(partial.Remaining.Equal(dec("100")))
}

func (s *FrontDeskTestSuite) TestSplitPayment_ValidatedBeforePosting() {
	res := s.checkedIn("101", day(2025, 6, 2))
	s.pay(res.ReservationID, "30")

	_, err := s.svc.Payment.PostSplitPayment(s.ctx, res.ReservationID, dto.SplitPaymentRequest{
		Splits: []dto.PaymentRequest{
			{Method: domain.PaymentCash, Amount: dec("60")},
			{Method: domain.PaymentCard, Amount: dec("30")},
		},
	}, clerk)
	var verr *apperrors.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("splits[1].reference", verr.Field)
	s.Len(s.assertLedger(res.ReservationID).Folio.Transactions, 2)

	splits := []dto.PaymentRequest{
		{Method: domain.PaymentCash, Amount: dec("60")},
		{Method: domain.PaymentCard, Amount: dec("30"), Reference: "AUTH-778"},
	}
	_, err = s.svc.Payment.PostSplitPayment(s.ctx, res.ReservationID, dto.SplitPaymentRequest{Splits: splits}, clerk)
	s.Require().ErrorAs(err, &verr)
	s.Equal("splits", verr.Field)
	s.Len(s.assertLedger(res.ReservationID).Folio.Transactions, 2)

	result, err := s.svc.Payment.PostSplitPayment(s.ctx, res.ReservationID, dto.SplitPaymentRequest{Splits: splits, ConfirmMismatch: true}, clerk)
	s.Require().NoError(err)
	s.Len(result.Posted, 2)
	s.True(result.Balance.Equal(dec("10")))
	s.True(result.Mismatch.Equal(dec("-10")))
	s.assertLedger(res.ReservationID)
}

func (s *FrontDeskTestSuite) TestSplitPayment_SuspendedFolioRejected() {
	res := s.checkedIn("101", day(2025, 6, 2))
	_, err := s.svc.Folio.SuspendFolio(s.ctx, res.ReservationID, clerk)
	s.Require().NoError(err)

	_, err = s.svc.Payment.PostSplitPayment(s.ctx, res.ReservationID, dto.SplitPaymentRequest{
		Splits: []dto.PaymentRequest{{Method: domain.PaymentCash, Amount: dec("130")}},
	}, clerk)
	s.ErrorIs(err, services.ErrFolioSuspended)

	_, err = s.svc.Folio.ResumeFolio(s.ctx, res.ReservationID, clerk)
	s.Require().NoError(err)
	s.pay(res.ReservationID, "130")
}

func (s *FrontDeskTestSuite) TestPostCharge_TaxInclusive() {
	res := s.checkedIn("101", day(2025, 6, 2))

	txn, err := s.svc.Folio.PostCharge(s.ctx, res.ReservationID, dto.PostChargeRequest{
		Category:    domain.CategoryFoodBeverage,
		Description: "Dinner",
		UnitAmount:  dec("22.50"),
		Quantity:    2,
		ApplyTax:    true,
	}, clerk)
	s.Require().NoError(err)
	s.True(txn.Debit.Equal(dec("45")), "debit %s", txn.Debit)
	s.Require().NotNil(txn.Tax)
	s.True(txn.Tax.ServiceChargePercent.Equal(domain.DefaultServiceChargePercent))
	s.True(txn.Tax.Net.Add(txn.Tax.ServiceCharge).Add(txn.Tax.VAT).Equal(dec("45")))

	s.True(s.assertLedger(res.ReservationID).Folio.Balance.Equal(dec("175")))
}

func (s *FrontDeskTestSuite) TestAdjustment_CreditsAndClosedFolio() {
	res := s.checkedIn("101", day(2025, 6, 2))

	txn, err := s.svc.Folio.PostAdjustment(s.ctx, res.ReservationID, dto.AdjustmentRequest{
		Amount:      dec("-30"),
		Description: "Noise complaint",
	}, clerk)
	s.Require().NoError(err)
	s.True(txn.Credit.Equal(dec("30")))
	s.pay(res.ReservationID, "100")

	_, err = s.svc.Folio.CloseFolio(s.ctx, res.ReservationID, clerk)
	s.Require().NoError(err)

	_, err = s.svc.Folio.PostAdjustment(s.ctx, res.ReservationID, dto.AdjustmentRequest{Amount: dec("5"), Description: "late"}, clerk)
	s.ErrorIs(err, services.ErrFolioClosed)
	s.assertLedger(res.ReservationID)
}

func (s *FrontDeskTestSuite) TestNoShow_FirstNight() {
	res := s.book("102", day(2025, 6, 1), day(2025, 6, 3))

	result, err := s.svc.Reservation.MarkNoShow(s.ctx, res.ReservationID, dto.NoShowRequest{
		Policy:      dto.NoShowFirstNight,
		ReleaseRoom: true,
	}, clerk)
	s.Require().NoError(err)
	s.Equal(domain.StatusNoShow, result.Reservation.Status)
	s.True(result.Charge.Equal(dec("130")))
	s.True(result.RoomReleased)

	resp := s.assertLedger(res.ReservationID)
	s.Require().Len(resp.Folio.Transactions, 1)
	s.Equal(domain.CategoryNoShow, resp.Folio.Transactions[0].Category)
	s.True(resp.Folio.Transactions[0].Tax.ServiceCharge.IsZero())
}

func (s *FrontDeskTestSuite) TestNoShow_OnlyOnArrivalDate() {
	res := s.book("102", day(2025, 6, 5), day(2025, 6, 6))

	_, err := s.svc.Reservation.MarkNoShow(s.ctx, res.ReservationID, dto.NoShowRequest{Policy: dto.NoShowNone}, clerk)
	s.ErrorIs(err, apperrors.ErrGate)
}

func (s *FrontDeskTestSuite) TestCancel_WithRefund() {
	res := s.book("102", day(2025, 6, 10), day(2025, 6, 12))
	_, err := s.svc.Payment.PostDeposit(s.ctx, res.ReservationID, dto.PaymentRequest{Method: domain.PaymentCash, Amount: dec("50")}, clerk)
	s.Require().NoError(err)

	_, err = s.svc.Reservation.Cancel(s.ctx, res.ReservationID, dto.CancelReservationRequest{
		Reason:       "flight cancelled",
		RefundAmount: dec("80"),
	}, clerk)
	s.ErrorIs(err, apperrors.ErrValidation)
	current, err := s.svc.Reservation.GetReservation(s.ctx, res.ReservationID)
	s.Require().NoError(err)
	s.Equal(domain.StatusConfirmed, current.Status)

	cancelled, err := s.svc.Reservation.Cancel(s.ctx, res.ReservationID, dto.CancelReservationRequest{
		Reason:       "flight cancelled",
		RefundAmount: dec("30"),
	}, clerk)
	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, cancelled.Status)
	s.True(cancelled.RefundAmount.Equal(dec("30")))

	resp := s.assertLedger(res.ReservationID)
	s.True(resp.Folio.Balance.Equal(dec("-20")), "balance %s", resp.Folio.Balance)

	_, err = s.svc.Reservation.Cancel(s.ctx, res.ReservationID, dto.CancelReservationRequest{}, clerk)
	s.ErrorIs(err, services.ErrInvalidTransition)
}

func (s *FrontDeskTestSuite) TestRefund_BoundedByPayments() {
	res := s.book("102", day(2025, 6, 10), day(2025, 6, 12))
	_, err := s.svc.Payment.PostDeposit(s.ctx, res.ReservationID, dto.PaymentRequest{Method: domain.PaymentCash, Amount: dec("50")}, clerk)
	s.Require().NoError(err)

	_, err = s.svc.Payment.PostRefund(s.ctx, res.ReservationID, dto.RefundRequest{Method: domain.PaymentCash, Amount: dec("50.01"), Reason: "overpaid"}, clerk)
	s.ErrorIs(err, apperrors.ErrValidation)

	result, err := s.svc.Payment.PostRefund(s.ctx, res.ReservationID, dto.RefundRequest{Method: domain.PaymentCash, Amount: dec("50"), Reason: "overpaid"}, clerk)
	s.Require().NoError(err)
	s.True(result.Balance.IsZero())
}

// --- Reschedule ---

func (s *FrontDeskTestSuite) TestReschedule_InHouseRoomMoveRewritesCharges() {
	res := s.checkedIn("101", day(2025, 6, 3))

	result, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "201",
		CheckIn:  dto.NewDate(day(2025, 6, 1)),
		CheckOut: dto.NewDate(day(2025, 6, 3)),
	}, clerk)
	s.Require().NoError(err)
	s.True(result.RoomChanged)
	s.Equal(2, result.FolioChargesUpdated)
	s.True(result.Reservation.TotalAmount.Equal(dec("350")))

	resp := s.assertLedger(res.ReservationID)
	s.True(resp.Folio.Balance.Equal(dec("350")), "balance %s", resp.Folio.Balance)
	s.Equal("201", resp.Folio.RoomID)

	old := s.room("101")
	s.Equal(domain.RoomVacant, old.Status)
	s.True(old.NeedsCleaning)
	s.Equal(domain.RoomOccupied, s.room("201").Status)
	s.Contains(s.activity.actions(), domain.ActionFolioRoomChargesMoved)
}

func (s *FrontDeskTestSuite) TestReschedule_ConflictChangesNothing() {
	blocker := s.book("201", day(2025, 6, 10), day(2025, 6, 12))
	res := s.book("101", day(2025, 6, 10), day(2025, 6, 12))

	_, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "201",
		CheckIn:  dto.NewDate(day(2025, 6, 11)),
		CheckOut: dto.NewDate(day(2025, 6, 13)),
	}, clerk)
	var conflict *apperrors.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(blocker.ReservationID, conflict.ConflictingReservationID)

	current, err := s.svc.Reservation.GetReservation(s.ctx, res.ReservationID)
	s.Require().NoError(err)
	s.Equal("101", current.RoomID)
	s.True(current.CheckIn.Equal(day(2025, 6, 10)))
}

func (s *FrontDeskTestSuite) TestReschedule_InHouseArrivalFixed() {
	res := s.checkedIn("101", day(2025, 6, 3))

	_, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "101",
		CheckIn:  dto.NewDate(day(2025, 6, 2)),
		CheckOut: dto.NewDate(day(2025, 6, 4)),
	}, clerk)
	s.ErrorIs(err, apperrors.ErrValidation)

	result, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "101",
		CheckIn:  dto.NewDate(day(2025, 6, 1)),
		CheckOut: dto.NewDate(day(2025, 6, 4)),
	}, clerk)
	s.Require().NoError(err)
	s.True(result.Reservation.TotalAmount.Equal(dec("330")))
	s.assertLedger(res.ReservationID)
}

func (s *FrontDeskTestSuite) TestReschedule_ArrivalOnBusinessDayIsFrozen() {
	res := s.book("101", day(2025, 6, 1), day(2025, 6, 3))

	_, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "102",
		CheckIn:  dto.NewDate(day(2025, 6, 1)),
		CheckOut: dto.NewDate(day(2025, 6, 3)),
	}, clerk)
	s.ErrorIs(err, apperrors.ErrGate)

	current, err := s.svc.Reservation.GetReservation(s.ctx, res.ReservationID)
	s.Require().NoError(err)
	s.Equal("101", current.RoomID)
}

func (s *FrontDeskTestSuite) TestReschedule_StaleArrivalCannotMove() {
	res := s.book("101", day(2025, 6, 2), day(2025, 6, 4))
	s.Require().NoError(s.repos.SettingsRepo.SetLastAuditDate(s.ctx, day(2025, 6, 2)))

	_, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "102",
		CheckIn:  dto.NewDate(day(2025, 6, 10)),
		CheckOut: dto.NewDate(day(2025, 6, 12)),
	}, clerk)
	var gate *apperrors.GateError
	s.Require().ErrorAs(err, &gate)
	s.True(gate.BlockedDate.Equal(day(2025, 6, 2)))

	current, err := s.svc.Reservation.GetReservation(s.ctx, res.ReservationID)
	s.Require().NoError(err)
	s.Equal("101", current.RoomID)
	s.True(current.CheckIn.Equal(day(2025, 6, 2)))
	s.True(current.CheckOut.Equal(day(2025, 6, 4)))
}

func (s *FrontDeskTestSuite) TestReschedule_InHouseMoveKeepsClosedNights() {
	res := s.checkedIn("101", day(2025, 6, 4))
	s.Require().NoError(s.repos.SettingsRepo.SetLastAuditDate(s.ctx, day(2025, 6, 2)))

	_, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "101",
		CheckIn:  dto.NewDate(day(2025, 6, 1)),
		CheckOut: dto.NewDate(day(2025, 6, 2)),
	}, clerk)
	s.ErrorIs(err, apperrors.ErrGate, "dropping audited nights")

	result, err := s.svc.Reschedule.Reschedule(s.ctx, res.ReservationID, dto.RescheduleRequest{
		RoomID:   "201",
		CheckIn:  dto.NewDate(day(2025, 6, 1)),
		CheckOut: dto.NewDate(day(2025, 6, 4)),
	}, clerk)
	s.Require().NoError(err)
	s.Equal(1, result.FolioChargesUpdated)
	s.True(result.Reservation.TotalAmount.Equal(dec("390")), "total %s", result.Reservation.TotalAmount)

	resp := s.assertLedger(res.ReservationID)
	s.True(resp.Folio.Balance.Equal(dec("390")), "balance %s", resp.Folio.Balance)
	charges := make(map[string]domain.FolioTransaction)
	for _, txn := range resp.Folio.Transactions {
		if txn.IsRoomCharge() {
			charges[txn.StayDate.Format(time.DateOnly)] = txn
		}
	}
	s.Require().Len(charges, 3)
	s.True(charges["2025-06-01"].Debit.Equal(dec("130")))
	s.Contains(charges["2025-06-01"].Description, "Room 101")
	s.True(charges["2025-06-02"].Debit.Equal(dec("100")))
	s.True(charges["2025-06-03"].Debit.Equal(dec("160")))
	s.Contains(charges["2025-06-03"].Description, "Room 201")

	tasks, err := s.repos.HousekeepingRepo.ListPendingTasks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal("101", tasks[0].RoomID)
	s.Equal(domain.TaskCheckoutClean, tasks[0].Type)
}

// --- Concurrency ---

func (s *FrontDeskTestSuite) TestConcurrency_OneBookingPerRoom() {
	const terminals = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		booked    int
		conflicts int
	)
	for i := 0; i < terminals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Reservation.CreateReservation(s.ctx, dto.CreateReservationRequest{
				RoomID:   "101",
				Guest:    dto.GuestRequest{Name: "Walk-in"},
				CheckIn:  dto.NewDate(day(2025, 6, 10)),
				CheckOut: dto.NewDate(day(2025, 6, 12)),
				Adults:   1,
			}, clerk)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				booked++
			} else if errors.Is(err, apperrors.ErrConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, booked)
	s.Equal(terminals-1, conflicts)
}

func (s *FrontDeskTestSuite) TestConcurrency_PaymentsNeverOverpay() {
	res := s.checkedIn("101", day(2025, 6, 3))

	const terminals = 30
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < terminals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Payment.PostPayment(s.ctx, res.ReservationID, dto.PaymentRequest{
				Method: domain.PaymentCash,
				Amount: dec("10"),
			}, clerk)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
			} else if errors.Is(err, apperrors.ErrValidation) {
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(23, accepted)
	s.Equal(terminals-23, rejected)
	resp := s.assertLedger(res.ReservationID)
	s.True(resp.Folio.Balance.IsZero(), "balance %s", resp.Folio.Balance)
}

// --- Listing ---

func (s *FrontDeskTestSuite) TestListReservations_Pages() {
	s.book("101", day(2025, 6, 2), day(2025, 6, 3))
	s.book("101", day(2025, 6, 3), day(2025, 6, 4))
	s.book("102", day(2025, 6, 4), day(2025, 6, 5))

	page, err := s.svc.Reservation.ListReservations(s.ctx, dto.ListReservationsParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(page.Reservations, 2)
	s.Require().NotNil(page.NextToken)

	next, err := s.svc.Reservation.ListReservations(s.ctx, dto.ListReservationsParams{Limit: 2, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Len(next.Reservations, 1)
	s.Nil(next.NextToken)

	_, err = s.svc.Reservation.ListReservations(s.ctx, dto.ListReservationsParams{Status: []string{"LOST"}})
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Settings ---

func (s *FrontDeskTestSuite) TestSettings_CacheAndDefaults() {
	rate, err := s.svc.Settings.TaxRateFor(s.ctx, domain.CategoryLaundry)
	s.Require().NoError(err)
	s.True(rate.ServiceChargePercent.Equal(decimal.NewFromInt(10)))
	s.True(rate.VATPercent.Equal(decimal.NewFromInt(18)))

	tables, err := s.svc.Settings.RateTables(s.ctx)
	s.Require().NoError(err)
	s.True(tables["STD"].WeekdayRate.Equal(dec("100")))

	changed := []domain.RateTable{{RoomTypeCode: "STD", WeekdayRate: dec("150"), WeekendRate: dec("150")}}
	s.store.ReplaceSettings(changed, s.seedData.Seasons, s.seedData.WeekdayModifiers, s.seedData.SpecialDates, s.seedData.TaxRates)

	tables, err = s.svc.Settings.RateTables(s.ctx)
	s.Require().NoError(err)
	s.True(tables["STD"].WeekdayRate.Equal(dec("100")), "cached value expected")

	s.svc.Settings.Invalidate()
	tables, err = s.svc.Settings.RateTables(s.ctx)
	s.Require().NoError(err)
	s.True(tables["STD"].WeekdayRate.Equal(dec("150")))
}

func TestFrontDesk(t *testing.T) {
	suite.Run(t, new(FrontDeskTestSuite))
}

// --- Dependency failures ---

type failingSettings struct {
	portsrepo.SettingsReader
	err error
}

func (f failingSettings) ListRateTables(context.Context) ([]domain.RateTable, error) {
	return nil, f.err
}

func TestPricing_SettingsFailureIsDependencyError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := memory.NewRepositoryProvider(store)

	settings := services.NewSettingsService(failingSettings{SettingsReader: repos.SettingsRepo, err: errors.New("connection refused")}, time.Minute)
	pricing := services.NewPricingService(settings, repos.RoomRepo, services.BaseService{})

	room := domain.Room{RoomID: "101", RoomTypeCode: "STD", BasePrice: decimal.NewFromInt(100)}
	_, err := pricing.QuoteStay(ctx, room, domain.DateRange{CheckIn: day(2025, 6, 2), CheckOut: day(2025, 6, 3)})
	if !errors.Is(err, apperrors.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
