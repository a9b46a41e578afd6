package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

// --- Mock ReservationService ---
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) reservation(args mock.Arguments) (*domain.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, reservationID))
}
func (m *MockReservationService) ListReservations(ctx context.Context, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReservationsResponse), args.Error(1)
}
func (m *MockReservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest, userID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, req, userID))
}
func (m *MockReservationService) UpdateReservation(ctx context.Context, reservationID string, req dto.UpdateReservationRequest, userID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, reservationID, req, userID))
}
func (m *MockReservationService) CheckIn(ctx context.Context, reservationID string, req dto.CheckInRequest, userID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, reservationID, req, userID))
}
func (m *MockReservationService) CheckOut(ctx context.Context, reservationID string, userID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, reservationID, userID))
}
func (m *MockReservationService) MarkNoShow(ctx context.Context, reservationID string, req dto.NoShowRequest, userID string) (*dto.NoShowResult, error) {
	args := m.Called(ctx, reservationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NoShowResult), args.Error(1)
}
func (m *MockReservationService) Cancel(ctx context.Context, reservationID string, req dto.CancelReservationRequest, userID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, reservationID, req, userID))
}

var _ portssvc.ReservationSvcFacade = (*MockReservationService)(nil)

// --- Mock FolioService ---
type MockFolioService struct {
	mock.Mock
}

func (m *MockFolioService) folio(args mock.Arguments) (*domain.Folio, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioService) transaction(args mock.Arguments) (*domain.FolioTransaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockFolioService) GetFolio(ctx context.Context, reservationID string) (*dto.FolioResponse, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FolioResponse), args.Error(1)
}
func (m *MockFolioService) VerifyFolio(ctx context.Context, reservationID string) error {
	return m.Called(ctx, reservationID).Error(0)
}
func (m *MockFolioService) OpenFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	return m.folio(m.Called(ctx, reservationID, userID))
}
func (m *MockFolioService) PostCharge(ctx context.Context, reservationID string, req dto.PostChargeRequest, userID string) (*domain.FolioTransaction, error) {
	return m.transaction(m.Called(ctx, reservationID, req, userID))
}
func (m *MockFolioService) PostAdjustment(ctx context.Context, reservationID string, req dto.AdjustmentRequest, userID string) (*domain.FolioTransaction, error) {
	return m.transaction(m.Called(ctx, reservationID, req, userID))
}
func (m *MockFolioService) CloseFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	return m.folio(m.Called(ctx, reservationID, userID))
}
func (m *MockFolioService) SuspendFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	return m.folio(m.Called(ctx, reservationID, userID))
}
func (m *MockFolioService) ResumeFolio(ctx context.Context, reservationID string, userID string) (*domain.Folio, error) {
	return m.folio(m.Called(ctx, reservationID, userID))
}

var _ portssvc.FolioSvcFacade = (*MockFolioService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) result(args mock.Arguments) (*dto.PaymentResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) PostPayment(ctx context.Context, reservationID string, req dto.PaymentRequest, userID string) (*dto.PaymentResult, error) {
	return m.result(m.Called(ctx, reservationID, req, userID))
}
func (m *MockPaymentService) PostDeposit(ctx context.Context, reservationID string, req dto.PaymentRequest, userID string) (*dto.PaymentResult, error) {
	return m.result(m.Called(ctx, reservationID, req, userID))
}
func (m *MockPaymentService) PostRefund(ctx context.Context, reservationID string, req dto.RefundRequest, userID string) (*dto.PaymentResult, error) {
	return m.result(m.Called(ctx, reservationID, req, userID))
}
func (m *MockPaymentService) PostSplitPayment(ctx context.Context, reservationID string, req dto.SplitPaymentRequest, userID string) (*dto.SplitPaymentResult, error) {
	args := m.Called(ctx, reservationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SplitPaymentResult), args.Error(1)
}

var _ portssvc.PaymentSvc = (*MockPaymentService)(nil)

// --- Mock RescheduleService ---
type MockRescheduleService struct {
	mock.Mock
}

func (m *MockRescheduleService) Reschedule(ctx context.Context, reservationID string, req dto.RescheduleRequest, userID string) (*dto.RescheduleResult, error) {
	args := m.Called(ctx, reservationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RescheduleResult), args.Error(1)
}

var _ portssvc.RescheduleSvc = (*MockRescheduleService)(nil)

// --- Mock pricing, availability, calendar and room services ---
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) NightlyRate(ctx context.Context, room domain.Room, date time.Time) (domain.NightlyRate, error) {
	args := m.Called(ctx, room, date)
	return args.Get(0).(domain.NightlyRate), args.Error(1)
}
func (m *MockPricingService) QuoteStay(ctx context.Context, room domain.Room, stay domain.DateRange) (*domain.StayQuote, error) {
	args := m.Called(ctx, room, stay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StayQuote), args.Error(1)
}
func (m *MockPricingService) Quote(ctx context.Context, req dto.QuoteRequest) (*domain.StayQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StayQuote), args.Error(1)
}

var _ portssvc.PricingSvc = (*MockPricingService)(nil)

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) EnsureAvailable(ctx context.Context, roomID string, stay domain.DateRange, excludeReservationID string) error {
	return m.Called(ctx, roomID, stay, excludeReservationID).Error(0)
}
func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AvailabilityResponse), args.Error(1)
}

var _ portssvc.AvailabilitySvc = (*MockAvailabilityService)(nil)

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) Calendar(ctx context.Context) (domain.BusinessCalendar, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BusinessCalendar), args.Error(1)
}
func (m *MockCalendarService) EnsureOpen(ctx context.Context, operation string, date time.Time) error {
	return m.Called(ctx, operation, date).Error(0)
}
func (m *MockCalendarService) EnsureOpenRange(ctx context.Context, operation string, stay domain.DateRange) error {
	return m.Called(ctx, operation, stay).Error(0)
}
func (m *MockCalendarService) EnsureAfterBusinessDay(ctx context.Context, operation string, date time.Time) error {
	return m.Called(ctx, operation, date).Error(0)
}

var _ portssvc.CalendarSvc = (*MockCalendarService)(nil)

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

var _ portssvc.RoomSvc = (*MockRoomService)(nil)
