package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/core/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/handlers"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/config"
)

type HandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	cfg    *config.Config
	userID string

	reservations *MockReservationService
	folios       *MockFolioService
	payments     *MockPaymentService
	reschedules  *MockRescheduleService
	pricing      *MockPricingService
	availability *MockAvailabilityService
	calendar     *MockCalendarService
	rooms        *MockRoomService
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// generateTestToken creates a signed JWT the real AuthMiddleware accepts.
func (s *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    s.cfg.JWTIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.cfg = &config.Config{
		IsProduction:      true,
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTIssuer:         "frontdesk-test",
		DependencyRetries: 2,
	}
	s.userID = uuid.NewString()

	s.reservations = new(MockReservationService)
	s.folios = new(MockFolioService)
	s.payments = new(MockPaymentService)
	s.reschedules = new(MockRescheduleService)
	s.pricing = new(MockPricingService)
	s.availability = new(MockAvailabilityService)
	s.calendar = new(MockCalendarService)
	s.rooms = new(MockRoomService)

	container := &portssvc.ServiceContainer{
		Pricing:      s.pricing,
		Calendar:     s.calendar,
		Availability: s.availability,
		Room:         s.rooms,
		Reservation:  s.reservations,
		Folio:        s.folios,
		Payment:      s.payments,
		Reschedule:   s.reschedules,
	}
	handlers.RegisterRoutes(s.router, s.cfg, container)
}

func (s *HandlerTestSuite) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	var req *http.Request
	if reader != nil {
		req, _ = http.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+s.generateTestToken(s.userID))

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func (s *HandlerTestSuite) TestHealth_NoAuth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlerTestSuite) TestAPI_RequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.rooms.AssertNotCalled(s.T(), "ListRooms", mock.Anything)
}

func (s *HandlerTestSuite) TestCreateReservation_Success() {
	created := &domain.Reservation{
		ReservationID: uuid.NewString(),
		RoomID:        "101",
		Guest:         domain.Guest{Name: "Ada Lovelace"},
		CheckIn:       day(2025, 6, 1),
		CheckOut:      day(2025, 6, 3),
		Adults:        2,
		TotalAmount:   decimal.NewFromInt(200),
		Status:        domain.StatusConfirmed,
	}
	s.reservations.On("CreateReservation", mock.Anything,
		mock.MatchedBy(func(r dto.CreateReservationRequest) bool {
			return r.RoomID == "101" && r.Guest.Name == "Ada Lovelace" && r.CheckIn.Equal(day(2025, 6, 1))
		}),
		s.userID,
	).Return(created, nil).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations", map[string]any{
		"roomID":   "101",
		"guest":    map[string]any{"name": "Ada Lovelace"},
		"checkIn":  "2025-06-01",
		"checkOut": "2025-06-03",
		"adults":   2,
	})

	s.Equal(http.StatusCreated, w.Code)
	s.Equal(created.ReservationID, body["reservationID"])
	s.Equal("200", body["totalAmount"])
	s.reservations.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestCreateReservation_BindingFailureSkipsService() {
	w, body := s.do(http.MethodPost, "/api/v1/reservations", map[string]any{
		"roomID":   "101",
		"guest":    map[string]any{"phone": "555"},
		"checkIn":  "2025-06-01",
		"checkOut": "2025-06-03",
		"adults":   0,
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(body["error"], "Invalid request format")
	s.reservations.AssertNotCalled(s.T(), "CreateReservation", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCreateReservation_ConflictNamesBlockingReservation() {
	s.reservations.On("CreateReservation", mock.Anything, mock.Anything, s.userID).
		Return(nil, &apperrors.ConflictError{RoomID: "101", ConflictingReservationID: "res-A", Message: "room is already booked"}).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations", map[string]any{
		"roomID":   "101",
		"guest":    map[string]any{"name": "Grace Hopper"},
		"checkIn":  "2025-06-04",
		"checkOut": "2025-06-06",
		"adults":   1,
	})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("res-A", body["conflictingReservationID"])
	s.Equal("101", body["roomID"])
}

func (s *HandlerTestSuite) TestCreateReservation_GateRejection() {
	s.reservations.On("CreateReservation", mock.Anything, mock.Anything, s.userID).
		Return(nil, &apperrors.GateError{BlockedDate: day(2025, 5, 30), BusinessDay: day(2025, 6, 1), Operation: "create reservation"}).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations", map[string]any{
		"roomID":   "101",
		"guest":    map[string]any{"name": "Grace Hopper"},
		"checkIn":  "2025-05-30",
		"checkOut": "2025-06-02",
		"adults":   1,
	})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("2025-05-30", body["blockedDate"])
	s.Equal("2025-06-01", body["businessDay"])
}

func (s *HandlerTestSuite) TestListReservations_BindsQuery() {
	next := "tok"
	s.reservations.On("ListReservations", mock.Anything,
		mock.MatchedBy(func(p dto.ListReservationsParams) bool {
			return p.Limit == 10 && len(p.Status) == 2 && p.RoomID == "101" &&
				p.From.Format("2006-01-02") == "2025-06-01"
		}),
	).Return(&dto.ListReservationsResponse{Reservations: []domain.Reservation{{ReservationID: "r1"}}, NextToken: &next}, nil).Once()

	w, body := s.do(http.MethodGet, "/api/v1/reservations?roomID=101&status=CONFIRMED&status=CHECKED_IN&from=2025-06-01&limit=10", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("tok", body["nextToken"])
	s.reservations.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestListReservations_LimitOutOfRange() {
	w, _ := s.do(http.MethodGet, "/api/v1/reservations?limit=1000", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.reservations.AssertNotCalled(s.T(), "ListReservations", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCheckIn_WithoutBody() {
	s.reservations.On("CheckIn", mock.Anything, "res-1", dto.CheckInRequest{}, s.userID).
		Return(&domain.Reservation{ReservationID: "res-1", Status: domain.StatusCheckedIn}, nil).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/check-in", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(string(domain.StatusCheckedIn), body["status"])
}

func (s *HandlerTestSuite) TestCheckOut_OutstandingBalance() {
	s.reservations.On("CheckOut", mock.Anything, "res-1", s.userID).
		Return(nil, &services.OutstandingBalanceError{Balance: decimal.RequireFromString("45")}).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/check-out", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("45.00", body["balance"])
}

func (s *HandlerTestSuite) TestCheckIn_InvalidTransition() {
	err := errors.Join(services.ErrInvalidTransition, apperrors.NewValidationError("status", "cannot check in a reservation that is CANCELLED"))
	s.reservations.On("CheckIn", mock.Anything, "res-1", mock.Anything, s.userID).Return(nil, err).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/check-in", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("status", body["field"])
}

func (s *HandlerTestSuite) TestReschedule_Success() {
	s.reschedules.On("Reschedule", mock.Anything, "res-1",
		mock.MatchedBy(func(r dto.RescheduleRequest) bool { return r.RoomID == "201" }), s.userID,
	).Return(&dto.RescheduleResult{RoomChanged: true, FolioChargesUpdated: 2}, nil).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/reschedule", map[string]any{
		"roomID":   "201",
		"checkIn":  "2025-06-10",
		"checkOut": "2025-06-12",
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["roomChanged"])
}

func (s *HandlerTestSuite) TestPostPayment_UnknownMethod() {
	w, _ := s.do(http.MethodPost, "/api/v1/reservations/res-1/folio/payments", map[string]any{
		"method": "BITCOIN",
		"amount": "10",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.payments.AssertNotCalled(s.T(), "PostPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestPostPayment_DependencyFailureIsNotRetried() {
	s.payments.On("PostPayment", mock.Anything, "res-1", mock.Anything, s.userID).
		Return(nil, apperrors.NewDependencyError("load folio", errors.New("connection reset"))).Once()

	w, _ := s.do(http.MethodPost, "/api/v1/reservations/res-1/folio/payments", map[string]any{
		"method": "CASH",
		"amount": "10",
	})

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.payments.AssertNumberOfCalls(s.T(), "PostPayment", 1)
}

func (s *HandlerTestSuite) TestPostCharge_ClosedFolio() {
	s.folios.On("PostCharge", mock.Anything, "res-1", mock.Anything, s.userID).
		Return(nil, services.ErrFolioClosed).Once()

	w, _ := s.do(http.MethodPost, "/api/v1/reservations/res-1/folio/charges", map[string]any{
		"category":    "FOOD_BEVERAGE",
		"description": "Dinner",
		"unitAmount":  "50",
		"quantity":    1,
		"applyTax":    true,
	})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestSplitPayment_PartialFailureReturnsPostedSplits() {
	failed := 1
	partial := &dto.SplitPaymentResult{
		Posted:      []domain.FolioTransaction{{TransactionID: "t1", Credit: decimal.NewFromInt(60)}},
		FailedIndex: &failed,
		FailedError: services.ErrFolioSuspended.Error(),
		Balance:     decimal.NewFromInt(40),
	}
	s.payments.On("PostSplitPayment", mock.Anything, "res-1", mock.Anything, s.userID).
		Return(partial, &services.SplitPaymentError{Index: 1, Err: services.ErrFolioSuspended}).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/folio/split-payments", map[string]any{
		"splits": []map[string]any{
			{"method": "CASH", "amount": "60"},
			{"method": "CARD", "amount": "40", "reference": "AUTH-1"},
		},
	})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal(float64(1), body["failedIndex"])
	s.Len(body["posted"], 1)
}

func (s *HandlerTestSuite) TestSplitPayment_RejectedBeforePosting() {
	s.payments.On("PostSplitPayment", mock.Anything, "res-1", mock.Anything, s.userID).
		Return(nil, apperrors.NewValidationError("splits[1].reference", "reference is required for CARD")).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/folio/split-payments", map[string]any{
		"splits": []map[string]any{
			{"method": "CASH", "amount": "60"},
			{"method": "CARD", "amount": "40"},
		},
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("splits[1].reference", body["field"])
}

func (s *HandlerTestSuite) TestGetFolio_RetriesDependencyFailure() {
	resp := &dto.FolioResponse{
		Folio:        &domain.Folio{FolioID: "f1", ReservationID: "res-1", Status: domain.FolioOpen},
		TotalDebits:  decimal.NewFromInt(245),
		TotalCredits: decimal.NewFromInt(200),
	}
	s.folios.On("GetFolio", mock.Anything, "res-1").
		Return(nil, apperrors.NewDependencyError("load folio", errors.New("timeout"))).Once()
	s.folios.On("GetFolio", mock.Anything, "res-1").Return(resp, nil).Once()

	w, body := s.do(http.MethodGet, "/api/v1/reservations/res-1/folio", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("245", body["totalDebits"])
	s.folios.AssertNumberOfCalls(s.T(), "GetFolio", 2)
}

func (s *HandlerTestSuite) TestGetFolio_NotFoundIsNotRetried() {
	s.folios.On("GetFolio", mock.Anything, "res-9").Return(nil, services.ErrFolioNotFound).Once()

	w, _ := s.do(http.MethodGet, "/api/v1/reservations/res-9/folio", nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.folios.AssertNumberOfCalls(s.T(), "GetFolio", 1)
}

func (s *HandlerTestSuite) TestVerifyFolio_InvariantViolation() {
	s.folios.On("VerifyFolio", mock.Anything, "res-1").
		Return(&apperrors.InvariantError{FolioID: "f1", TransactionID: "t3", Stored: "10.00", Expected: "12.00"}).Once()

	w, body := s.do(http.MethodGet, "/api/v1/reservations/res-1/folio/verify", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("f1", body["folioID"])
}

func (s *HandlerTestSuite) TestSuspendFolio() {
	s.folios.On("SuspendFolio", mock.Anything, "res-1", s.userID).
		Return(&domain.Folio{FolioID: "f1", Status: domain.FolioSuspended}, nil).Once()

	w, body := s.do(http.MethodPost, "/api/v1/reservations/res-1/folio/suspend", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(string(domain.FolioSuspended), body["status"])
}

func (s *HandlerTestSuite) TestBusinessDay() {
	s.calendar.On("Calendar", mock.Anything).
		Return(domain.BusinessCalendar{LastAuditDate: day(2025, 5, 31)}, nil).Once()

	w, body := s.do(http.MethodGet, "/api/v1/business-day", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("2025-05-31", body["lastAuditDate"])
	s.Equal("2025-06-01", body["businessDay"])
}

func (s *HandlerTestSuite) TestCheckAvailability_ConflictInBody() {
	in, out := dto.NewDate(day(2025, 6, 1)), dto.NewDate(day(2025, 6, 5))
	s.availability.On("CheckAvailability", mock.Anything, mock.Anything).
		Return(&dto.AvailabilityResponse{Available: false, ConflictingReservationID: "res-A", ConflictCheckIn: &in, ConflictCheckOut: &out}, nil).Once()

	w, body := s.do(http.MethodPost, "/api/v1/availability", map[string]any{
		"roomID":   "101",
		"checkIn":  "2025-06-04",
		"checkOut": "2025-06-06",
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(false, body["available"])
	s.Equal("2025-06-05", body["conflictCheckOut"])
}

func (s *HandlerTestSuite) TestGetRoom_NotFound() {
	s.rooms.On("GetRoom", mock.Anything, "999").Return(nil, apperrors.ErrNotFound).Once()

	w, _ := s.do(http.MethodGet, "/api/v1/rooms/999", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
