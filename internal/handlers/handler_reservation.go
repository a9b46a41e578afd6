package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
)

type reservationHandler struct {
	reservationService portssvc.ReservationSvcFacade
	rescheduleService  portssvc.RescheduleSvc
	retry              *readRetrier
}

func newReservationHandler(rs portssvc.ReservationSvcFacade, rsch portssvc.RescheduleSvc, retry *readRetrier) *reservationHandler {
	return &reservationHandler{reservationService: rs, rescheduleService: rsch, retry: retry}
}

func registerReservationRoutes(rg *gin.RouterGroup, h *reservationHandler) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.createReservation)
		reservations.GET("", h.listReservations)
		reservations.GET("/:reservationID", h.getReservation)
		reservations.PATCH("/:reservationID", h.updateReservation)
		reservations.POST("/:reservationID/check-in", h.checkIn)
		reservations.POST("/:reservationID/check-out", h.checkOut)
		reservations.POST("/:reservationID/no-show", h.markNoShow)
		reservations.POST("/:reservationID/cancel", h.cancel)
		reservations.POST("/:reservationID/reschedule", h.reschedule)
	}
}

// createReservation godoc
// @Summary Create a reservation
// @Description Validates the stay, checks the business day and availability, and prices the booking.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservation body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} domain.Reservation
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Room already booked"
// @Failure 422 {object} map[string]string "Date closed by the business day"
// @Security BearerAuth
// @Router /reservations [post]
func (h *reservationHandler) createReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	res, err := h.reservationService.CreateReservation(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create reservation")
		return
	}

	logger.Info("Reservation created", slog.String("reservation_id", res.ReservationID), slog.String("room_id", res.RoomID))
	c.JSON(http.StatusCreated, res)
}

// listReservations godoc
// @Summary List reservations
// @Description Pages through reservations ordered by arrival. Pass nextToken from the previous page to continue.
// @Tags reservations
// @Produce json
// @Param roomID query string false "Room ID"
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param from query string false "Stays ending after this date (YYYY-MM-DD)"
// @Param to query string false "Stays starting before this date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListReservationsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /reservations [get]
func (h *reservationHandler) listReservations(c *gin.Context) {
	var params dto.ListReservationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	var resp *dto.ListReservationsResponse
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		resp, err = h.reservationService.ListReservations(ctx, params)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getReservation godoc
// @Summary Get a reservation
// @Tags reservations
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} domain.Reservation
// @Failure 404 {object} map[string]string "Reservation not found"
// @Security BearerAuth
// @Router /reservations/{reservationID} [get]
func (h *reservationHandler) getReservation(c *gin.Context) {
	reservationID := c.Param("reservationID")
	var res *domain.Reservation
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		res, err = h.reservationService.GetReservation(ctx, reservationID)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to get reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// updateReservation godoc
// @Summary Edit a reservation
// @Description Changes guest details, occupancy, source or notes. Dates and room move through reschedule.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param changes body dto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} domain.Reservation
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Concurrent update"
// @Security BearerAuth
// @Router /reservations/{reservationID} [patch]
func (h *reservationHandler) updateReservation(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	res, err := h.reservationService.UpdateReservation(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// checkIn godoc
// @Summary Check a guest in
// @Description Occupies the room, opens the folio and posts one room charge per night.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param options body dto.CheckInRequest false "Check-in options"
// @Success 200 {object} domain.Reservation
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 409 {object} map[string]string "Room occupied"
// @Failure 422 {object} map[string]string "Date closed by the business day"
// @Security BearerAuth
// @Router /reservations/{reservationID}/check-in [post]
func (h *reservationHandler) checkIn(c *gin.Context) {
	var req dto.CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	res, err := h.reservationService.CheckIn(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to check in")
		return
	}
	c.JSON(http.StatusOK, res)
}

// checkOut godoc
// @Summary Check a guest out
// @Description Requires a zero folio balance. Closes the folio and queues the room for cleaning.
// @Tags reservations
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} domain.Reservation
// @Failure 400 {object} map[string]string "Outstanding balance or invalid transition"
// @Security BearerAuth
// @Router /reservations/{reservationID}/check-out [post]
func (h *reservationHandler) checkOut(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	res, err := h.reservationService.CheckOut(c.Request.Context(), c.Param("reservationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to check out")
		return
	}
	c.JSON(http.StatusOK, res)
}

// markNoShow godoc
// @Summary Mark a reservation as no-show
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param policy body dto.NoShowRequest true "No-show charge policy"
// @Success 200 {object} dto.NoShowResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reservations/{reservationID}/no-show [post]
func (h *reservationHandler) markNoShow(c *gin.Context) {
	var req dto.NoShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.reservationService.MarkNoShow(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to mark no-show")
		return
	}
	c.JSON(http.StatusOK, result)
}

// cancel godoc
// @Summary Cancel a reservation
// @Description Optionally refunds part of what was paid before cancelling.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param cancellation body dto.CancelReservationRequest false "Reason and refund"
// @Success 200 {object} domain.Reservation
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 422 {object} map[string]string "Date closed by the business day"
// @Security BearerAuth
// @Router /reservations/{reservationID}/cancel [post]
func (h *reservationHandler) cancel(c *gin.Context) {
	var req dto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	res, err := h.reservationService.Cancel(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// reschedule godoc
// @Summary Move a reservation
// @Description Changes room and/or dates atomically. Room charges on an open folio are rewritten.
// @Tags reservations
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param target body dto.RescheduleRequest true "New room and stay"
// @Success 200 {object} dto.RescheduleResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Target room taken"
// @Failure 422 {object} map[string]string "Date closed by the business day"
// @Security BearerAuth
// @Router /reservations/{reservationID}/reschedule [post]
func (h *reservationHandler) reschedule(c *gin.Context) {
	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.rescheduleService.Reschedule(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to reschedule reservation")
		return
	}
	c.JSON(http.StatusOK, result)
}
