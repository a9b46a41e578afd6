package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
)

type pricingHandler struct {
	pricingService      portssvc.PricingSvc
	availabilityService portssvc.AvailabilitySvc
	calendarService     portssvc.CalendarSvc
	retry               *readRetrier
}

func newPricingHandler(ps portssvc.PricingSvc, as portssvc.AvailabilitySvc, cs portssvc.CalendarSvc, retry *readRetrier) *pricingHandler {
	return &pricingHandler{pricingService: ps, availabilityService: as, calendarService: cs, retry: retry}
}

func registerPricingRoutes(rg *gin.RouterGroup, h *pricingHandler) {
	rg.POST("/quotes", h.quote)
	rg.POST("/availability", h.checkAvailability)
	rg.GET("/business-day", h.getBusinessDay)
}

// quote godoc
// @Summary Price a stay
// @Description Prices every night of the stay and returns the nightly breakdown with the applied modifiers.
// @Tags pricing
// @Accept json
// @Produce json
// @Param quote body dto.QuoteRequest true "Room and stay"
// @Success 200 {object} domain.StayQuote
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Room not found"
// @Security BearerAuth
// @Router /quotes [post]
func (h *pricingHandler) quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var quote *domain.StayQuote
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		quote, err = h.pricingService.Quote(ctx, req)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to quote stay")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// checkAvailability godoc
// @Summary Check room availability
// @Description A conflict is reported in the body, not as an error status.
// @Tags pricing
// @Accept json
// @Produce json
// @Param availability body dto.AvailabilityRequest true "Room and stay"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /availability [post]
func (h *pricingHandler) checkAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var resp *dto.AvailabilityResponse
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		resp, err = h.availabilityService.CheckAvailability(ctx, req)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getBusinessDay godoc
// @Summary Current business day
// @Tags pricing
// @Produce json
// @Success 200 {object} dto.BusinessDayResponse
// @Security BearerAuth
// @Router /business-day [get]
func (h *pricingHandler) getBusinessDay(c *gin.Context) {
	var cal domain.BusinessCalendar
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		cal, err = h.calendarService.Calendar(ctx)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to read business calendar")
		return
	}
	c.JSON(http.StatusOK, dto.BusinessDayResponse{
		LastAuditDate: dto.NewDate(cal.LastAuditDate),
		BusinessDay:   dto.NewDate(cal.BusinessDay()),
	})
}
