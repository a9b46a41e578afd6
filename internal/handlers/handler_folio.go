package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/core/services"
	"github.com/SscSPs/hotel_frontdesk/internal/dto"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
)

type folioHandler struct {
	folioService   portssvc.FolioSvcFacade
	paymentService portssvc.PaymentSvc
	retry          *readRetrier
}

func newFolioHandler(fs portssvc.FolioSvcFacade, ps portssvc.PaymentSvc, retry *readRetrier) *folioHandler {
	return &folioHandler{folioService: fs, paymentService: ps, retry: retry}
}

// Folios hang off their reservation; there is one per stay.
func registerFolioRoutes(rg *gin.RouterGroup, h *folioHandler) {
	folio := rg.Group("/reservations/:reservationID/folio")
	{
		folio.GET("", h.getFolio)
		folio.GET("/verify", h.verifyFolio)
		folio.POST("/charges", h.postCharge)
		folio.POST("/adjustments", h.postAdjustment)
		folio.POST("/payments", h.postPayment)
		folio.POST("/split-payments", h.postSplitPayment)
		folio.POST("/deposits", h.postDeposit)
		folio.POST("/refunds", h.postRefund)
		folio.POST("/close", h.closeFolio)
		folio.POST("/suspend", h.suspendFolio)
		folio.POST("/resume", h.resumeFolio)
	}
}

// getFolio godoc
// @Summary Get the folio statement
// @Description Returns the folio with its transactions and totals. The ledger is verified first.
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} dto.FolioResponse
// @Failure 404 {object} map[string]string "Folio not found"
// @Failure 500 {object} map[string]string "Ledger failed verification"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio [get]
func (h *folioHandler) getFolio(c *gin.Context) {
	reservationID := c.Param("reservationID")
	var resp *dto.FolioResponse
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		resp, err = h.folioService.GetFolio(ctx, reservationID)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to get folio")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// verifyFolio godoc
// @Summary Verify the folio ledger
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} map[string]bool
// @Failure 500 {object} map[string]string "Ledger failed verification"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/verify [get]
func (h *folioHandler) verifyFolio(c *gin.Context) {
	reservationID := c.Param("reservationID")
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		return h.folioService.VerifyFolio(ctx, reservationID)
	})
	if err != nil {
		respondError(c, err, "Folio verification failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// postCharge godoc
// @Summary Post a charge
// @Description Posts a tax-inclusive charge. Service charge and VAT come from the category's tax rates unless overridden.
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param charge body dto.PostChargeRequest true "Charge"
// @Success 201 {object} domain.FolioTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Folio closed or suspended"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/charges [post]
func (h *folioHandler) postCharge(c *gin.Context) {
	var req dto.PostChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	txn, err := h.folioService.PostCharge(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post charge")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// postAdjustment godoc
// @Summary Post an adjustment
// @Description A positive amount debits the folio, a negative one credits it.
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param adjustment body dto.AdjustmentRequest true "Adjustment"
// @Success 201 {object} domain.FolioTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/adjustments [post]
func (h *folioHandler) postAdjustment(c *gin.Context) {
	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	txn, err := h.folioService.PostAdjustment(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post adjustment")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// postPayment godoc
// @Summary Post a payment
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param payment body dto.PaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/payments [post]
func (h *folioHandler) postPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.paymentService.PostPayment(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post payment")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// postSplitPayment godoc
// @Summary Post a split payment
// @Description Every split is validated before any is posted. A split that fails mid-batch leaves earlier splits posted and is reported with its index.
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param payment body dto.SplitPaymentRequest true "Splits"
// @Success 201 {object} dto.SplitPaymentResult
// @Failure 400 {object} map[string]string "Invalid input or total mismatch"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/split-payments [post]
func (h *folioHandler) postSplitPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SplitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.paymentService.PostSplitPayment(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		var splitErr *services.SplitPaymentError
		if errors.As(err, &splitErr) && result != nil {
			status := statusForError(splitErr.Err)
			logger.Warn("Split payment stopped part way",
				slog.Int("failed_index", splitErr.Index),
				slog.Int("posted", len(result.Posted)),
				slog.String("error", splitErr.Err.Error()))
			c.JSON(status, result)
			return
		}
		respondError(c, err, "Failed to post split payment")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// postDeposit godoc
// @Summary Post a deposit
// @Description Records an advance payment before arrival, opening the folio if needed.
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param deposit body dto.PaymentRequest true "Deposit"
// @Success 201 {object} dto.PaymentResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/deposits [post]
func (h *folioHandler) postDeposit(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.paymentService.PostDeposit(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post deposit")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// postRefund godoc
// @Summary Post a refund
// @Tags folios
// @Accept json
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Param refund body dto.RefundRequest true "Refund"
// @Success 201 {object} dto.PaymentResult
// @Failure 400 {object} map[string]string "Refund exceeds payments"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/refunds [post]
func (h *folioHandler) postRefund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := actor(c)
	if !ok {
		return
	}

	result, err := h.paymentService.PostRefund(c.Request.Context(), c.Param("reservationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post refund")
		return
	}
	c.JSON(http.StatusCreated, result)
}

type folioStatusFunc func(ctx context.Context, reservationID, userID string) (*domain.Folio, error)

func (h *folioHandler) changeStatus(c *gin.Context, fn folioStatusFunc, msg string) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	folio, err := fn(c.Request.Context(), c.Param("reservationID"), userID)
	if err != nil {
		respondError(c, err, msg)
		return
	}
	c.JSON(http.StatusOK, folio)
}

// closeFolio godoc
// @Summary Close a settled folio
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} domain.Folio
// @Failure 400 {object} map[string]string "Outstanding balance"
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/close [post]
func (h *folioHandler) closeFolio(c *gin.Context) {
	h.changeStatus(c, h.folioService.CloseFolio, "Failed to close folio")
}

// suspendFolio godoc
// @Summary Suspend a folio
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} domain.Folio
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/suspend [post]
func (h *folioHandler) suspendFolio(c *gin.Context) {
	h.changeStatus(c, h.folioService.SuspendFolio, "Failed to suspend folio")
}

// resumeFolio godoc
// @Summary Resume a suspended folio
// @Tags folios
// @Produce json
// @Param reservationID path string true "Reservation ID"
// @Success 200 {object} domain.Folio
// @Security BearerAuth
// @Router /reservations/{reservationID}/folio/resume [post]
func (h *folioHandler) resumeFolio(c *gin.Context) {
	h.changeStatus(c, h.folioService.ResumeFolio, "Failed to resume folio")
}
