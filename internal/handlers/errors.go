package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/services"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
)

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrStaleVersion),
		errors.Is(err, services.ErrFolioClosed),
		errors.Is(err, services.ErrFolioSuspended):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrGate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody adds machine-readable details for the typed errors the desk UI reacts to.
func errorBody(err error, status int) gin.H {
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		body["error"] = "Internal server error"
	}

	var (
		validationErr *apperrors.ValidationError
		conflictErr   *apperrors.ConflictError
		gateErr       *apperrors.GateError
		balanceErr    *services.OutstandingBalanceError
		invariantErr  *apperrors.InvariantError
	)
	switch {
	case errors.As(err, &balanceErr):
		body["balance"] = balanceErr.Balance.StringFixed(2)
	case errors.As(err, &validationErr):
		if validationErr.Field != "" {
			body["field"] = validationErr.Field
		}
	case errors.As(err, &conflictErr):
		body["roomID"] = conflictErr.RoomID
		if conflictErr.ConflictingReservationID != "" {
			body["conflictingReservationID"] = conflictErr.ConflictingReservationID
		}
	case errors.As(err, &gateErr):
		body["blockedDate"] = gateErr.BlockedDate.Format("2006-01-02")
		body["businessDay"] = gateErr.BusinessDay.Format("2006-01-02")
	case errors.As(err, &invariantErr):
		body["error"] = "Folio ledger failed verification"
		body["folioID"] = invariantErr.FolioID
	}
	return body
}

// respondError logs err at a level matching its status and writes the JSON error.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, errorBody(err, status))
}

// respondBindError reports a request that failed binding or validation tags.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// actor returns the authenticated user or writes 401.
func actor(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}
