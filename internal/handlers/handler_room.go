package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
)

type roomHandler struct {
	roomService portssvc.RoomSvc
	retry       *readRetrier
}

func newRoomHandler(rs portssvc.RoomSvc, retry *readRetrier) *roomHandler {
	return &roomHandler{roomService: rs, retry: retry}
}

func registerRoomRoutes(rg *gin.RouterGroup, h *roomHandler) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.listRooms)
		rooms.GET("/:roomID", h.getRoom)
	}
}

// listRooms godoc
// @Summary List rooms
// @Description Returns the room inventory ordered by room number.
// @Tags rooms
// @Produce json
// @Success 200 {array} domain.Room
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Dependency unavailable"
// @Security BearerAuth
// @Router /rooms [get]
func (h *roomHandler) listRooms(c *gin.Context) {
	var rooms []domain.Room
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		rooms, err = h.roomService.ListRooms(ctx)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to list rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// getRoom godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Param roomID path string true "Room ID"
// @Success 200 {object} domain.Room
// @Failure 404 {object} map[string]string "Room not found"
// @Security BearerAuth
// @Router /rooms/{roomID} [get]
func (h *roomHandler) getRoom(c *gin.Context) {
	roomID := c.Param("roomID")
	var room *domain.Room
	err := h.retry.do(c.Request.Context(), func(ctx context.Context) error {
		var err error
		room, err = h.roomService.GetRoom(ctx, roomID)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to get room")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Room fetched", slog.String("room_id", roomID))
	c.JSON(http.StatusOK, room)
}
