package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundry-report-backend/internal/model"
	"laundry-report-backend/internal/store"
)

type createRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListRooms handles GET /room/.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /room/:room_id.
func (h *Handler) GetRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}

	room, err := h.store.GetRoom(c.Request.Context(), roomID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Room id %d was not found.", roomID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, room)
	}
}

// CreateRoom handles POST /room/. Names are not unique, so every valid
// submission inserts a fresh row.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	room := model.Room{Name: req.Name, Description: req.Description}
	if err := h.store.CreateRoom(c.Request.Context(), &room); err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// DeleteRoom handles DELETE /room/:room_id and answers with the deleted
// room. Machines and reports belonging to the room disappear with it.
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}
	ctx := c.Request.Context()

	present, err := h.store.RoomExists(ctx, roomID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Room id %d was not found.", roomID))
		return
	}

	room, err := h.store.DeleteRoom(ctx, roomID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Room id %d was not found.", roomID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, room)
	}
}

// ListRoomMachines handles GET /room/:room_id/machines.
func (h *Handler) ListRoomMachines(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}
	ctx := c.Request.Context()

	present, err := h.store.RoomExists(ctx, roomID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Room id %d was not found.", roomID))
		return
	}

	machines, err := h.store.ListRoomMachines(ctx, roomID)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

// ListRoomReports handles GET /room/:room_id/reports.
func (h *Handler) ListRoomReports(c *gin.Context) {
	h.listRoomReports(c, false)
}

// ListRoomArchivedReports handles GET /room/:room_id/reports/archived.
func (h *Handler) ListRoomArchivedReports(c *gin.Context) {
	h.listRoomReports(c, true)
}

func (h *Handler) listRoomReports(c *gin.Context, archived bool) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}
	ctx := c.Request.Context()

	present, err := h.store.RoomExists(ctx, roomID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Room id %d was not found.", roomID))
		return
	}

	reports, err := h.store.ListRoomReports(ctx, roomID, archived)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
