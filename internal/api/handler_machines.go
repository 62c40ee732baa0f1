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

type createMachineRequest struct {
	RoomID    int64             `json:"room_id" binding:"required"`
	MachineID string            `json:"machine_id" binding:"required"`
	Type      model.MachineType `json:"machine_type" binding:"required"`
}

// ListMachines handles GET /machine/.
func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.store.ListMachines(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachine handles GET /machine/:room_id/:machine_id.
func (h *Handler) GetMachine(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}
	machineID := c.Param("machine_id")

	machine, err := h.store.GetMachine(c.Request.Context(), roomID, machineID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound,
			fmt.Sprintf("Machine id %s was not found in room id %d.", machineID, roomID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, machine)
	}
}

// CreateMachine handles POST /machine/. The referenced room must already
// exist and the (room_id, machine_id) pair must be free. The composite
// primary key backs the pre-checks up, so two racing submissions cannot
// both win.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	roomPresent, err := h.store.RoomExists(ctx, req.RoomID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !roomPresent {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Room id %d was not found.", req.RoomID))
		return
	}

	machinePresent, err := h.store.MachineExists(ctx, req.RoomID, req.MachineID)
	if err != nil {
		storageError(c, err)
		return
	}
	if machinePresent {
		abortWithError(c, http.StatusConflict,
			fmt.Sprintf("Machine id %s already exists in room id %d.", req.MachineID, req.RoomID))
		return
	}

	machine := model.Machine{RoomID: req.RoomID, MachineID: req.MachineID, Type: req.Type}
	err = h.store.CreateMachine(ctx, &machine)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		abortWithError(c, http.StatusConflict,
			fmt.Sprintf("Machine id %s already exists in room id %d.", req.MachineID, req.RoomID))
	case errors.Is(err, store.ErrInvalidReference):
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Room id %d was not found.", req.RoomID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusCreated, machine)
	}
}

// DeleteMachine handles DELETE /machine/:room_id/:machine_id and answers
// with the deleted machine. Reports filed against it disappear with it.
func (h *Handler) DeleteMachine(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}
	machineID := c.Param("machine_id")
	ctx := c.Request.Context()

	present, err := h.store.MachineExists(ctx, roomID, machineID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound,
			fmt.Sprintf("Machine id %s was not found in room id %d.", machineID, roomID))
		return
	}

	machine, err := h.store.DeleteMachine(ctx, roomID, machineID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound,
			fmt.Sprintf("Machine id %s was not found in room id %d.", machineID, roomID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, machine)
	}
}

// ListMachineReports handles GET /machine/:room_id/:machine_id/reports.
func (h *Handler) ListMachineReports(c *gin.Context) {
	h.listMachineReports(c, false)
}

// ListMachineArchivedReports handles GET /machine/:room_id/:machine_id/reports/archived.
func (h *Handler) ListMachineArchivedReports(c *gin.Context) {
	h.listMachineReports(c, true)
}

func (h *Handler) listMachineReports(c *gin.Context, archived bool) {
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid room id.")
		return
	}
	machineID := c.Param("machine_id")
	ctx := c.Request.Context()

	present, err := h.store.MachineExists(ctx, roomID, machineID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound,
			fmt.Sprintf("Machine id %s was not found in room id %d.", machineID, roomID))
		return
	}

	reports, err := h.store.ListMachineReports(ctx, roomID, machineID, archived)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
