package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundry-report-backend/internal/metrics"
	"laundry-report-backend/internal/model"
	"laundry-report-backend/internal/store"
)

type submitReportRequest struct {
	RoomID           int64            `json:"room_id" binding:"required"`
	MachineID        string           `json:"machine_id" binding:"required"`
	ReporterUsername string           `json:"reporter_username" binding:"required"`
	Type             model.ReportType `json:"report_type" binding:"required"`
	Description      *string          `json:"description"`
}

type archiveReportRequest struct {
	ReportID int64 `json:"report_id" binding:"required"`
}

// ListReports handles GET /report/ and returns unarchived reports only.
func (h *Handler) ListReports(c *gin.Context) {
	h.listReports(c, false)
}

// ListArchivedReports handles GET /report/archived.
func (h *Handler) ListArchivedReports(c *gin.Context) {
	h.listReports(c, true)
}

func (h *Handler) listReports(c *gin.Context, archived bool) {
	reports, err := h.store.ListReports(c.Request.Context(), archived)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetReport handles GET /report/:report_id.
func (h *Handler) GetReport(c *gin.Context) {
	reportID, err := strconv.ParseInt(c.Param("report_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid report id.")
		return
	}

	report, err := h.store.GetReport(c.Request.Context(), reportID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Report id %d was not found.", reportID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, report)
	}
}

// SubmitReport handles POST /report/. The referenced machine must exist in
// the referenced room. Constraint violations that slip past the pre-check,
// such as an unknown reporter username, come back as 400; only genuine
// storage failures produce a 500.
func (h *Handler) SubmitReport(c *gin.Context) {
	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	machinePresent, err := h.store.MachineExists(ctx, req.RoomID, req.MachineID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !machinePresent {
		abortWithError(c, http.StatusBadRequest,
			fmt.Sprintf("Room id %d does not contain machine id %s.", req.RoomID, req.MachineID))
		return
	}

	report := model.Report{
		RoomID:           req.RoomID,
		MachineID:        req.MachineID,
		ReporterUsername: req.ReporterUsername,
		Type:             req.Type,
		Description:      req.Description,
	}
	err = h.store.CreateReport(ctx, &report)
	switch {
	case errors.Is(err, store.ErrInvalidReference), errors.Is(err, store.ErrDuplicate):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case err != nil:
		storageError(c, err)
	default:
		metrics.ReportsSubmitted.Inc()
		if h.notifier != nil {
			h.notifier.Dispatch(report.ID)
		}
		c.JSON(http.StatusCreated, report)
	}
}

// DeleteReport handles DELETE /report/:report_id and answers with the
// deleted report.
func (h *Handler) DeleteReport(c *gin.Context) {
	reportID, err := strconv.ParseInt(c.Param("report_id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid report id.")
		return
	}
	ctx := c.Request.Context()

	present, err := h.store.ReportExists(ctx, reportID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Report id %d was not found.", reportID))
		return
	}

	report, err := h.store.DeleteReport(ctx, reportID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Report id %d was not found.", reportID))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, report)
	}
}

// ArchiveReport handles POST /report/archive. Archiving is idempotent: an
// already archived report comes back 200 with the flag still set.
func (h *Handler) ArchiveReport(c *gin.Context) {
	var req archiveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	present, err := h.store.ReportExists(ctx, req.ReportID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Report id %d was not found.", req.ReportID))
		return
	}

	report, err := h.store.ArchiveReport(ctx, req.ReportID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Report id %d was not found.", req.ReportID))
	case err != nil:
		storageError(c, err)
	default:
		metrics.ReportsArchived.Inc()
		c.JSON(http.StatusOK, report)
	}
}
