package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"laundry-report-backend/internal/model"
	"laundry-report-backend/internal/store"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Admin    *bool  `json:"admin" binding:"required"`
}

// ListUsers handles GET /user/.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /user/:username.
func (h *Handler) GetUser(c *gin.Context) {
	username := c.Param("username")

	user, err := h.store.GetUser(c.Request.Context(), username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("User %s was not found.", username))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, user)
	}
}

// CreateUser handles POST /user/. Usernames are the primary key, so the
// pre-check is backed up by the unique constraint.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	present, err := h.store.UserExists(ctx, req.Username)
	if err != nil {
		storageError(c, err)
		return
	}
	if present {
		abortWithError(c, http.StatusConflict, fmt.Sprintf("User %s already exists.", req.Username))
		return
	}

	user := model.User{Username: req.Username, Admin: *req.Admin}
	err = h.store.CreateUser(ctx, &user)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		abortWithError(c, http.StatusConflict, fmt.Sprintf("User %s already exists.", req.Username))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusCreated, user)
	}
}

// DeleteUser handles DELETE /user/:username and answers with the deleted
// user. Reports filed by the user disappear with it.
func (h *Handler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	ctx := c.Request.Context()

	present, err := h.store.UserExists(ctx, username)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("User %s was not found.", username))
		return
	}

	user, err := h.store.DeleteUser(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("User %s was not found.", username))
	case err != nil:
		storageError(c, err)
	default:
		c.JSON(http.StatusOK, user)
	}
}

// ListUserReports handles GET /user/:username/reports.
func (h *Handler) ListUserReports(c *gin.Context) {
	h.listUserReports(c, false)
}

// ListUserArchivedReports handles GET /user/:username/reports/archived.
func (h *Handler) ListUserArchivedReports(c *gin.Context) {
	h.listUserReports(c, true)
}

func (h *Handler) listUserReports(c *gin.Context, archived bool) {
	username := c.Param("username")
	ctx := c.Request.Context()

	present, err := h.store.UserExists(ctx, username)
	if err != nil {
		storageError(c, err)
		return
	}
	if !present {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("User %s was not found.", username))
		return
	}

	reports, err := h.store.ListUserReports(ctx, username, archived)
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
