package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/service"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list users"))
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("user not found"))
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load user"))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) Update(c *gin.Context) {
	var req dto.UserUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("user not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdatePermissions replaces the user's flat permission grants. Unknown keys
// are dropped rather than rejected.
func (h *UsersHandler) UpdatePermissions(c *gin.Context) {
	var req dto.UserPermissionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.UpdatePermissions(c.Request.Context(), c.Param("id"), req.Permissions)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("user not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// DisplayName resolves an audit stamp identifier to a readable name.
func (h *UsersHandler) DisplayName(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"displayName": h.svc.DisplayName(c.Request.Context(), c.Param("id")),
	})
}
