package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/middleware"
	"github.com/SmekensRuben/HotelSuite/internal/permission"
	"github.com/SmekensRuben/HotelSuite/internal/service"
)

type RolesHandler struct{ svc service.RoleService }

func NewRolesHandler(svc service.RoleService) *RolesHandler {
	return &RolesHandler{svc: svc}
}

func (h *RolesHandler) List(c *gin.Context) {
	roles, err := h.svc.List(c.Request.Context(), hotelUID(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list roles"))
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *RolesHandler) Create(c *gin.Context) {
	var req dto.RoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), hotelUID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RolesHandler) Update(c *gin.Context) {
	var req dto.RoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.Update(c.Request.Context(), hotelUID(c), c.Param("id"), req)
	if errors.Is(err, service.ErrRoleNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("role not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RolesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), hotelUID(c), c.Param("id")); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete role"))
		return
	}
	c.Status(http.StatusNoContent)
}

// PermissionCatalog lists every assignable feature.action key, so the role
// editor UI can render checkboxes without hardcoding the catalog.
func (h *RolesHandler) PermissionCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"features": permission.Catalog,
		"keys":     permission.AllKeys(),
	})
}

// CheckPermission answers whether the calling principal holds one
// feature/action pair. Route guards use the same resolution path.
func (h *RolesHandler) CheckPermission(c *gin.Context) {
	feature := c.Query("feature")
	action := c.Query("action")
	if feature == "" || action == "" {
		c.JSON(http.StatusBadRequest, apierror.New("feature and action query parameters are required"))
		return
	}

	claims := middleware.GetClaims(c)
	resolver, err := h.svc.ResolverFor(c.Request.Context(), hotelUID(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to resolve permissions"))
		return
	}

	var principal *permission.Principal
	if claims != nil {
		principal = &permission.Principal{Roles: claims.Roles, Permissions: claims.Permissions}
	}
	c.JSON(http.StatusOK, dto.PermissionCheckResponse{
		Feature: feature,
		Action:  action,
		Allowed: permission.HasPermission(resolver, principal, feature, action),
	})
}
