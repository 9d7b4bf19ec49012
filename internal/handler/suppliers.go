package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/service"
)

type SuppliersHandler struct{ svc service.SupplierService }

func NewSuppliersHandler(svc service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc}
}

func (h *SuppliersHandler) List(c *gin.Context) {
	suppliers, err := h.svc.List(c.Request.Context(), hotelUID(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list suppliers"))
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *SuppliersHandler) Get(c *gin.Context) {
	supplier, err := h.svc.Get(c.Request.Context(), hotelUID(c), c.Param("id"))
	if errors.Is(err, service.ErrSupplierNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("supplier not found"))
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load supplier"))
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SuppliersHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), hotelUID(c), req, actor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *SuppliersHandler) Update(c *gin.Context) {
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.Update(c.Request.Context(), hotelUID(c), c.Param("id"), req, actor(c))
	if errors.Is(err, service.ErrSupplierNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("supplier not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SuppliersHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), hotelUID(c), c.Param("id")); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete supplier"))
		return
	}
	c.Status(http.StatusNoContent)
}
