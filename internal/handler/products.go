package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/middleware"
	"github.com/SmekensRuben/HotelSuite/internal/service"
)

type ProductsHandler struct {
	svc     service.ProductService
	importer service.ImportService
}

func NewProductsHandler(svc service.ProductService, importer service.ImportService) *ProductsHandler {
	return &ProductsHandler{svc: svc, importer: importer}
}

// ListCatalog godoc
// @Summary List catalog products for one hotel
// @Tags products
// @Produce json
// @Success 200 {object} dto.ProductPage
// @Router /v1/hotels/{hotelUid}/catalogproducts [get]
func (h *ProductsHandler) ListCatalog(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	page, err := h.svc.ListCatalog(c.Request.Context(), hotelUID(c), q)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list catalog products"))
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductsHandler) GetCatalog(c *gin.Context) {
	product, err := h.svc.GetCatalog(c.Request.Context(), hotelUID(c), c.Param("id"))
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load product"))
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductsHandler) CreateCatalog(c *gin.Context) {
	var req dto.CatalogProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CreateCatalog(c.Request.Context(), hotelUID(c), req, actor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ProductsHandler) UpdateCatalog(c *gin.Context) {
	var req dto.CatalogProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.UpdateCatalog(c.Request.Context(), hotelUID(c), c.Param("id"), req, actor(c))
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) DeleteCatalog(c *gin.Context) {
	if err := h.svc.DeleteCatalog(c.Request.Context(), hotelUID(c), c.Param("id")); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete product"))
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchCatalog serves the typeahead search box. Falls back to a name prefix
// scan when the search index is unavailable.
func (h *ProductsHandler) SearchCatalog(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	page, err := h.svc.SearchCatalog(c.Request.Context(), hotelUID(c), q)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("search failed"))
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductsHandler) ImportCatalog(c *gin.Context) {
	h.importRecords(c, h.importer.ImportCatalog)
}

func (h *ProductsHandler) ImportSupplier(c *gin.Context) {
	h.importRecords(c, h.importer.ImportSupplier)
}

func (h *ProductsHandler) importRecords(
	c *gin.Context,
	run func(ctx context.Context, hotelUID string, records []map[string]any, policy service.ImportPolicy, actor string) (dto.ImportResult, error),
) {
	var req dto.ImportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	result, err := run(c.Request.Context(), hotelUID(c), req.Records, service.ImportPolicy(req.OnExisting), actor(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("import failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductsHandler) ListSupplier(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	page, err := h.svc.ListSupplier(c.Request.Context(), hotelUID(c), q)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list supplier products"))
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductsHandler) GetSupplier(c *gin.Context) {
	product, err := h.svc.GetSupplier(c.Request.Context(), hotelUID(c), c.Param("id"))
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load product"))
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductsHandler) CreateSupplier(c *gin.Context) {
	var req dto.SupplierProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	overwrite := c.Query("overwrite") == "true"
	id, err := h.svc.CreateSupplier(c.Request.Context(), hotelUID(c), req, actor(c), overwrite)
	if errors.Is(err, service.ErrSupplierProductExists) {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ProductsHandler) UpdateSupplier(c *gin.Context) {
	var req dto.SupplierProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.UpdateSupplier(c.Request.Context(), hotelUID(c), c.Param("id"), req, actor(c))
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) DeleteSupplier(c *gin.Context) {
	if err := h.svc.DeleteSupplier(c.Request.Context(), hotelUID(c), c.Param("id")); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete product"))
		return
	}
	c.Status(http.StatusNoContent)
}

// actor identifies who performed the write, for audit stamps.
func actor(c *gin.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		if claims.Email != "" {
			return claims.Email
		}
		return claims.UserID
	}
	return ""
}
