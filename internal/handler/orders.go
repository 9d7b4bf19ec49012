package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SmekensRuben/HotelSuite/internal/apierror"
	"github.com/SmekensRuben/HotelSuite/internal/dto"
	"github.com/SmekensRuben/HotelSuite/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), hotelUID(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), hotelUID(c), req, actor(c))
	if errors.Is(err, service.ErrEmptyOrder) {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("failed to create order"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
