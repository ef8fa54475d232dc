package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/entity"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder places a customer order --> POST /api/orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	order := entity.Order{}
	if err := c.Bind(&order); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	stockAdjusted, err := h.orderService.CreateOrder(c.Request().Context(), &order)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVariantNotFound):
			return c.JSON(404, map[string]string{"error": err.Error()})
		case errors.Is(err, service.ErrVariantMismatch):
			return c.JSON(400, map[string]string{"error": err.Error()})
		case errors.Is(err, repository.ErrOutOfStock):
			return c.JSON(409, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	resp := map[string]interface{}{"id": order.ID}
	if stockAdjusted {
		resp["stockAdjusted"] = true
	}
	return c.JSON(200, resp)
}

// GetOrder returns one order with product/variant names --> GET /api/orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	detail, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(404, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, detail)
}
