package api

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/entity"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new instance of AdminHandler
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetOrders lists all orders, newest first --> GET /api/admin/orders
func (h *AdminHandler) GetOrders(c echo.Context) error {
	orders, err := h.adminService.ListOrders(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, orders)
}

// UpdateVariant overwrites a variant --> PUT /api/admin/variant/:id
func (h *AdminHandler) UpdateVariant(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	variant := entity.Variant{}
	if err := c.Bind(&variant); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	variant.ID = id

	updated, err := h.adminService.UpdateVariant(c.Request().Context(), &variant)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]int64{"updated": updated})
}

// AddVariant creates a variant under a product --> POST /api/admin/product/:id/variant
func (h *AdminHandler) AddVariant(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	variant := entity.Variant{}
	if err := c.Bind(&variant); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	variant.ProductID = productID

	created, err := h.adminService.AddVariant(c.Request().Context(), &variant)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]int{"id": created.ID})
}

// DeleteVariant removes a variant --> DELETE /api/admin/variant/:id
func (h *AdminHandler) DeleteVariant(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	deleted, err := h.adminService.DeleteVariant(c.Request().Context(), id)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]int64{"deleted": deleted})
}

// SetOrderStatus transitions an order --> POST /api/admin/orders/:id/status
func (h *AdminHandler) SetOrderStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	body := struct {
		Status string `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	updated, stockAdjusted, err := h.adminService.SetOrderStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.JSON(404, map[string]string{"error": err.Error()})
		case errors.Is(err, repository.ErrOutOfStock):
			return c.JSON(409, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{
		"updated":       updated,
		"stockAdjusted": stockAdjusted,
	})
}
