package api

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new instance of CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetProducts lists all products with nested variants --> GET /api/products
// (also mounted on the admin group as GET /api/admin/products)
func (h *CatalogHandler) GetProducts(c echo.Context) error {
	products, err := h.catalogService.ListProducts(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, products)
}
