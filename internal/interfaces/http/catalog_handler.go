package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/identity"
)

// CatalogHandler consultas de productos y ubicaciones. El maestro no se edita desde esta API.
type CatalogHandler struct {
	uc  *identity.CatalogUseCase
	log zerolog.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *identity.CatalogUseCase, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// FindProduct godoc
// @Summary      Buscar producto por SKU
// @Tags         catalog
// @Produce      json
// @Param        sku  query  string  true  "SKU"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *CatalogHandler) FindProduct(c *fiber.Ctx) error {
	out, err := h.uc.ProductBySKU(c.UserContext(), c.Query("sku"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetLocation godoc
// @Summary      Obtener ubicación por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *CatalogHandler) GetLocation(c *fiber.Ctx) error {
	out, err := h.uc.Location(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// FindLocation godoc
// @Summary      Buscar ubicación por nombre
// @Tags         catalog
// @Produce      json
// @Param        name  query  string  true  "Nombre"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations [get]
func (h *CatalogHandler) FindLocation(c *fiber.Ctx) error {
	out, err := h.uc.LocationByName(c.UserContext(), c.Query("name"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
