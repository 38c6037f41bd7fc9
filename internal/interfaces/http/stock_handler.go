package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/stock"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// StockHandler consultas de stock y conteos físicos. El stock solo cambia ejecutando operaciones.
type StockHandler struct {
	uc  *stock.StockUseCase
	log zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase, log zerolog.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar stock
// @Tags         stocks
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        limit        query  int     false  "Máximo 100"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	filter := repository.StockFilter{ProductID: c.Query("product_id"), LocationID: c.Query("location_id")}
	out, err := h.uc.ListStocks(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Stock de un producto en una ubicación
// @Tags         stocks
// @Produce      json
// @Param        productId   path  string  true  "ID del producto"
// @Param        locationId  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{productId}/{locationId} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.UserContext(), c.Params("productId"), c.Params("locationId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordCount godoc
// @Summary      Registrar conteo físico
// @Description  Compara la cantidad contada con la del libro; no modifica el stock.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordStockCountRequest  true  "product_id, location_id, actual_quantity, user_id"
// @Success      201   {object}  dto.StockCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/counts [post]
func (h *StockHandler) RecordCount(c *fiber.Ctx) error {
	var in dto.RecordStockCountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordCount(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCount godoc
// @Summary      Obtener conteo
// @Tags         stocks
// @Produce      json
// @Param        id   path  string  true  "ID del conteo"
// @Success      200  {object}  dto.StockCountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/counts/{id} [get]
func (h *StockHandler) GetCount(c *fiber.Ctx) error {
	out, err := h.uc.GetCount(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListCounts godoc
// @Summary      Listar conteos
// @Tags         stocks
// @Produce      json
// @Param        stock_id  query  string  false  "Filtrar por fila de stock"
// @Param        limit     query  int     false  "Máximo 100"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockCountListResponse
// @Router       /api/stocks/counts [get]
func (h *StockHandler) ListCounts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListCounts(c.UserContext(), c.Query("stock_id"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
