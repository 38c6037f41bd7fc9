package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/operation"
)

// OperationDetailHandler CRUD de líneas de operación.
type OperationDetailHandler struct {
	uc  *operation.DetailUseCase
	log zerolog.Logger
}

// NewOperationDetailHandler construye el handler.
func NewOperationDetailHandler(uc *operation.DetailUseCase, log zerolog.Logger) *OperationDetailHandler {
	return &OperationDetailHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Agregar línea a una operación en CREATED
// @Tags         operation-details
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationDetailRequest  true  "operation_id, sku, quantity, from_location_name / to_location_name según el tipo"
// @Success      201   {object}  dto.OperationDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operation-details [post]
func (h *OperationDetailHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea
// @Tags         operation-details
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.OperationDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operation-details/{id} [get]
func (h *OperationDetailHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar líneas
// @Tags         operation-details
// @Produce      json
// @Param        operation_id  query  string  false  "Filtrar por operación"
// @Param        limit         query  int     false  "Máximo 100"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OperationDetailListResponse
// @Router       /api/operation-details [get]
func (h *OperationDetailHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), c.Query("operation_id"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar línea (solo con la operación en CREATED)
// @Tags         operation-details
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la línea"
// @Param        body  body  dto.UpdateOperationDetailRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.OperationDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operation-details/{id} [put]
func (h *OperationDetailHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOperationDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea (solo con la operación en CREATED)
// @Tags         operation-details
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operation-details/{id} [delete]
func (h *OperationDetailHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
