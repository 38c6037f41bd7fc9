package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/operation"
)

// OperationHandler maneja las peticiones HTTP del ciclo de vida de operaciones.
type OperationHandler struct {
	uc      *operation.OperationUseCase
	details *operation.DetailUseCase
	log     zerolog.Logger
}

// NewOperationHandler construye el handler.
func NewOperationHandler(uc *operation.OperationUseCase, details *operation.DetailUseCase, log zerolog.Logger) *OperationHandler {
	return &OperationHandler{uc: uc, details: details, log: log}
}

// Create godoc
// @Summary      Crear operación
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationRequest  true  "operation_type (RECEIVING | SHIPPING | TRANSFER), user_id, document_id"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
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
// @Summary      Obtener operación con sus líneas
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar operaciones
// @Tags         operations
// @Produce      json
// @Param        type    query  string  false  "RECEIVING | SHIPPING | TRANSFER"
// @Param        limit   query  int     false  "Máximo 100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OperationListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), c.Query("type"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListDetails godoc
// @Summary      Listar líneas de una operación
// @Tags         operations
// @Produce      json
// @Param        id      path   string  true   "ID de la operación"
// @Param        limit   query  int     false  "Máximo 100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OperationDetailListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/details [get]
func (h *OperationHandler) ListDetails(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	id := c.Params("id")
	// 404 si la operación no existe, en vez de una lista vacía
	if _, err := h.uc.Get(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.details.List(c.UserContext(), id, page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar operación (CREATED -> IN_PROGRESS)
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/start [post]
func (h *OperationHandler) Start(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Start)
}

// Execute godoc
// @Summary      Ejecutar operación según su tipo (IN_PROGRESS -> COMPLETED)
// @Description  Aplica todas las líneas al stock en una única transacción; si una falla no se aplica ninguna.
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/execute [post]
func (h *OperationHandler) Execute(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Execute)
}

// Receive godoc
// @Summary      Ejecutar recepción
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación RECEIVING"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/receiving [post]
func (h *OperationHandler) Receive(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Receive)
}

// Ship godoc
// @Summary      Ejecutar despacho
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación SHIPPING"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/shipping [post]
func (h *OperationHandler) Ship(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Ship)
}

// Transfer godoc
// @Summary      Ejecutar traslado
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación TRANSFER"
// @Success      200  {object}  dto.OperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/transfer [post]
func (h *OperationHandler) Transfer(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Transfer)
}

// Cancel godoc
// @Summary      Cancelar operación
// @Description  También disponible como DELETE /api/operations/{id}.
// @Tags         operations
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/cancel [post]
func (h *OperationHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *OperationHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) (*dto.OperationResponse, error)) error {
	out, err := fn(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
