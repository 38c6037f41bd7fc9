package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeValidation    = "VALIDATION"
	CodeNotFound      = "NOT_FOUND"
	CodeStateConflict = "STATE_CONFLICT"
	CodeDuplicate     = "DUPLICATE"
	CodeInvalidBody   = "INVALID_BODY"
	CodeInternal      = "INTERNAL"
)

// respondError traduce un error de caso de uso a status HTTP + cuerpo.
// Los errores de dominio conservan su mensaje; el resto se registra y se oculta.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeStateConflict
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeDuplicate
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fe.Code, CodeNotFound
		case fiber.StatusBadRequest:
			return fe.Code, CodeValidation
		}
	}
	return fiber.StatusInternalServerError, CodeInternal
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}

// ErrorHandler manejador global de fiber para errores no atendidos por los handlers (rutas inexistentes, panics recuperados).
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code != fiber.StatusNotFound && fe.Code != fiber.StatusBadRequest {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: CodeInternal, Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}
