package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Son los "tipos" de error:
// los casos de uso devuelven *Error con un mensaje concreto que envuelve uno de ellos.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// Error es un error de dominio con mensaje propio. errors.Is(err, ErrNotFound) etc. sigue funcionando.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap expone el tipo de error.
func (e *Error) Unwrap() error { return e.Kind }

// NotFound construye un error ErrNotFound con mensaje formateado.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalid construye un error de validación (ErrInvalidInput).
func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Conflict construye un error de estado (ErrConflict).
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}
