package ports

import (
	"context"
	"time"
)

// OperationEvent evento emitido tras cada transición confirmada de una operación.
type OperationEvent struct {
	OperationID string    `json:"operation_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher define el puerto de salida para eventos del ciclo de vida de operaciones.
// Implementaciones: NATS o no-op cuando no hay broker configurado.
type EventPublisher interface {
	PublishOperationEvent(ctx context.Context, event OperationEvent) error
}
