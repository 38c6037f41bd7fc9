package entity

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
)

// OperationType tipo de operación de almacén (variante cerrada).
type OperationType string

const (
	OperationTypeReceiving OperationType = "RECEIVING" // recepción: suma en ubicación destino
	OperationTypeShipping  OperationType = "SHIPPING"  // despacho: resta en ubicación origen
	OperationTypeTransfer  OperationType = "TRANSFER"  // traslado entre ubicaciones
)

// Valid indica si el tipo es uno de los conocidos.
func (t OperationType) Valid() bool {
	switch t {
	case OperationTypeReceiving, OperationTypeShipping, OperationTypeTransfer:
		return true
	}
	return false
}

// ParseOperationType convierte el valor recibido (p. ej. desde JSON o query) en OperationType.
func ParseOperationType(s string) (OperationType, error) {
	t := OperationType(s)
	if !t.Valid() {
		return "", domain.Invalid("unknown operation type: %q", s)
	}
	return t, nil
}

// Verb nombre de la acción usado en mensajes y logs.
func (t OperationType) Verb() string {
	switch t {
	case OperationTypeReceiving:
		return "receiving"
	case OperationTypeShipping:
		return "shipping"
	case OperationTypeTransfer:
		return "stock transfer"
	}
	return "execution"
}

// CheckLocations valida qué ubicaciones exige una línea según el tipo de la operación.
func (t OperationType) CheckLocations(fromLocationID, toLocationID string) error {
	switch t {
	case OperationTypeReceiving:
		if toLocationID == "" {
			return domain.Invalid("destination location is required for RECEIVING")
		}
	case OperationTypeShipping:
		if fromLocationID == "" {
			return domain.Invalid("source location is required for SHIPPING")
		}
	case OperationTypeTransfer:
		if fromLocationID == "" || toLocationID == "" {
			return domain.Invalid("source and destination locations are required for TRANSFER")
		}
		if fromLocationID == toLocationID {
			return domain.Invalid("source and destination cannot be the same")
		}
	default:
		return domain.Invalid("unknown operation type: %q", string(t))
	}
	return nil
}

// OperationStatus estado del ciclo de vida de una operación.
type OperationStatus string

const (
	OperationStatusCreated    OperationStatus = "CREATED"
	OperationStatusInProgress OperationStatus = "IN_PROGRESS"
	OperationStatusCompleted  OperationStatus = "COMPLETED"
	OperationStatusCancelled  OperationStatus = "CANCELLED"
)

// Valid indica si el estado es uno de los conocidos.
func (s OperationStatus) Valid() bool {
	switch s {
	case OperationStatusCreated, OperationStatusInProgress, OperationStatusCompleted, OperationStatusCancelled:
		return true
	}
	return false
}

// Terminal indica si desde este estado no hay más transiciones.
func (s OperationStatus) Terminal() bool {
	return s == OperationStatusCompleted || s == OperationStatusCancelled
}

// Operation representa una instancia de flujo de almacén (recepción, despacho o traslado).
// Nunca se elimina físicamente; la cancelación es un cambio de estado.
type Operation struct {
	ID         string
	Type       OperationType
	Status     OperationStatus
	UserID     string
	DocumentID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Details    []*OperationDetail // cargadas explícitamente por el caso de uso
}

// NewOperation crea una operación en estado CREATED.
func NewOperation(id string, t OperationType, userID, documentID string, now time.Time) *Operation {
	return &Operation{
		ID:         id,
		Type:       t,
		Status:     OperationStatusCreated,
		UserID:     userID,
		DocumentID: documentID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Start CREATED -> IN_PROGRESS.
func (o *Operation) Start(now time.Time) error {
	switch o.Status {
	case OperationStatusCreated:
		o.Status = OperationStatusInProgress
		o.UpdatedAt = now
		return nil
	case OperationStatusInProgress, OperationStatusCompleted, OperationStatusCancelled:
		return domain.Conflict("cannot start an operation that is not in CREATED status")
	}
	return domain.Conflict("unknown operation status: %q", string(o.Status))
}

// CheckExecutable exige IN_PROGRESS antes de aplicar las líneas al stock.
func (o *Operation) CheckExecutable() error {
	switch o.Status {
	case OperationStatusInProgress:
		return nil
	case OperationStatusCreated, OperationStatusCompleted, OperationStatusCancelled:
		return domain.Conflict("operation must be IN_PROGRESS")
	}
	return domain.Conflict("unknown operation status: %q", string(o.Status))
}

// Complete IN_PROGRESS -> COMPLETED.
func (o *Operation) Complete(now time.Time) error {
	if err := o.CheckExecutable(); err != nil {
		return err
	}
	o.Status = OperationStatusCompleted
	o.UpdatedAt = now
	return nil
}

// Cancel CREATED|IN_PROGRESS -> CANCELLED.
func (o *Operation) Cancel(now time.Time) error {
	switch o.Status {
	case OperationStatusCreated, OperationStatusInProgress:
		o.Status = OperationStatusCancelled
		o.UpdatedAt = now
		return nil
	case OperationStatusCompleted:
		return domain.Conflict("cannot cancel a completed operation")
	case OperationStatusCancelled:
		return domain.Conflict("operation is already cancelled")
	}
	return domain.Conflict("unknown operation status: %q", string(o.Status))
}

// CanEditDetails las líneas solo se modifican mientras la operación está en CREATED.
func (o *Operation) CanEditDetails() bool {
	return o.Status == OperationStatusCreated
}
