package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// OperationFilter filtro por tipo (vacío = todos).
type OperationFilter struct {
	Type entity.OperationType
}

// OperationRepository define el puerto de persistencia para operaciones.
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	// GetForUpdate bloquea la fila de la operación hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Operation, error)
	Update(ctx context.Context, op *entity.Operation) error
	List(ctx context.Context, filter OperationFilter, limit, offset int) ([]*entity.Operation, int, error)
}
