package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// OperationDetailRepository define el puerto de persistencia para líneas de operación.
type OperationDetailRepository interface {
	Create(ctx context.Context, detail *entity.OperationDetail) error
	GetByID(ctx context.Context, id string) (*entity.OperationDetail, error)
	Update(ctx context.Context, detail *entity.OperationDetail) error
	Delete(ctx context.Context, id string) error
	// ListByOperation devuelve todas las líneas ordenadas por creación (sin paginar).
	ListByOperation(ctx context.Context, operationID string) ([]*entity.OperationDetail, error)
	// List lista con paginación; operationID vacío = todas.
	List(ctx context.Context, operationID string, limit, offset int) ([]*entity.OperationDetail, int, error)
}
