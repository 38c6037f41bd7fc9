package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// ProductRepository puerto de solo lectura para productos (maestro externo).
// Devuelve nil, nil si no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
}
