package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StockFilter filtros opcionales del listado de stock (vacío = sin filtro).
type StockFilter struct {
	ProductID  string
	LocationID string
}

// StockRepository define el puerto para consultar/actualizar stock por producto+ubicación.
// Las escrituras se usan dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nil, nil si no hay fila para la clave.
	Get(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	// AddQuantity suma delta a la fila o la crea con esa cantidad (operación atómica).
	AddQuantity(ctx context.Context, stock *entity.Stock) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter StockFilter, limit, offset int) ([]*entity.Stock, int, error)
}
