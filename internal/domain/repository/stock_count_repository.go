package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StockCountRepository puerto para los conteos físicos de stock.
type StockCountRepository interface {
	Create(ctx context.Context, count *entity.StockCount) error
	GetByID(ctx context.Context, id string) (*entity.StockCount, error)
	List(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockCount, int, error)
}
