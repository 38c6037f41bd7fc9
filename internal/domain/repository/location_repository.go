package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LocationRepository puerto de solo lectura para ubicaciones. Devuelve nil, nil si no existe.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByName(ctx context.Context, name string) (*entity.Location, error)
}
