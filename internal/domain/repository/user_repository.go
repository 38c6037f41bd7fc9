package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// UserRepository puerto de solo lectura para usuarios.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
