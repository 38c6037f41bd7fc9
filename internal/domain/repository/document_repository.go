package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// DocumentRepository puerto de solo lectura para documentos.
type DocumentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Document, error)
}
