package dto

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// ProductResponse vista de un producto del maestro.
type ProductResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationResponse vista de una ubicación del maestro.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{ID: p.ID, SKU: p.SKU, Name: p.Name, CreatedAt: p.CreatedAt}
}

func ToLocationResponse(l *entity.Location) *LocationResponse {
	return &LocationResponse{ID: l.ID, WarehouseID: l.WarehouseID, Name: l.Name, CreatedAt: l.CreatedAt}
}
