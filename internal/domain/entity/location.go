package entity

import "time"

// Location ubicación física dentro de una bodega (nombre único).
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
