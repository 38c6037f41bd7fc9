package entity

import "time"

// Product vista de solo lectura de un producto (maestro externo).
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
