package entity

import "time"

// OperationDetail representa una línea de una operación: producto, cantidad y ubicaciones.
// FromLocationID / ToLocationID vacíos significan "sin ubicación".
type OperationDetail struct {
	ID             string
	OperationID    string
	ProductID      string
	Quantity       int
	FromLocationID string
	ToLocationID   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
