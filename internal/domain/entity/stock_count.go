package entity

import "time"

// StockCount conteo físico (inventario) de una fila de stock. No modifica el stock.
type StockCount struct {
	ID               string
	StockID          string
	ProductID        string
	LocationID       string
	ExpectedQuantity int // cantidad en el libro al momento del conteo
	ActualQuantity   int
	CountedBy        string // UserID
	CountedAt        time.Time
}

// Difference diferencia contada (positivo = sobrante, negativo = faltante).
func (c *StockCount) Difference() int {
	return c.ActualQuantity - c.ExpectedQuantity
}
