package entity

import (
	"math"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
)

// StockStatus estado de una fila de stock.
type StockStatus string

// StockStatusAvailable único estado usado por ahora.
const StockStatusAvailable StockStatus = "AVAILABLE"

// MaxQuantity tope de cualquier cantidad (rango de la columna INTEGER).
const MaxQuantity = math.MaxInt32

// Stock representa la cantidad de un producto en una ubicación.
// Una fila por (producto, ubicación); nunca se persiste con cantidad 0 (se elimina).
type Stock struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int
	Status     StockStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanAdd indica si sumar delta deja la fila dentro de MaxQuantity.
func (s *Stock) CanAdd(delta int) bool {
	return delta <= MaxQuantity-s.Quantity
}

// QuantityOverflow error de validación cuando una suma superaría MaxQuantity.
func QuantityOverflow(productID, locationID string) error {
	return domain.Invalid("stock for product %s at location %s would exceed the maximum quantity %d",
		productID, locationID, MaxQuantity)
}
