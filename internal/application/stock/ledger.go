package stock

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Ledger aplica los movimientos sobre el libro de stock (cantidad por producto+ubicación).
// Es el único punto que modifica Stock.Quantity. Se construye sobre el StockRepository de la
// transacción en curso: quien lo usa decide la unidad de atomicidad.
type Ledger struct {
	repo repository.StockRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewLedger construye el libro sobre un repositorio de stock (pool o tx).
func NewLedger(repo repository.StockRepository, log zerolog.Logger) *Ledger {
	return &Ledger{repo: repo, log: log, now: time.Now}
}

// CheckMovement valida los parámetros de increase/decrease sin tocar el almacén.
func CheckMovement(op, productID, locationID string, quantity int) error {
	if productID == "" || locationID == "" || quantity <= 0 {
		return domain.Invalid("invalid input parameters for %s", op)
	}
	if quantity > entity.MaxQuantity {
		return domain.Invalid("quantity for %s exceeds the maximum %d", op, entity.MaxQuantity)
	}
	return nil
}

// CheckTransfer valida un traslado; origen igual a destino falla siempre.
func CheckTransfer(productID string, quantity int, fromLocationID, toLocationID string) error {
	if fromLocationID != "" && fromLocationID == toLocationID {
		return domain.Invalid("source and destination cannot be the same")
	}
	if toLocationID == "" {
		return domain.Invalid("invalid input parameters for transferStock")
	}
	return CheckMovement("transferStock", productID, fromLocationID, quantity)
}

// Movement efecto de una línea sobre una clave del libro: Delta > 0 suma, Delta < 0 resta.
type Movement struct {
	ProductID  string
	LocationID string
	Delta      int
}

func compareKey(a, b Movement) int {
	if c := cmp.Compare(a.ProductID, b.ProductID); c != 0 {
		return c
	}
	return cmp.Compare(a.LocationID, b.LocationID)
}

// Apply aplica los movimientos ordenados por (producto, ubicación), así dos transacciones
// toman los bloqueos de fila en el mismo orden. Dentro de una clave se respeta el orden
// recibido, por lo que el saldo de cada clave evoluciona igual que en orden de línea.
func (l *Ledger) Apply(ctx context.Context, moves []Movement) error {
	sorted := slices.Clone(moves)
	slices.SortStableFunc(sorted, compareKey)
	for _, m := range sorted {
		var err error
		switch {
		case m.Delta > 0:
			_, err = l.Increase(ctx, m.ProductID, m.LocationID, m.Delta)
		case m.Delta < 0:
			err = l.Decrease(ctx, m.ProductID, m.LocationID, -m.Delta)
		default:
			err = domain.Invalid("invalid input parameters for stock movement")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Increase suma quantity en (producto, ubicación); crea la fila AVAILABLE si no existe.
// Una suma por encima de entity.MaxQuantity es un error de validación.
func (l *Ledger) Increase(ctx context.Context, productID, locationID string, quantity int) (*entity.Stock, error) {
	if err := CheckMovement("increaseStock", productID, locationID, quantity); err != nil {
		return nil, err
	}
	now := l.now()
	s, err := l.repo.AddQuantity(ctx, &entity.Stock{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		Status:     entity.StockStatusAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	l.log.Debug().
		Str("product_id", productID).
		Str("location_id", locationID).
		Int("quantity", quantity).
		Int("new_quantity", s.Quantity).
		Msg("stock incrementado")
	return s, nil
}

// Decrease resta quantity en (producto, ubicación). Bloquea la fila (SELECT FOR UPDATE),
// rechaza si no alcanza y elimina la fila cuando la cantidad llega exactamente a 0.
func (l *Ledger) Decrease(ctx context.Context, productID, locationID string, quantity int) error {
	if err := CheckMovement("decreaseStock", productID, locationID, quantity); err != nil {
		return err
	}
	s, err := l.repo.GetForUpdate(ctx, productID, locationID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NotFound("stock not found for product %s at location %s", productID, locationID)
	}
	newQty := s.Quantity - quantity
	if newQty < 0 {
		return domain.Invalid("insufficient stock for product %s at location %s: available %d, requested %d",
			productID, locationID, s.Quantity, quantity)
	}
	if newQty == 0 {
		if err := l.repo.Delete(ctx, s.ID); err != nil {
			return err
		}
		l.log.Info().
			Str("product_id", productID).
			Str("location_id", locationID).
			Msg("stock eliminado al llegar a cero")
		return nil
	}
	s.Quantity = newQty
	s.UpdatedAt = l.now()
	if err := l.repo.Update(ctx, s); err != nil {
		return err
	}
	l.log.Debug().
		Str("product_id", productID).
		Str("location_id", locationID).
		Int("quantity", quantity).
		Int("new_quantity", newQty).
		Msg("stock decrementado")
	return nil
}

// Transfer resta en origen y suma en destino. Son dos movimientos del libro aplicados en orden
// de clave; la atomicidad la da la transacción del llamador.
func (l *Ledger) Transfer(ctx context.Context, productID string, quantity int, fromLocationID, toLocationID string) error {
	if err := CheckTransfer(productID, quantity, fromLocationID, toLocationID); err != nil {
		return err
	}
	return l.Apply(ctx, []Movement{
		{ProductID: productID, LocationID: fromLocationID, Delta: -quantity},
		{ProductID: productID, LocationID: toLocationID, Delta: quantity},
	})
}
