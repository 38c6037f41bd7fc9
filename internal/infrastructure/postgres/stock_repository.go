package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, product_id, location_id, quantity, status, created_at, updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	var status string
	if err := row.Scan(&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.StockStatus(status)
	return &s, nil
}

// Get obtiene el stock de un producto en una ubicación; nil si no hay fila.
func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND location_id = $2`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// AddQuantity inserta la fila o suma la cantidad a la existente en una sola sentencia.
// La fila existente conserva su id. Si la suma superaría MaxQuantity el UPDATE no aplica,
// no vuelve fila y se responde con error de validación.
func (r *StockRepo) AddQuantity(ctx context.Context, stock *entity.Stock) (*entity.Stock, error) {
	if stock.Quantity > entity.MaxQuantity {
		return nil, entity.QuantityOverflow(stock.ProductID, stock.LocationID)
	}
	query := `
		INSERT INTO stock (id, product_id, location_id, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		WHERE stock.quantity::bigint + EXCLUDED.quantity <= $8
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query,
		stock.ID, stock.ProductID, stock.LocationID, stock.Quantity, string(stock.Status),
		stock.CreatedAt, stock.UpdatedAt, int64(entity.MaxQuantity),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isOutOfRange(err) {
			return nil, entity.QuantityOverflow(stock.ProductID, stock.LocationID)
		}
		return nil, writeError("add stock quantity", err)
	}
	return s, nil
}

// Update persiste cantidad y estado.
func (r *StockRepo) Update(ctx context.Context, stock *entity.Stock) error {
	query := `UPDATE stock SET quantity = $2, status = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, stock.ID, stock.Quantity, string(stock.Status), stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete elimina la fila (el stock llegó a cero).
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}

// List lista stock filtrado por producto y/o ubicación con el total para paginar.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter, limit, offset int) ([]*entity.Stock, int, error) {
	where := `WHERE ($1 = '' OR product_id = $1) AND ($2 = '' OR location_id = $2)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock `+where, filter.ProductID, filter.LocationID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock: %w", err)
	}

	query := `SELECT ` + stockColumns + ` FROM stock ` + where + ` ORDER BY created_at, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.ProductID, filter.LocationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	list := []*entity.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list stock rows: %w", err)
	}
	return list, total, nil
}
