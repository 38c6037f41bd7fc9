package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

// StockCountRepo conteos físicos sobre PostgreSQL.
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador.
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

const stockCountColumns = `id, stock_id, product_id, location_id, expected_quantity, actual_quantity, counted_by, counted_at`

func scanStockCount(row pgx.Row) (*entity.StockCount, error) {
	var c entity.StockCount
	err := row.Scan(&c.ID, &c.StockID, &c.ProductID, &c.LocationID,
		&c.ExpectedQuantity, &c.ActualQuantity, &c.CountedBy, &c.CountedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *StockCountRepo) Create(ctx context.Context, c *entity.StockCount) error {
	query := `INSERT INTO stock_counts (` + stockCountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.StockID, c.ProductID, c.LocationID, c.ExpectedQuantity, c.ActualQuantity, c.CountedBy, c.CountedAt,
	)
	if err != nil {
		return writeError("insert stock count", err)
	}
	return nil
}

func (r *StockCountRepo) GetByID(ctx context.Context, id string) (*entity.StockCount, error) {
	c, err := scanStockCount(r.q.QueryRow(ctx, `SELECT `+stockCountColumns+` FROM stock_counts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock count: %w", err)
	}
	return c, nil
}

func (r *StockCountRepo) List(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockCount, int, error) {
	where := `WHERE ($1 = '' OR stock_id = $1)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_counts `+where, stockID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock counts: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+stockCountColumns+` FROM stock_counts `+where+` ORDER BY counted_at, id LIMIT $2 OFFSET $3`,
		stockID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock counts: %w", err)
	}
	defer rows.Close()

	list := []*entity.StockCount{}
	for rows.Next() {
		c, err := scanStockCount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock count: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
