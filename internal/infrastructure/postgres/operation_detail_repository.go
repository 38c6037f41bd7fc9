package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.OperationDetailRepository = (*OperationDetailRepo)(nil)

// OperationDetailRepo implementación de OperationDetailRepository sobre PostgreSQL.
// Las ubicaciones son columnas NULL cuando la línea no las usa.
type OperationDetailRepo struct {
	q Querier
}

// NewOperationDetailRepository construye el adaptador de líneas.
func NewOperationDetailRepository(q Querier) *OperationDetailRepo {
	return &OperationDetailRepo{q: q}
}

const detailColumns = `id, operation_id, product_id, quantity, from_location_id, to_location_id, created_at, updated_at`

func scanDetail(row pgx.Row) (*entity.OperationDetail, error) {
	var d entity.OperationDetail
	var from, to *string
	if err := row.Scan(&d.ID, &d.OperationID, &d.ProductID, &d.Quantity, &from, &to, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.FromLocationID = deref(from)
	d.ToLocationID = deref(to)
	return &d, nil
}

func (r *OperationDetailRepo) Create(ctx context.Context, d *entity.OperationDetail) error {
	query := `INSERT INTO operation_details (` + detailColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.OperationID, d.ProductID, d.Quantity,
		nullable(d.FromLocationID), nullable(d.ToLocationID), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return writeError("insert operation detail", err)
	}
	return nil
}

func (r *OperationDetailRepo) GetByID(ctx context.Context, id string) (*entity.OperationDetail, error) {
	d, err := scanDetail(r.q.QueryRow(ctx, `SELECT `+detailColumns+` FROM operation_details WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation detail: %w", err)
	}
	return d, nil
}

func (r *OperationDetailRepo) Update(ctx context.Context, d *entity.OperationDetail) error {
	query := `
		UPDATE operation_details
		SET product_id = $2, quantity = $3, from_location_id = $4, to_location_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.ProductID, d.Quantity, nullable(d.FromLocationID), nullable(d.ToLocationID), d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update operation detail: %w", err)
	}
	return nil
}

func (r *OperationDetailRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM operation_details WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete operation detail: %w", err)
	}
	return nil
}

// ListByOperation todas las líneas de la operación en orden de creación.
func (r *OperationDetailRepo) ListByOperation(ctx context.Context, operationID string) ([]*entity.OperationDetail, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+detailColumns+` FROM operation_details WHERE operation_id = $1 ORDER BY created_at, id`, operationID)
	if err != nil {
		return nil, fmt.Errorf("list operation details: %w", err)
	}
	return collectDetails(rows)
}

func (r *OperationDetailRepo) List(ctx context.Context, operationID string, limit, offset int) ([]*entity.OperationDetail, int, error) {
	where := `WHERE ($1 = '' OR operation_id = $1)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM operation_details `+where, operationID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count operation details: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+detailColumns+` FROM operation_details `+where+` ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		operationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list operation details: %w", err)
	}
	list, err := collectDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func collectDetails(rows pgx.Rows) ([]*entity.OperationDetail, error) {
	defer rows.Close()
	list := []*entity.OperationDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
