package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación de OperationRepository sobre PostgreSQL.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador de operaciones.
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `id, operation_type, status, user_id, document_id, created_at, updated_at`

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var op entity.Operation
	var typ, status string
	if err := row.Scan(&op.ID, &typ, &status, &op.UserID, &op.DocumentID, &op.CreatedAt, &op.UpdatedAt); err != nil {
		return nil, err
	}
	op.Type = entity.OperationType(typ)
	op.Status = entity.OperationStatus(status)
	return &op, nil
}

// Create persiste una operación nueva (sin líneas).
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	query := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		op.ID, string(op.Type), string(op.Status), op.UserID, op.DocumentID, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		return writeError("insert operation", err)
	}
	return nil
}

// GetByID obtiene una operación; nil si no existe.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	return r.get(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *OperationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Operation, error) {
	return r.get(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1 FOR UPDATE`, id)
}

func (r *OperationRepo) get(ctx context.Context, query, id string) (*entity.Operation, error) {
	op, err := scanOperation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return op, nil
}

// Update persiste estado y fecha de actualización.
func (r *OperationRepo) Update(ctx context.Context, op *entity.Operation) error {
	query := `UPDATE operations SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, op.ID, string(op.Status), op.UpdatedAt); err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	return nil
}

// List lista operaciones, opcionalmente por tipo, con el total.
func (r *OperationRepo) List(ctx context.Context, filter repository.OperationFilter, limit, offset int) ([]*entity.Operation, int, error) {
	where := `WHERE ($1 = '' OR operation_type = $1)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM operations `+where, string(filter.Type)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count operations: %w", err)
	}

	query := `SELECT ` + operationColumns + ` FROM operations ` + where + ` ORDER BY created_at, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(filter.Type), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	list := []*entity.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, op)
	}
	return list, total, rows.Err()
}
