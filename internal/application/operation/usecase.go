package operation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/identity"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/application/stock"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// OperationUseCase gobierna el ciclo de vida de una operación de almacén
// (CREATED -> IN_PROGRESS -> COMPLETED, o CANCELLED) y, al ejecutarla, mueve el stock
// una vez por cada línea dentro de una única transacción.
type OperationUseCase struct {
	repos    repository.Repositories
	txRunner ports.TxRunner
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewOperationUseCase construye el caso de uso.
func NewOperationUseCase(
	repos repository.Repositories,
	txRunner ports.TxRunner,
	events ports.EventPublisher,
	log zerolog.Logger,
) *OperationUseCase {
	return &OperationUseCase{
		repos:    repos,
		txRunner: txRunner,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// Create crea una operación en CREATED para un usuario y un documento existentes.
func (uc *OperationUseCase) Create(ctx context.Context, in dto.CreateOperationRequest) (*dto.OperationResponse, error) {
	opType, err := entity.ParseOperationType(strings.ToUpper(strings.TrimSpace(in.OperationType)))
	if err != nil {
		return nil, err
	}
	if in.UserID == "" || in.DocumentID == "" {
		return nil, domain.Invalid("user_id and document_id are required")
	}

	var (
		op   *entity.Operation
		user *entity.User
		doc  *entity.Document
	)
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		res := identity.FromRepositories(repos)
		var err error
		if user, err = res.UserByID(ctx, in.UserID); err != nil {
			return err
		}
		if doc, err = res.DocumentByID(ctx, in.DocumentID); err != nil {
			return err
		}
		op = entity.NewOperation(uuid.New().String(), opType, user.ID, doc.ID, uc.now())
		return repos.Operations().Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	uc.committed(ctx, op)

	out := toOperationResponse(op)
	out.Username = user.Username
	out.DocumentNumber = doc.Number
	return out, nil
}

// Start pasa la operación de CREATED a IN_PROGRESS.
func (uc *OperationUseCase) Start(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.transition(ctx, id, func(op *entity.Operation) error {
		return op.Start(uc.now())
	})
	if err != nil {
		return nil, err
	}
	return toOperationResponse(op), nil
}

// Cancel cancela una operación en CREATED o IN_PROGRESS.
func (uc *OperationUseCase) Cancel(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.transition(ctx, id, func(op *entity.Operation) error {
		return op.Cancel(uc.now())
	})
	if err != nil {
		return nil, err
	}
	return toOperationResponse(op), nil
}

// Execute aplica la operación según su propio tipo.
func (uc *OperationUseCase) Execute(ctx context.Context, id string) (*dto.OperationResponse, error) {
	return uc.execute(ctx, id, "")
}

// Receive ejecuta una operación RECEIVING: suma cada línea en su ubicación destino.
func (uc *OperationUseCase) Receive(ctx context.Context, id string) (*dto.OperationResponse, error) {
	return uc.execute(ctx, id, entity.OperationTypeReceiving)
}

// Ship ejecuta una operación SHIPPING: resta cada línea de su ubicación origen.
func (uc *OperationUseCase) Ship(ctx context.Context, id string) (*dto.OperationResponse, error) {
	return uc.execute(ctx, id, entity.OperationTypeShipping)
}

// Transfer ejecuta una operación TRANSFER: traslada cada línea de origen a destino.
func (uc *OperationUseCase) Transfer(ctx context.Context, id string) (*dto.OperationResponse, error) {
	return uc.execute(ctx, id, entity.OperationTypeTransfer)
}

// execute bloquea la operación, valida estado y líneas, aplica el libro línea por línea y deja
// la operación en COMPLETED. Todo en una transacción: si una línea falla no queda ningún
// movimiento aplicado y la operación sigue en IN_PROGRESS.
func (uc *OperationUseCase) execute(ctx context.Context, id string, expected entity.OperationType) (*dto.OperationResponse, error) {
	var op *entity.Operation
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if op, err = loadForUpdate(ctx, repos, id); err != nil {
			return err
		}
		if expected != "" && op.Type != expected {
			return domain.Invalid("operation %s is of type %s, not %s", op.ID, op.Type, expected)
		}
		if err := op.CheckExecutable(); err != nil {
			return err
		}
		if op.Details, err = repos.OperationDetails().ListByOperation(ctx, op.ID); err != nil {
			return err
		}
		if len(op.Details) == 0 {
			return domain.Invalid("no details for the operation")
		}

		uc.log.Info().
			Str("operation_id", op.ID).
			Str("type", string(op.Type)).
			Int("details", len(op.Details)).
			Msg("iniciando ejecución de operación")

		ledger := stock.NewLedger(repos.Stock(), uc.log)
		if err := applyDetails(ctx, ledger, op); err != nil {
			return fmt.Errorf("error during %s for operation ID: %s: %w", op.Type.Verb(), op.ID, err)
		}
		if err := op.Complete(uc.now()); err != nil {
			return err
		}
		return repos.Operations().Update(ctx, op)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("operation_id", id).Msg("ejecución de operación fallida")
		return nil, err
	}
	uc.committed(ctx, op)
	return toOperationResponse(op), nil
}

// applyDetails traduce las líneas a movimientos del libro y los aplica en orden de clave
// (producto, ubicación): dos ejecuciones concurrentes bloquean filas en el mismo orden.
func applyDetails(ctx context.Context, ledger *stock.Ledger, op *entity.Operation) error {
	moves, err := detailMovements(op)
	if err != nil {
		return err
	}
	return ledger.Apply(ctx, moves)
}

func detailMovements(op *entity.Operation) ([]stock.Movement, error) {
	moves := make([]stock.Movement, 0, 2*len(op.Details))
	for _, d := range op.Details {
		if err := op.Type.CheckLocations(d.FromLocationID, d.ToLocationID); err != nil {
			return nil, err
		}
		if d.Quantity <= 0 || d.Quantity > entity.MaxQuantity {
			return nil, domain.Invalid("invalid quantity %d in operation detail %s", d.Quantity, d.ID)
		}
		switch op.Type {
		case entity.OperationTypeReceiving:
			moves = append(moves, stock.Movement{ProductID: d.ProductID, LocationID: d.ToLocationID, Delta: d.Quantity})
		case entity.OperationTypeShipping:
			moves = append(moves, stock.Movement{ProductID: d.ProductID, LocationID: d.FromLocationID, Delta: -d.Quantity})
		case entity.OperationTypeTransfer:
			moves = append(moves,
				stock.Movement{ProductID: d.ProductID, LocationID: d.FromLocationID, Delta: -d.Quantity},
				stock.Movement{ProductID: d.ProductID, LocationID: d.ToLocationID, Delta: d.Quantity},
			)
		default:
			return nil, domain.Invalid("unknown operation type: %q", string(op.Type))
		}
	}
	return moves, nil
}

// Get obtiene una operación con sus líneas.
func (uc *OperationUseCase) Get(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.repos.Operations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.NotFound("operation with id: %s not found", id)
	}
	if op.Details, err = uc.repos.OperationDetails().ListByOperation(ctx, op.ID); err != nil {
		return nil, err
	}

	refs := newRefLoader(uc.repos)
	out := toOperationResponse(op)
	if err := refs.describeOperation(ctx, op, out); err != nil {
		return nil, err
	}
	out.Details = make([]dto.OperationDetailResponse, 0, len(op.Details))
	for _, d := range op.Details {
		item := toOperationDetailResponse(d)
		if err := refs.describeDetail(ctx, d, item); err != nil {
			return nil, err
		}
		out.Details = append(out.Details, *item)
	}
	return out, nil
}

// List lista operaciones con filtro opcional por tipo (vacío = todas).
func (uc *OperationUseCase) List(ctx context.Context, opType string, page dto.PageRequest) (*dto.OperationListResponse, error) {
	page.DefaultPage()
	var filter repository.OperationFilter
	if opType != "" {
		t, err := entity.ParseOperationType(strings.ToUpper(opType))
		if err != nil {
			return nil, err
		}
		filter.Type = t
	}
	list, total, err := uc.repos.Operations().List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	refs := newRefLoader(uc.repos)
	items := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		item := toOperationResponse(op)
		if err := refs.describeOperation(ctx, op, item); err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.OperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// transition bloquea la operación, aplica el cambio de estado y lo persiste.
func (uc *OperationUseCase) transition(ctx context.Context, id string, apply func(op *entity.Operation) error) (*entity.Operation, error) {
	var op *entity.Operation
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if op, err = loadForUpdate(ctx, repos, id); err != nil {
			return err
		}
		if err := apply(op); err != nil {
			return err
		}
		return repos.Operations().Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}
	uc.committed(ctx, op)
	return op, nil
}

// committed registra y publica una transición ya confirmada. Un fallo del broker no revierte nada.
func (uc *OperationUseCase) committed(ctx context.Context, op *entity.Operation) {
	uc.log.Info().
		Str("operation_id", op.ID).
		Str("type", string(op.Type)).
		Str("status", string(op.Status)).
		Msg("operación actualizada")
	if uc.events == nil {
		return
	}
	event := ports.OperationEvent{
		OperationID: op.ID,
		Type:        string(op.Type),
		Status:      string(op.Status),
		OccurredAt:  op.UpdatedAt,
	}
	if err := uc.events.PublishOperationEvent(ctx, event); err != nil {
		uc.log.Warn().Err(err).Str("operation_id", op.ID).Msg("no se pudo publicar evento de operación")
	}
}

func loadForUpdate(ctx context.Context, repos repository.Repositories, id string) (*entity.Operation, error) {
	op, err := repos.Operations().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.NotFound("operation with id: %s not found", id)
	}
	return op, nil
}
