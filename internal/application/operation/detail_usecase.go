package operation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/identity"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// DetailUseCase gestiona las líneas de una operación. Crear, actualizar y eliminar solo se
// permite mientras la operación está en CREATED; la fila de la operación se bloquea en la misma
// transacción para que un Start concurrente no se intercale.
type DetailUseCase struct {
	repos    repository.Repositories
	txRunner ports.TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewDetailUseCase construye el caso de uso.
func NewDetailUseCase(repos repository.Repositories, txRunner ports.TxRunner, log zerolog.Logger) *DetailUseCase {
	return &DetailUseCase{repos: repos, txRunner: txRunner, log: log, now: time.Now}
}

// Create agrega una línea: producto por SKU, ubicaciones por nombre.
func (uc *DetailUseCase) Create(ctx context.Context, in dto.CreateOperationDetailRequest) (*dto.OperationDetailResponse, error) {
	if in.OperationID == "" || in.SKU == "" {
		return nil, domain.Invalid("operation_id and sku are required")
	}
	if err := checkQuantity(in.Quantity); err != nil {
		return nil, err
	}

	var (
		detail   *entity.OperationDetail
		product  *entity.Product
		from, to *entity.Location
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		res := identity.FromRepositories(repos)
		var err error
		if product, err = res.ProductBySKU(ctx, in.SKU); err != nil {
			return err
		}
		if from, err = optionalLocation(ctx, res, in.FromLocationName); err != nil {
			return err
		}
		if to, err = optionalLocation(ctx, res, in.ToLocationName); err != nil {
			return err
		}
		op, err := loadForUpdate(ctx, repos, in.OperationID)
		if err != nil {
			return err
		}
		if !op.CanEditDetails() {
			return domain.Conflict("cannot add details to an operation that is not in CREATED status")
		}

		now := uc.now()
		detail = &entity.OperationDetail{
			ID:             uuid.New().String(),
			OperationID:    op.ID,
			ProductID:      product.ID,
			Quantity:       in.Quantity,
			FromLocationID: locationID(from),
			ToLocationID:   locationID(to),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := op.Type.CheckLocations(detail.FromLocationID, detail.ToLocationID); err != nil {
			return err
		}
		return repos.OperationDetails().Create(ctx, detail)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("operation_id", detail.OperationID).Str("detail_id", detail.ID).Msg("línea agregada")

	out := toOperationDetailResponse(detail)
	out.SKU = product.SKU
	out.FromLocationName = locationName(from)
	out.ToLocationName = locationName(to)
	return out, nil
}

// Update reemplaza los campos enviados; los no enviados quedan igual.
func (uc *DetailUseCase) Update(ctx context.Context, id string, in dto.UpdateOperationDetailRequest) (*dto.OperationDetailResponse, error) {
	if in.Quantity != nil {
		if err := checkQuantity(*in.Quantity); err != nil {
			return nil, err
		}
	}
	var detail *entity.OperationDetail
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if detail, err = loadDetail(ctx, repos, id); err != nil {
			return err
		}
		op, err := loadForUpdate(ctx, repos, detail.OperationID)
		if err != nil {
			return err
		}
		if !op.CanEditDetails() {
			return domain.Conflict("cannot update details of an operation that is not in CREATED status")
		}

		res := identity.FromRepositories(repos)
		if in.SKU != nil {
			p, err := res.ProductBySKU(ctx, *in.SKU)
			if err != nil {
				return err
			}
			detail.ProductID = p.ID
		}
		if in.Quantity != nil {
			detail.Quantity = *in.Quantity
		}
		if in.FromLocationName != nil {
			loc, err := optionalLocation(ctx, res, *in.FromLocationName)
			if err != nil {
				return err
			}
			detail.FromLocationID = locationID(loc)
		}
		if in.ToLocationName != nil {
			loc, err := optionalLocation(ctx, res, *in.ToLocationName)
			if err != nil {
				return err
			}
			detail.ToLocationID = locationID(loc)
		}
		if err := op.Type.CheckLocations(detail.FromLocationID, detail.ToLocationID); err != nil {
			return err
		}
		detail.UpdatedAt = uc.now()
		return repos.OperationDetails().Update(ctx, detail)
	})
	if err != nil {
		return nil, err
	}
	return uc.describe(ctx, detail)
}

// Delete elimina una línea de una operación en CREATED.
func (uc *DetailUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		detail, err := loadDetail(ctx, repos, id)
		if err != nil {
			return err
		}
		op, err := loadForUpdate(ctx, repos, detail.OperationID)
		if err != nil {
			return err
		}
		if !op.CanEditDetails() {
			return domain.Conflict("cannot delete details from an operation that is not in CREATED status")
		}
		return repos.OperationDetails().Delete(ctx, detail.ID)
	})
}

// Get obtiene una línea por ID.
func (uc *DetailUseCase) Get(ctx context.Context, id string) (*dto.OperationDetailResponse, error) {
	detail, err := loadDetail(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	return uc.describe(ctx, detail)
}

// List lista líneas; operationID vacío = todas.
func (uc *DetailUseCase) List(ctx context.Context, operationID string, page dto.PageRequest) (*dto.OperationDetailListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repos.OperationDetails().List(ctx, operationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	refs := newRefLoader(uc.repos)
	items := make([]dto.OperationDetailResponse, 0, len(list))
	for _, d := range list {
		item := toOperationDetailResponse(d)
		if err := refs.describeDetail(ctx, d, item); err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.OperationDetailListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *DetailUseCase) describe(ctx context.Context, d *entity.OperationDetail) (*dto.OperationDetailResponse, error) {
	out := toOperationDetailResponse(d)
	if err := newRefLoader(uc.repos).describeDetail(ctx, d, out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadDetail(ctx context.Context, repos repository.Repositories, id string) (*entity.OperationDetail, error) {
	d, err := repos.OperationDetails().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NotFound("operation detail with id: %s not found", id)
	}
	return d, nil
}

// checkQuantity cantidad de una línea: positiva y dentro del rango almacenable.
func checkQuantity(q int) error {
	if q <= 0 {
		return domain.Invalid("quantity must be greater than zero")
	}
	if q > entity.MaxQuantity {
		return domain.Invalid("quantity exceeds the maximum %d", entity.MaxQuantity)
	}
	return nil
}

// optionalLocation resuelve una ubicación por nombre; nombre vacío = sin ubicación.
func optionalLocation(ctx context.Context, res *identity.Resolver, name string) (*entity.Location, error) {
	if name == "" {
		return nil, nil
	}
	return res.LocationByName(ctx, name)
}

func locationID(l *entity.Location) string {
	if l == nil {
		return ""
	}
	return l.ID
}

func locationName(l *entity.Location) string {
	if l == nil {
		return ""
	}
	return l.Name
}
