package operation

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

func toOperationResponse(op *entity.Operation) *dto.OperationResponse {
	if op == nil {
		return nil
	}
	return &dto.OperationResponse{
		ID:            op.ID,
		OperationType: string(op.Type),
		Status:        string(op.Status),
		UserID:        op.UserID,
		DocumentID:    op.DocumentID,
		CreatedAt:     op.CreatedAt,
		UpdatedAt:     op.UpdatedAt,
	}
}

func toOperationDetailResponse(d *entity.OperationDetail) *dto.OperationDetailResponse {
	if d == nil {
		return nil
	}
	return &dto.OperationDetailResponse{
		ID:             d.ID,
		OperationID:    d.OperationID,
		ProductID:      d.ProductID,
		Quantity:       d.Quantity,
		FromLocationID: d.FromLocationID,
		ToLocationID:   d.ToLocationID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// refLoader carga explícitamente los datos maestros que se muestran en las respuestas
// (SKU, nombres de ubicación, usuario, número de documento), con memoria por petición.
// Una referencia que ya no existe deja el campo vacío.
type refLoader struct {
	repos     repository.Repositories
	products  map[string]*entity.Product
	locations map[string]*entity.Location
	users     map[string]*entity.User
	documents map[string]*entity.Document
}

func newRefLoader(repos repository.Repositories) *refLoader {
	return &refLoader{
		repos:     repos,
		products:  map[string]*entity.Product{},
		locations: map[string]*entity.Location{},
		users:     map[string]*entity.User{},
		documents: map[string]*entity.Document{},
	}
}

func (l *refLoader) product(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := l.products[id]; ok {
		return p, nil
	}
	p, err := l.repos.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.products[id] = p
	return p, nil
}

func (l *refLoader) location(ctx context.Context, id string) (*entity.Location, error) {
	if id == "" {
		return nil, nil
	}
	if loc, ok := l.locations[id]; ok {
		return loc, nil
	}
	loc, err := l.repos.Locations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.locations[id] = loc
	return loc, nil
}

func (l *refLoader) describeOperation(ctx context.Context, op *entity.Operation, out *dto.OperationResponse) error {
	u, ok := l.users[op.UserID]
	if !ok {
		var err error
		if u, err = l.repos.Users().GetByID(ctx, op.UserID); err != nil {
			return err
		}
		l.users[op.UserID] = u
	}
	if u != nil {
		out.Username = u.Username
	}
	doc, ok := l.documents[op.DocumentID]
	if !ok {
		var err error
		if doc, err = l.repos.Documents().GetByID(ctx, op.DocumentID); err != nil {
			return err
		}
		l.documents[op.DocumentID] = doc
	}
	if doc != nil {
		out.DocumentNumber = doc.Number
	}
	return nil
}

func (l *refLoader) describeDetail(ctx context.Context, d *entity.OperationDetail, out *dto.OperationDetailResponse) error {
	p, err := l.product(ctx, d.ProductID)
	if err != nil {
		return err
	}
	if p != nil {
		out.SKU = p.SKU
	}
	from, err := l.location(ctx, d.FromLocationID)
	if err != nil {
		return err
	}
	if from != nil {
		out.FromLocationName = from.Name
	}
	to, err := l.location(ctx, d.ToLocationID)
	if err != nil {
		return err
	}
	if to != nil {
		out.ToLocationName = to.Name
	}
	return nil
}
