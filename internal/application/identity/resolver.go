package identity

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Resolver resuelve referencias a datos maestros (producto, ubicación, usuario, documento)
// por clave de negocio o ID. Solo lectura: nunca crea ni modifica estas entidades.
// Una entidad inactiva se trata como inexistente.
type Resolver struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	users     repository.UserRepository
	documents repository.DocumentRepository
}

// NewResolver construye el resolver.
func NewResolver(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
	documents repository.DocumentRepository,
) *Resolver {
	return &Resolver{products: products, locations: locations, users: users, documents: documents}
}

// FromRepositories construye el resolver sobre un grupo de repositorios (p. ej. los de una tx).
func FromRepositories(repos repository.Repositories) *Resolver {
	return NewResolver(repos.Products(), repos.Locations(), repos.Users(), repos.Documents())
}

// ProductBySKU busca un producto activo por SKU.
func (r *Resolver) ProductBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := r.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, domain.NotFound("product with sku: %s not found", sku)
	}
	return p, nil
}

// ProductByID busca un producto activo por ID.
func (r *Resolver) ProductByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, domain.NotFound("product with id: %s not found", id)
	}
	return p, nil
}

// LocationByName busca una ubicación activa por nombre.
func (r *Resolver) LocationByName(ctx context.Context, name string) (*entity.Location, error) {
	l, err := r.locations.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.IsActive {
		return nil, domain.NotFound("location with name: %s not found", name)
	}
	return l, nil
}

// LocationByID busca una ubicación activa por ID.
func (r *Resolver) LocationByID(ctx context.Context, id string) (*entity.Location, error) {
	l, err := r.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil || !l.IsActive {
		return nil, domain.NotFound("location with id: %s not found", id)
	}
	return l, nil
}

// UserByID busca un usuario activo por ID.
func (r *Resolver) UserByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, domain.NotFound("user with id: %s not found", id)
	}
	return u, nil
}

// DocumentByID busca un documento activo por ID.
func (r *Resolver) DocumentByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := r.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.IsActive {
		return nil, domain.NotFound("document with id: %s not found", id)
	}
	return d, nil
}
