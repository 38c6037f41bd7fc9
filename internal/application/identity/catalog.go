package identity

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// CatalogUseCase consultas de solo lectura sobre productos y ubicaciones.
type CatalogUseCase struct {
	resolver *Resolver
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repos repository.Repositories) *CatalogUseCase {
	return &CatalogUseCase{resolver: FromRepositories(repos)}
}

func (uc *CatalogUseCase) Product(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.resolver.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(p), nil
}

// ProductBySKU exige sku no vacío.
func (uc *CatalogUseCase) ProductBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	if sku == "" {
		return nil, domain.Invalid("sku is required")
	}
	p, err := uc.resolver.ProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(p), nil
}

func (uc *CatalogUseCase) Location(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.resolver.LocationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToLocationResponse(l), nil
}

func (uc *CatalogUseCase) LocationByName(ctx context.Context, name string) (*dto.LocationResponse, error) {
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	l, err := uc.resolver.LocationByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return dto.ToLocationResponse(l), nil
}
