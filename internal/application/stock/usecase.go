package stock

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

// StockUseCase expone el libro de stock a llamadores directos (cada primitiva en su propia
// transacción), las consultas de stock y los conteos físicos.
type StockUseCase struct {
	repos    repository.Repositories
	txRunner ports.TxRunner
	log      zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repos repository.Repositories, txRunner ports.TxRunner, log zerolog.Logger) *StockUseCase {
	return &StockUseCase{repos: repos, txRunner: txRunner, log: log}
}

// IncreaseStock suma cantidad a un producto en una ubicación (ambos deben existir).
// Los parámetros se validan antes de consultar el maestro.
func (uc *StockUseCase) IncreaseStock(ctx context.Context, productID, locationID string, quantity int) (*dto.StockResponse, error) {
	if err := CheckMovement("increaseStock", productID, locationID, quantity); err != nil {
		return nil, err
	}
	var out *entity.Stock
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := resolveKey(ctx, repos, productID, locationID); err != nil {
			return err
		}
		s, err := NewLedger(repos.Stock(), uc.log).Increase(ctx, productID, locationID, quantity)
		out = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(out), nil
}

// DecreaseStock resta cantidad; elimina la fila si queda en cero.
func (uc *StockUseCase) DecreaseStock(ctx context.Context, productID, locationID string, quantity int) error {
	if err := CheckMovement("decreaseStock", productID, locationID, quantity); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := resolveKey(ctx, repos, productID, locationID); err != nil {
			return err
		}
		return NewLedger(repos.Stock(), uc.log).Decrease(ctx, productID, locationID, quantity)
	})
}

// TransferStock traslada cantidad entre dos ubicaciones en una sola transacción.
func (uc *StockUseCase) TransferStock(ctx context.Context, productID string, quantity int, fromLocationID, toLocationID string) error {
	if err := CheckTransfer(productID, quantity, fromLocationID, toLocationID); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		res := identity.FromRepositories(repos)
		if _, err := res.ProductByID(ctx, productID); err != nil {
			return err
		}
		if _, err := res.LocationByID(ctx, fromLocationID); err != nil {
			return err
		}
		if _, err := res.LocationByID(ctx, toLocationID); err != nil {
			return err
		}
		return NewLedger(repos.Stock(), uc.log).Transfer(ctx, productID, quantity, fromLocationID, toLocationID)
	})
}

// GetStock obtiene el stock de un producto en una ubicación.
func (uc *StockUseCase) GetStock(ctx context.Context, productID, locationID string) (*dto.StockResponse, error) {
	if err := resolveKey(ctx, uc.repos, productID, locationID); err != nil {
		return nil, err
	}
	s, err := uc.repos.Stock().Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("stock not found for product %s at location %s", productID, locationID)
	}
	return toStockResponse(s), nil
}

// ListStocks lista stock con filtros opcionales por producto y/o ubicación.
func (uc *StockUseCase) ListStocks(ctx context.Context, filter repository.StockFilter, page dto.PageRequest) (*dto.StockListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repos.Stock().List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// RecordCount registra un conteo físico contra la cantidad actual del libro. No modifica el stock:
// las diferencias se corrigen con una operación de recepción o despacho.
func (uc *StockUseCase) RecordCount(ctx context.Context, in dto.RecordStockCountRequest) (*dto.StockCountResponse, error) {
	if in.ProductID == "" || in.LocationID == "" || in.UserID == "" {
		return nil, domain.Invalid("product_id, location_id and user_id are required")
	}
	if in.ActualQuantity < 0 {
		return nil, domain.Invalid("actual quantity cannot be negative")
	}
	if in.ActualQuantity > entity.MaxQuantity {
		return nil, domain.Invalid("actual quantity exceeds the maximum %d", entity.MaxQuantity)
	}
	var count *entity.StockCount
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if _, err := identity.FromRepositories(repos).UserByID(ctx, in.UserID); err != nil {
			return err
		}
		if err := resolveKey(ctx, repos, in.ProductID, in.LocationID); err != nil {
			return err
		}
		s, err := repos.Stock().GetForUpdate(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("stock not found for product %s at location %s", in.ProductID, in.LocationID)
		}
		count = &entity.StockCount{
			ID:               uuid.New().String(),
			StockID:          s.ID,
			ProductID:        s.ProductID,
			LocationID:       s.LocationID,
			ExpectedQuantity: s.Quantity,
			ActualQuantity:   in.ActualQuantity,
			CountedBy:        in.UserID,
			CountedAt:        time.Now(),
		}
		return repos.StockCounts().Create(ctx, count)
	})
	if err != nil {
		return nil, err
	}
	if count.Difference() != 0 {
		uc.log.Warn().
			Str("stock_id", count.StockID).
			Int("expected", count.ExpectedQuantity).
			Int("actual", count.ActualQuantity).
			Msg("diferencia en conteo físico")
	}
	return toStockCountResponse(count), nil
}

// GetCount obtiene un conteo por ID.
func (uc *StockUseCase) GetCount(ctx context.Context, id string) (*dto.StockCountResponse, error) {
	c, err := uc.repos.StockCounts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("stock count with id: %s not found", id)
	}
	return toStockCountResponse(c), nil
}

// ListCounts lista conteos; stockID vacío = todos.
func (uc *StockUseCase) ListCounts(ctx context.Context, stockID string, page dto.PageRequest) (*dto.StockCountListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repos.StockCounts().List(ctx, stockID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockCountResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toStockCountResponse(c))
	}
	return &dto.StockCountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func resolveKey(ctx context.Context, repos repository.Repositories, productID, locationID string) error {
	if productID == "" || locationID == "" {
		return domain.Invalid("product_id and location_id are required")
	}
	res := identity.FromRepositories(repos)
	if _, err := res.ProductByID(ctx, productID); err != nil {
		return err
	}
	_, err := res.LocationByID(ctx, locationID)
	return err
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity,
		Status:     string(s.Status),
		UpdatedAt:  s.UpdatedAt,
	}
}

func toStockCountResponse(c *entity.StockCount) *dto.StockCountResponse {
	if c == nil {
		return nil
	}
	return &dto.StockCountResponse{
		ID:               c.ID,
		StockID:          c.StockID,
		ProductID:        c.ProductID,
		LocationID:       c.LocationID,
		ExpectedQuantity: c.ExpectedQuantity,
		ActualQuantity:   c.ActualQuantity,
		Difference:       c.Difference(),
		CountedBy:        c.CountedBy,
		CountedAt:        c.CountedAt,
	}
}
