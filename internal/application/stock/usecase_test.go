package stock_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/stock"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

const (
	productA = "prod-a"
	locA1    = "loc-a1"
	locA2    = "loc-a2"
	userID   = "user-1"
)

func newFixture(t *testing.T) (*memory.Store, *stock.StockUseCase) {
	t.Helper()
	s := memory.NewStore()
	now := time.Now()
	s.PutProduct(entity.Product{ID: productA, SKU: "SKU-A", Name: "A", IsActive: true, CreatedAt: now})
	s.PutProduct(entity.Product{ID: "prod-off", SKU: "SKU-OFF", Name: "Off", IsActive: false, CreatedAt: now})
	s.PutLocation(entity.Location{ID: locA1, Name: "A1", IsActive: true, CreatedAt: now})
	s.PutLocation(entity.Location{ID: locA2, Name: "A2", IsActive: true, CreatedAt: now})
	s.PutUser(entity.User{ID: userID, Username: "ana", IsActive: true, CreatedAt: now})
	return s, stock.NewStockUseCase(s, s, zerolog.Nop())
}

func quantityAt(t *testing.T, s *memory.Store, productID, locationID string) int {
	t.Helper()
	row, err := s.Stock().Get(context.Background(), productID, locationID)
	require.NoError(t, err)
	if row == nil {
		return 0
	}
	return row.Quantity
}

func TestIncreaseStock_Additive(t *testing.T) {
	ctx := context.Background()
	s, uc := newFixture(t)

	first, err := uc.IncreaseStock(ctx, productA, locA1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, first.Quantity)
	assert.Equal(t, string(entity.StockStatusAvailable), first.Status)

	second, err := uc.IncreaseStock(ctx, productA, locA1, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, second.Quantity)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 15, quantityAt(t, s, productA, locA1))
}

func TestIncreaseStock_InvalidInput(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.IncreaseStock(ctx, productA, locA1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.IncreaseStock(ctx, "", locA1, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.IncreaseStock(ctx, "missing", locA1, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.IncreaseStock(ctx, "prod-off", locA1, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncreaseStock_CapsAtMaxQuantity(t *testing.T) {
	ctx := context.Background()
	s, uc := newFixture(t)

	_, err := uc.IncreaseStock(ctx, productA, locA1, math.MaxInt)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, quantityAt(t, s, productA, locA1))

	_, err = uc.IncreaseStock(ctx, productA, locA1, entity.MaxQuantity-1)
	require.NoError(t, err)
	_, err = uc.IncreaseStock(ctx, productA, locA1, 2)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.MaxQuantity-1, quantityAt(t, s, productA, locA1))

	_, err = uc.IncreaseStock(ctx, productA, locA1, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, quantityAt(t, s, productA, locA1))

	// un traslado que desbordaría el destino no mueve nada
	_, err = uc.IncreaseStock(ctx, productA, locA2, 5)
	require.NoError(t, err)
	err = uc.TransferStock(ctx, productA, 5, locA2, locA1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 5, quantityAt(t, s, productA, locA2))
	assert.Equal(t, entity.MaxQuantity, quantityAt(t, s, productA, locA1))
}

func TestStockPrimitives_ValidateBeforeLookup(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	err := uc.TransferStock(ctx, productA, 3, "loc-missing", "loc-missing")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "source and destination cannot be the same")

	err = uc.TransferStock(ctx, "missing", 0, locA1, locA2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.IncreaseStock(ctx, "prod-off", locA1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.DecreaseStock(ctx, productA, "loc-missing", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// con parámetros válidos sí se consulta el maestro
	_, err = uc.IncreaseStock(ctx, "prod-off", locA1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordCount_RejectsQuantityOverMax(t *testing.T) {
	_, uc := newFixture(t)
	_, err := uc.RecordCount(context.Background(), dto.RecordStockCountRequest{
		ProductID: productA, LocationID: locA1, ActualQuantity: entity.MaxQuantity + 1, UserID: userID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecreaseStock(t *testing.T) {
	ctx := context.Background()
	s, uc := newFixture(t)
	_, err := uc.IncreaseStock(ctx, productA, locA1, 10)
	require.NoError(t, err)

	require.NoError(t, uc.DecreaseStock(ctx, productA, locA1, 4))
	assert.Equal(t, 6, quantityAt(t, s, productA, locA1))

	err = uc.DecreaseStock(ctx, productA, locA1, 7)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Equal(t, 6, quantityAt(t, s, productA, locA1))

	// llegar a cero elimina la fila
	require.NoError(t, uc.DecreaseStock(ctx, productA, locA1, 6))
	row, err := s.Stock().Get(ctx, productA, locA1)
	require.NoError(t, err)
	assert.Nil(t, row)

	err = uc.DecreaseStock(ctx, productA, locA1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferStock(t *testing.T) {
	ctx := context.Background()
	s, uc := newFixture(t)
	_, err := uc.IncreaseStock(ctx, productA, locA1, 10)
	require.NoError(t, err)

	require.NoError(t, uc.TransferStock(ctx, productA, 4, locA1, locA2))
	assert.Equal(t, 6, quantityAt(t, s, productA, locA1))
	assert.Equal(t, 4, quantityAt(t, s, productA, locA2))

	err = uc.TransferStock(ctx, productA, 1, locA1, locA1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "source and destination cannot be the same")

	// insuficiente: nada cambia en ninguna ubicación
	err = uc.TransferStock(ctx, productA, 100, locA1, locA2)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 6, quantityAt(t, s, productA, locA1))
	assert.Equal(t, 4, quantityAt(t, s, productA, locA2))
}

func TestLedger_ConcurrentDecreasesNeverGoNegative(t *testing.T) {
	ctx := context.Background()
	s, uc := newFixture(t)
	_, err := uc.IncreaseStock(ctx, productA, locA1, 10)
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := uc.DecreaseStock(ctx, productA, locA1, 1); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 0, quantityAt(t, s, productA, locA1))
}

func TestGetAndListStocks(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.GetStock(ctx, productA, locA1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.IncreaseStock(ctx, productA, locA1, 3)
	require.NoError(t, err)
	_, err = uc.IncreaseStock(ctx, productA, locA2, 2)
	require.NoError(t, err)

	got, err := uc.GetStock(ctx, productA, locA2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	list, err := uc.ListStocks(ctx, repository.StockFilter{ProductID: productA}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)

	list, err = uc.ListStocks(ctx, repository.StockFilter{LocationID: locA1}, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 100, list.Page.Limit)
}

func TestRecordCount(t *testing.T) {
	ctx := context.Background()
	s, uc := newFixture(t)
	_, err := uc.IncreaseStock(ctx, productA, locA1, 10)
	require.NoError(t, err)

	count, err := uc.RecordCount(ctx, dto.RecordStockCountRequest{
		ProductID: productA, LocationID: locA1, ActualQuantity: 8, UserID: userID,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, count.ExpectedQuantity)
	assert.Equal(t, 8, count.ActualQuantity)
	assert.Equal(t, -2, count.Difference)
	// el conteo no toca el libro
	assert.Equal(t, 10, quantityAt(t, s, productA, locA1))

	got, err := uc.GetCount(ctx, count.ID)
	require.NoError(t, err)
	assert.Equal(t, count.StockID, got.StockID)

	list, err := uc.ListCounts(ctx, count.StockID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

func TestRecordCount_Errors(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.RecordCount(ctx, dto.RecordStockCountRequest{ProductID: productA, LocationID: locA1, ActualQuantity: -1, UserID: userID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordCount(ctx, dto.RecordStockCountRequest{ProductID: productA, LocationID: locA1, ActualQuantity: 1, UserID: "nobody"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// sin fila de stock
	_, err = uc.RecordCount(ctx, dto.RecordStockCountRequest{ProductID: productA, LocationID: locA1, ActualQuantity: 1, UserID: userID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetCount(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
