package operation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/operation"
	"github.com/jhoicas/wms-api/internal/application/stock"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/events"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

// warehouseWorld guarda el estado de un escenario.
type warehouseWorld struct {
	store   *memory.Store
	ops     *operation.OperationUseCase
	details *operation.DetailUseCase
	stock   *stock.StockUseCase

	products  map[string]string // sku -> id
	locations map[string]string // nombre -> id

	op      *dto.OperationResponse
	lastErr error
}

func (w *warehouseWorld) reset() {
	w.store = memory.NewStore()
	log := zerolog.Nop()
	w.ops = operation.NewOperationUseCase(w.store, w.store, events.NopPublisher{}, log)
	w.details = operation.NewDetailUseCase(w.store, w.store, log)
	w.stock = stock.NewStockUseCase(w.store, w.store, log)
	w.products = map[string]string{}
	w.locations = map[string]string{}
	w.op = nil
	w.lastErr = nil

	now := time.Now()
	w.store.PutUser(entity.User{ID: user1, Username: "ana", IsActive: true, CreatedAt: now})
	w.store.PutDocument(entity.Document{ID: doc1, Number: "DOC-1", Date: now, IsActive: true, CreatedAt: now})
}

func (w *warehouseWorld) catalog(skuA, skuB, locA, locB string) error {
	now := time.Now()
	for i, sku := range []string{skuA, skuB} {
		id := fmt.Sprintf("prod-%d", i+1)
		w.store.PutProduct(entity.Product{ID: id, SKU: sku, Name: sku, IsActive: true, CreatedAt: now})
		w.products[sku] = id
	}
	for i, name := range []string{locA, locB} {
		id := fmt.Sprintf("loc-%d", i+1)
		w.store.PutLocation(entity.Location{ID: id, Name: name, IsActive: true, CreatedAt: now})
		w.locations[name] = id
	}
	return nil
}

func (w *warehouseWorld) ids(sku, location string) (string, string, error) {
	p, ok := w.products[sku]
	if !ok {
		return "", "", fmt.Errorf("producto %q no cargado", sku)
	}
	l, ok := w.locations[location]
	if !ok {
		return "", "", fmt.Errorf("ubicación %q no cargada", location)
	}
	return p, l, nil
}

func (w *warehouseWorld) inStock(qty int, sku, location string) error {
	p, l, err := w.ids(sku, location)
	if err != nil {
		return err
	}
	_, err = w.stock.IncreaseStock(context.Background(), p, l, qty)
	return err
}

func (w *warehouseWorld) anOperation(typ string) error {
	op, err := w.ops.Create(context.Background(), dto.CreateOperationRequest{OperationType: typ, UserID: user1, DocumentID: doc1})
	if err != nil {
		return err
	}
	w.op = op
	return nil
}

func (w *warehouseWorld) addLine(qty int, sku, from, to string) error {
	if w.op == nil {
		return errors.New("no hay operación en el escenario")
	}
	_, err := w.details.Create(context.Background(), dto.CreateOperationDetailRequest{
		OperationID: w.op.ID, SKU: sku, Quantity: qty, FromLocationName: from, ToLocationName: to,
	})
	return err
}

func (w *warehouseWorld) lineTo(qty int, sku, to string) error { return w.addLine(qty, sku, "", to) }

func (w *warehouseWorld) lineFrom(qty int, sku, from string) error {
	return w.addLine(qty, sku, from, "")
}

func (w *warehouseWorld) lineFromTo(qty int, sku, from, to string) error {
	return w.addLine(qty, sku, from, to)
}

func (w *warehouseWorld) tryAddLine(qty int, sku, from string) error {
	w.lastErr = w.addLine(qty, sku, from, "")
	return nil
}

// act registra el error de la acción para los pasos Then.
func (w *warehouseWorld) act(fn func(ctx context.Context, id string) (*dto.OperationResponse, error)) error {
	if w.op == nil {
		return errors.New("no hay operación en el escenario")
	}
	op, err := fn(context.Background(), w.op.ID)
	w.lastErr = err
	if err == nil {
		w.op = op
	}
	return nil
}

func (w *warehouseWorld) start() error   { return w.act(w.ops.Start) }
func (w *warehouseWorld) execute() error { return w.act(w.ops.Execute) }
func (w *warehouseWorld) cancel() error  { return w.act(w.ops.Cancel) }

func (w *warehouseWorld) increase(sku, location string, qty int) error {
	p, l, err := w.ids(sku, location)
	if err != nil {
		return err
	}
	_, w.lastErr = w.stock.IncreaseStock(context.Background(), p, l, qty)
	return nil
}

func (w *warehouseWorld) decrease(sku, location string, qty int) error {
	p, l, err := w.ids(sku, location)
	if err != nil {
		return err
	}
	w.lastErr = w.stock.DecreaseStock(context.Background(), p, l, qty)
	return nil
}

func (w *warehouseWorld) transfer(qty int, sku, from, to string) error {
	p, src, err := w.ids(sku, from)
	if err != nil {
		return err
	}
	_, dst, err := w.ids(sku, to)
	if err != nil {
		return err
	}
	w.lastErr = w.stock.TransferStock(context.Background(), p, qty, src, dst)
	return nil
}

func (w *warehouseWorld) succeeds() error {
	if w.lastErr != nil {
		return fmt.Errorf("se esperaba éxito, error: %v", w.lastErr)
	}
	return nil
}

var errorKinds = map[string]error{
	"VALIDATION":     domain.ErrInvalidInput,
	"NOT_FOUND":      domain.ErrNotFound,
	"STATE_CONFLICT": domain.ErrConflict,
	"DUPLICATE":      domain.ErrDuplicate,
}

func (w *warehouseWorld) failsWith(kind string) error {
	want, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("tipo de error desconocido %q", kind)
	}
	if w.lastErr == nil {
		return fmt.Errorf("se esperaba un error %s", kind)
	}
	if !errors.Is(w.lastErr, want) {
		return fmt.Errorf("se esperaba %s, se obtuvo %v", kind, w.lastErr)
	}
	return nil
}

func (w *warehouseWorld) messageContains(text string) error {
	if w.lastErr == nil || !strings.Contains(w.lastErr.Error(), text) {
		return fmt.Errorf("se esperaba un error con %q, se obtuvo %v", text, w.lastErr)
	}
	return nil
}

func (w *warehouseWorld) statusIs(status string) error {
	got, err := w.ops.Get(context.Background(), w.op.ID)
	if err != nil {
		return err
	}
	if got.Status != status {
		return fmt.Errorf("estado %s, se esperaba %s", got.Status, status)
	}
	return nil
}

func (w *warehouseWorld) quantity(sku, location string) (int, bool, error) {
	p, l, err := w.ids(sku, location)
	if err != nil {
		return 0, false, err
	}
	row, err := w.store.Stock().Get(context.Background(), p, l)
	if err != nil || row == nil {
		return 0, false, err
	}
	return row.Quantity, true, nil
}

func (w *warehouseWorld) stockIs(sku, location string, want int) error {
	got, _, err := w.quantity(sku, location)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("stock de %s en %s es %d, se esperaba %d", sku, location, got, want)
	}
	return nil
}

func (w *warehouseWorld) noRow(sku, location string) error {
	got, found, err := w.quantity(sku, location)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("la fila de %s en %s sigue con %d", sku, location, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	w := &warehouseWorld{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	ctx.Step(`^products "([^"]*)" and "([^"]*)" and locations "([^"]*)" and "([^"]*)"$`, w.catalog)
	ctx.Step(`^(\d+) "([^"]*)" in stock at "([^"]*)"$`, w.inStock)
	ctx.Step(`^an? (RECEIVING|SHIPPING|TRANSFER) operation$`, w.anOperation)
	ctx.Step(`^the operation has a line of (\d+) "([^"]*)" to "([^"]*)"$`, w.lineTo)
	ctx.Step(`^the operation has a line of (\d+) "([^"]*)" from "([^"]*)"$`, w.lineFrom)
	ctx.Step(`^the operation has a line of (\d+) "([^"]*)" from "([^"]*)" to "([^"]*)"$`, w.lineFromTo)

	ctx.Step(`^I start the operation$`, w.start)
	ctx.Step(`^I execute the operation$`, w.execute)
	ctx.Step(`^I cancel the operation$`, w.cancel)
	ctx.Step(`^I add a line of (\d+) "([^"]*)" from "([^"]*)"$`, w.tryAddLine)
	ctx.Step(`^I increase stock of "([^"]*)" at "([^"]*)" by (\d+)$`, w.increase)
	ctx.Step(`^I decrease stock of "([^"]*)" at "([^"]*)" by (\d+)$`, w.decrease)
	ctx.Step(`^I transfer (\d+) "([^"]*)" from "([^"]*)" to "([^"]*)"$`, w.transfer)

	ctx.Step(`^the request succeeds$`, w.succeeds)
	ctx.Step(`^the request fails with "([^"]*)"$`, w.failsWith)
	ctx.Step(`^the error message contains "([^"]*)"$`, w.messageContains)
	ctx.Step(`^the operation status is "([^"]*)"$`, w.statusIs)
	ctx.Step(`^stock of "([^"]*)" at "([^"]*)" is (\d+)$`, w.stockIs)
	ctx.Step(`^there is no stock row for "([^"]*)" at "([^"]*)"$`, w.noRow)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/warehouse_operations.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
