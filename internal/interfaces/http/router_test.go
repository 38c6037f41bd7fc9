package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/identity"
	"github.com/jhoicas/wms-api/internal/application/operation"
	"github.com/jhoicas/wms-api/internal/application/stock"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/events"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/wms-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testDocumentID = "00000000-0000-0000-0000-000000000002"
	testProductID  = "00000000-0000-0000-0000-000000000003"
	testLoc1ID     = "00000000-0000-0000-0000-000000000004"
	testLoc2ID     = "00000000-0000-0000-0000-000000000005"
)

// buildTestApp construye la API completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	now := time.Now()
	s.PutUser(entity.User{ID: testUserID, Username: "ana", IsActive: true, CreatedAt: now})
	s.PutDocument(entity.Document{ID: testDocumentID, Number: "DOC-1", Date: now, IsActive: true, CreatedAt: now})
	s.PutProduct(entity.Product{ID: testProductID, SKU: "SKU1", Name: "Uno", IsActive: true, CreatedAt: now})
	s.PutLocation(entity.Location{ID: testLoc1ID, Name: "L1", IsActive: true, CreatedAt: now})
	s.PutLocation(entity.Location{ID: testLoc2ID, Name: "L2", IsActive: true, CreatedAt: now})

	log := zerolog.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		OperationUC: operation.NewOperationUseCase(s, s, events.NopPublisher{}, log),
		DetailUC:    operation.NewDetailUseCase(s, s, log),
		StockUC:     stock.NewStockUseCase(s, s, log),
		CatalogUC:   identity.NewCatalogUseCase(s),
		Log:         log,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createOperation(t *testing.T, app *fiber.App, typ string) dto.OperationResponse {
	t.Helper()
	status, raw := do(t, app, http.MethodPost, "/api/operations", dto.CreateOperationRequest{
		OperationType: typ, UserID: testUserID, DocumentID: testDocumentID,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.OperationResponse](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivingFlow(t *testing.T) {
	app := buildTestApp(t)
	op := createOperation(t, app, "RECEIVING")
	assert.Equal(t, "CREATED", op.Status)

	status, raw := do(t, app, http.MethodPost, "/api/operation-details", dto.CreateOperationDetailRequest{
		OperationID: op.ID, SKU: "SKU1", Quantity: 5, ToLocationName: "L1",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, _ = do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/start", nil)
	require.Equal(t, http.StatusOK, status)

	status, raw = do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/receiving", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "COMPLETED", decode[dto.OperationResponse](t, raw).Status)

	status, raw = do(t, app, http.MethodGet, "/api/stocks/"+testProductID+"/"+testLoc1ID, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, 5, decode[dto.StockResponse](t, raw).Quantity)

	status, raw = do(t, app, http.MethodGet, "/api/operations/"+op.ID, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.OperationResponse](t, raw)
	require.Len(t, got.Details, 1)
	assert.Equal(t, "L1", got.Details[0].ToLocationName)
}

func TestErrorMapping(t *testing.T) {
	app := buildTestApp(t)
	op := createOperation(t, app, "RECEIVING")

	// sin líneas -> 400 VALIDATION
	status, _ := do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/start", nil)
	require.Equal(t, http.StatusOK, status)
	status, raw := do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/execute", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	errBody := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, apphttp.CodeValidation, errBody.Code)
	assert.Equal(t, "no details for the operation", errBody.Message)

	// start repetido -> 409 STATE_CONFLICT
	status, raw = do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/start", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeStateConflict, decode[dto.ErrorResponse](t, raw).Code)

	// inexistente -> 404
	status, raw = do(t, app, http.MethodGet, "/api/operations/ghost", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, raw).Code)

	// cuerpo inválido -> 400 INVALID_BODY
	req := httptest.NewRequest(http.MethodPost, "/api/operations", bytes.NewReader([]byte("{")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteOperationCancels(t *testing.T) {
	app := buildTestApp(t)
	op := createOperation(t, app, "SHIPPING")

	status, raw := do(t, app, http.MethodDelete, "/api/operations/"+op.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CANCELLED", decode[dto.OperationResponse](t, raw).Status)

	status, raw = do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "operation is already cancelled", decode[dto.ErrorResponse](t, raw).Message)
}

func TestOperationDetailsCRUD(t *testing.T) {
	app := buildTestApp(t)
	op := createOperation(t, app, "TRANSFER")

	status, raw := do(t, app, http.MethodPost, "/api/operation-details", dto.CreateOperationDetailRequest{
		OperationID: op.ID, SKU: "SKU1", Quantity: 2, FromLocationName: "L1", ToLocationName: "L2",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	d := decode[dto.OperationDetailResponse](t, raw)

	qty := 7
	status, raw = do(t, app, http.MethodPut, "/api/operation-details/"+d.ID, dto.UpdateOperationDetailRequest{Quantity: &qty})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, 7, decode[dto.OperationDetailResponse](t, raw).Quantity)

	status, raw = do(t, app, http.MethodGet, "/api/operations/"+op.ID+"/details", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[dto.OperationDetailListResponse](t, raw).Page.Total)

	status, raw = do(t, app, http.MethodGet, "/api/operation-details?operation_id="+op.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[dto.OperationDetailListResponse](t, raw).Page.Total)

	status, _ = do(t, app, http.MethodDelete, "/api/operation-details/"+d.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/api/operation-details/"+d.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/operations/ghost/details", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStockCounts(t *testing.T) {
	app := buildTestApp(t)
	op := createOperation(t, app, "RECEIVING")
	status, _ := do(t, app, http.MethodPost, "/api/operation-details", dto.CreateOperationDetailRequest{
		OperationID: op.ID, SKU: "SKU1", Quantity: 10, ToLocationName: "L1",
	})
	require.Equal(t, http.StatusCreated, status)
	do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/start", nil)
	status, _ = do(t, app, http.MethodPost, "/api/operations/"+op.ID+"/execute", nil)
	require.Equal(t, http.StatusOK, status)

	status, raw := do(t, app, http.MethodPost, "/api/stocks/counts", dto.RecordStockCountRequest{
		ProductID: testProductID, LocationID: testLoc1ID, ActualQuantity: 12, UserID: testUserID,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	count := decode[dto.StockCountResponse](t, raw)
	assert.Equal(t, 2, count.Difference)

	status, raw = do(t, app, http.MethodGet, "/api/stocks/counts/"+count.ID, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	status, raw = do(t, app, http.MethodGet, "/api/stocks/counts?stock_id="+count.StockID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[dto.StockCountListResponse](t, raw).Page.Total)

	status, raw = do(t, app, http.MethodGet, "/api/stocks?location_id="+testLoc1ID, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.StockListResponse](t, raw)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 10, list.Items[0].Quantity)
}

func TestCatalogLookups(t *testing.T) {
	app := buildTestApp(t)

	status, raw := do(t, app, http.MethodGet, "/api/products?sku=SKU1", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, testProductID, decode[dto.ProductResponse](t, raw).ID)

	status, raw = do(t, app, http.MethodGet, "/api/products/"+testProductID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SKU1", decode[dto.ProductResponse](t, raw).SKU)

	status, raw = do(t, app, http.MethodGet, "/api/locations?name=L2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testLoc2ID, decode[dto.LocationResponse](t, raw).ID)

	status, _ = do(t, app, http.MethodGet, "/api/locations/"+testLoc1ID, nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw = do(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, raw).Code)

	status, _ = do(t, app, http.MethodGet, "/api/locations?name=ZZ", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRoute(t *testing.T) {
	app := buildTestApp(t)
	status, raw := do(t, app, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decode[dto.ErrorResponse](t, raw).Code)
}
