package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/identity"
	"github.com/jhoicas/wms-api/internal/application/operation"
	"github.com/jhoicas/wms-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OperationUC *operation.OperationUseCase
	DetailUC    *operation.DetailUseCase
	StockUC     *stock.StockUseCase
	CatalogUC   *identity.CatalogUseCase
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", requestid.New(), AccessLog(deps.Log))

	operations := api.Group("/operations")
	opHandler := NewOperationHandler(deps.OperationUC, deps.DetailUC, deps.Log)
	operations.Post("/", opHandler.Create)
	operations.Get("/", opHandler.List)
	operations.Get("/:id", opHandler.GetByID)
	operations.Get("/:id/details", opHandler.ListDetails)
	operations.Post("/:id/start", opHandler.Start)
	operations.Post("/:id/execute", opHandler.Execute)
	operations.Post("/:id/receiving", opHandler.Receive)
	operations.Post("/:id/shipping", opHandler.Ship)
	operations.Post("/:id/transfer", opHandler.Transfer)
	operations.Post("/:id/cancel", opHandler.Cancel)
	operations.Delete("/:id", opHandler.Cancel)

	details := api.Group("/operation-details")
	detailHandler := NewOperationDetailHandler(deps.DetailUC, deps.Log)
	details.Post("/", detailHandler.Create)
	details.Get("/", detailHandler.List)
	details.Get("/:id", detailHandler.GetByID)
	details.Put("/:id", detailHandler.Update)
	details.Delete("/:id", detailHandler.Delete)

	// /stocks/counts antes de /stocks/:productId/:locationId
	stocks := api.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, deps.Log)
	stocks.Post("/counts", stockHandler.RecordCount)
	stocks.Get("/counts", stockHandler.ListCounts)
	stocks.Get("/counts/:id", stockHandler.GetCount)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:productId/:locationId", stockHandler.Get)

	catalog := NewCatalogHandler(deps.CatalogUC, deps.Log)
	api.Get("/products", catalog.FindProduct)
	api.Get("/products/:id", catalog.GetProduct)
	api.Get("/locations", catalog.FindLocation)
	api.Get("/locations/:id", catalog.GetLocation)
}

// AccessLog registra cada petición con zerolog (método, ruta, status, duración, request id).
func AccessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("http")
		return err
	}
}
