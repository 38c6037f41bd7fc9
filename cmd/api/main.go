package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/wms-api/internal/application/identity"
	"github.com/jhoicas/wms-api/internal/application/operation"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/application/stock"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/events"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/wms-api/internal/interfaces/http"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/jhoicas/wms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    repository.Repositories
		txRunner ports.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		if cfg.Storage.SeedDemo {
			memory.SeedDemo(store, time.Now())
			log.Warn().Msg("almacén en memoria con datos de demostración")
		}
		repos, txRunner = store, store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos, txRunner = postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
	}

	var publisher ports.EventPublisher = events.NopPublisher{}
	if cfg.NATS.URL != "" {
		natsLog := log.Component("nats")
		nc, err := events.Connect(cfg.NATS.URL, cfg.App.Name, natsLog)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a NATS")
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				natsLog.Warn().Err(err).Msg("drenar conexión NATS")
			}
		}()
		publisher = events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix, log.Component("events"))
	} else {
		log.Info().Msg("NATS_URL vacío: eventos de operación deshabilitados")
	}

	operationUC := operation.NewOperationUseCase(repos, txRunner, publisher, log.Component("operations"))
	detailUC := operation.NewDetailUseCase(repos, txRunner, log.Component("operation-details"))
	stockUC := stock.NewStockUseCase(repos, txRunner, log.Component("stock"))

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OperationUC: operationUC,
		DetailUC:    detailUC,
		StockUC:     stockUC,
		CatalogUC:   identity.NewCatalogUseCase(repos),
		Log:         httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
