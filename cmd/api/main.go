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

	"github.com/jhoicas/planta-despachos/internal/application/analytics"
	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/internal/application/usecase"
	"github.com/jhoicas/planta-despachos/internal/domain/repository"
	"github.com/jhoicas/planta-despachos/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/planta-despachos/internal/infrastructure/pdf"
	"github.com/jhoicas/planta-despachos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/planta-despachos/internal/interfaces/http"
	"github.com/jhoicas/planta-despachos/pkg/config"
	"github.com/jhoicas/planta-despachos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		repos    repository.Repos
	)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepos(pool)
	default:
		store, err := filestore.Open(cfg.Store.FilePath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.FilePath).Msg("abrir almacén local")
		}
		txRunner = store
		repos = store.Repos()
	}

	if cfg.App.SeedDemo {
		seeded, err := usecase.NewSeedUseCase(repos, log).Run(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		if seeded {
			log.Info().Msg("datos de ejemplo cargados")
		}
	}

	siloUC := usecase.NewSiloUseCase(repos.Silos, repos.Dispatches)
	clientUC := usecase.NewClientUseCase(repos.Clients)
	driverUC := usecase.NewDriverUseCase(repos.Drivers)
	dispatchUC := inventory.NewDispatchUseCase(txRunner, repos, log)
	fillUC := inventory.NewSiloFillUseCase(txRunner, repos, log)
	dashboardUC := analytics.NewDashboardUseCase(repos)

	// PDF: guía de despacho
	pdfGenerator := infrapdf.NewDeliveryNoteGenerator(cfg.App.Name)
	deliveryNoteUC := inventory.NewDeliveryNoteUseCase(repos, pdfGenerator)

	app := httpRouter.NewApp(cfg.App.Name)
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Planta de Despachos API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SiloUC:       siloUC,
		ClientUC:     clientUC,
		DriverUC:     driverUC,
		DispatchUC:   dispatchUC,
		SiloFillUC:   fillUC,
		DeliveryNote: deliveryNoteUC,
		DashboardUC:  dashboardUC,
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
