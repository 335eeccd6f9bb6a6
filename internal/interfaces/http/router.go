package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/planta-despachos/internal/application/analytics"
	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SiloUC       *usecase.SiloUseCase
	ClientUC     *usecase.ClientUseCase
	DriverUC     *usecase.DriverUseCase
	DispatchUC   *inventory.DispatchUseCase
	SiloFillUC   *inventory.SiloFillUseCase
	DeliveryNote *inventory.DeliveryNoteUseCase
	DashboardUC  *analytics.DashboardUseCase
}

// NewApp crea la app fiber de la API. Immutable copia los valores de Params/Query/Body: los casos
// de uso los conservan como IDs y claves del almacén más allá de la petición.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Silos
	silos := api.Group("/silos")
	siloHandler := NewSiloHandler(deps.SiloUC, deps.SiloFillUC)
	silos.Get("/", siloHandler.List)
	silos.Post("/", siloHandler.Create)
	silos.Get("/:id", siloHandler.GetByID)
	silos.Put("/:id", siloHandler.Update)
	silos.Delete("/:id", siloHandler.Delete)
	silos.Post("/:id/fill", siloHandler.Fill)
	silos.Get("/:id/inputs", siloHandler.ListInputs)

	// Clientes
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.DashboardUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/summary", clientHandler.Summary)

	// Conductores
	drivers := api.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Get("/", driverHandler.List)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Put("/:id", driverHandler.Update)
	drivers.Delete("/:id", driverHandler.Delete)

	// Despachos
	dispatches := api.Group("/dispatches")
	dispatchHandler := NewDispatchHandler(deps.DispatchUC, deps.DeliveryNote)
	dispatches.Get("/", dispatchHandler.List)
	dispatches.Post("/", dispatchHandler.Create)
	dispatches.Get("/:id", dispatchHandler.GetByID)
	dispatches.Put("/:id", dispatchHandler.Update)
	dispatches.Delete("/:id", dispatchHandler.Delete)
	dispatches.Get("/:id/pdf", dispatchHandler.DeliveryNote)

	// Dashboard
	api.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)
}
