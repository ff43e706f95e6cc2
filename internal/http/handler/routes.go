package handler

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arkiv/internal/config"
	"arkiv/internal/hub"
	"arkiv/internal/icons"
	"arkiv/internal/service"
	"arkiv/internal/web"
)

// Deps bundles everything the routes need. Optional fields may be nil: a nil
// Hub disables /ws and a nil Metrics disables /metrics.
type Deps struct {
	DB       *sql.DB
	Config   config.AppConfig
	Pages    *web.Pages
	Archive  service.ArchiveService
	Registry service.RegistryService
	Labels   service.LabelService
	Exports  service.ExportService
	Sync     service.SyncService
	Hub      *hub.Hub
	Metrics  prometheus.Gatherer
}

// RegisterRoutes attaches every route to the app. Handlers stay free of
// business logic; they parse, call a service and shape the response.
func RegisterRoutes(app *fiber.App, deps Deps) {
	// Pages and PWA assets
	app.Get("/", IndexPage(deps.Pages))
	app.Get("/scanner", ScannerPage(deps.Pages))
	app.Get("/box/:id", BoxPage(deps.Pages, deps.Archive))
	app.Get("/manifest.json", ManifestAsset())
	app.Get("/sw.js", ServiceWorkerAsset())
	for _, size := range icons.Sizes {
		app.Get(fmt.Sprintf("/icon-%d.png", size), AppIcon(deps.Config.IconDir, size))
	}

	// Probes
	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(deps.Hub.ServeConn))
	}

	// JSON API. The scanner PWA may be installed from another origin, so
	// everything under /api is CORS-open.
	api := app.Group("/api", cors.New(cors.Config{AllowOrigins: "*"}))

	api.Get("/box/:id", BoxInfo(deps.Archive))
	api.Get("/meta", Meta(deps.Config.Shelves))

	api.Post("/elements", CreateElement(deps.Archive))
	api.Get("/elements", ListElements(deps.Archive))
	api.Get("/elements/:id", GetElement(deps.Archive))
	api.Put("/elements/:id", UpdateElement(deps.Archive))
	api.Delete("/elements/:id", DeleteElement(deps.Archive))
	api.Get("/elements/:id/subtree", ElementSubtree(deps.Archive))
	api.Get("/elements/:id/location", ElementLocation(deps.Archive))

	api.Get("/registry", ListRegistry(deps.Registry))
	api.Post("/registry", AddRegistryEntry(deps.Registry))
	api.Put("/registry/:id", UpdateRegistryEntry(deps.Registry))
	api.Delete("/registry/:id", RemoveRegistryEntry(deps.Registry))
	api.Post("/registry/place", PlaceRegistryEntries(deps.Registry))

	api.Post("/labels", GenerateLabels(deps.Labels))
	api.Get("/export", ExportTable(deps.Exports))

	api.Get("/sync/export", ExportSnapshot(deps.Sync))
	api.Post("/sync/import", ImportSnapshot(deps.Sync))
}
