package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkiv/docs"
	"arkiv/internal/database"
	"arkiv/internal/database/migration"
	handlers "arkiv/internal/http/handler"
	"arkiv/internal/http/middleware"
	"arkiv/internal/hub"
	"arkiv/internal/otel"
	"arkiv/internal/repository/sqlstore"
	"arkiv/internal/service"
	"arkiv/internal/storage"
	"arkiv/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: "Serve the box pages, the scanner PWA and the JSON API on PORT,\n" +
		"applying any pending schema migrations first.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Error("database_connect_failed", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(db, cfg.Database.Driver, log); err != nil {
		log.Error("migration_failed", zap.Error(err))
		return err
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Error("storage_init_failed", zap.Error(err))
		return err
	}
	if store == nil {
		log.Info("object_storage_disabled")
	}
	if cfg.BaseURL == "" {
		log.Warn("base_url_not_set", zap.String("hint", "label generation will be rejected until BASE_URL is configured"))
	}

	pages, err := web.NewPages()
	if err != nil {
		return err
	}

	events := hub.New(log.Named("hub"))
	go events.Run(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	elements := sqlstore.NewElementSQL(db)
	registry := sqlstore.NewRegistrySQL(db)
	batch := sqlstore.NewBatchSQL(db)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:       db,
		Config:   *cfg,
		Pages:    pages,
		Archive:  service.NewArchiveService(elements, events),
		Registry: service.NewRegistryService(registry, elements, batch, events),
		Labels:   service.NewLabelService(elements, store, cfg.BaseURL),
		Exports:  service.NewExportService(elements),
		Sync:     service.NewSyncService(elements, registry, batch, store, events),
		Hub:      events,
		Metrics:  reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listening",
			zap.String("addr", ":"+cfg.Port),
			zap.String("base_url", cfg.BaseURL),
			zap.String("db_driver", cfg.Database.Driver),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		log.Error("server_failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutCtx); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
	}
	if err := shutdownTracing(shutCtx); err != nil {
		log.Error("tracing_shutdown_failed", zap.Error(err))
	}
	return nil
}
