package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"laudoapi/internal/config"
	"laudoapi/internal/docx"
	handlers "laudoapi/internal/http/handler"
	"laudoapi/internal/http/middleware"
	"laudoapi/internal/logging"
	"laudoapi/internal/otel"
	"laudoapi/internal/report"
	"laudoapi/internal/service"
	"laudoapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configPath)
		},
	}
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cmd.OutOrStdout(), cfg.Log.Level, cfg.Location())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	store, err := newStore(cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	app, err := newApp(cfg, store, prometheus.NewRegistry(), log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting",
			zap.String("addr", ":"+cfg.Port),
			zap.String("storage_backend", cfg.Storage.Backend),
			zap.Bool("narrate_all_nodules", cfg.Report.NarrateAllNodules),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newStore opens the configured document backend.
func newStore(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendLocal:
		if err := os.MkdirAll(cfg.Storage.OutputDir, 0o750); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
		return storage.NewLocal(cfg.Storage.OutputDir, docx.ContentType)
	case config.BackendMinIO:
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, config.ErrUnknownBackend
	}
}

func newNarrator(cfg *config.AppConfig) report.Narrator {
	if cfg.Report.NarrateAllNodules {
		return report.EachNoduleNarrator{}
	}
	return report.FirstNoduleNarrator{}
}

// newApp wires middleware, metrics and routes around store.
func newApp(cfg *config.AppConfig, store storage.Storage, reg *prometheus.Registry, log *zap.Logger) (*fiber.App, error) {
	if store == nil {
		return nil, errors.New("storage is required")
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	svc := service.NewReportService(store, report.NewFormatter(newNarrator(cfg)), log)

	app := fiber.New(fiber.Config{
		AppName:               "laudoapi",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitBytes,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Reports:  svc,
		Store:    store,
		Gatherer: reg,
		Log:      log,
	})
	return app, nil
}
