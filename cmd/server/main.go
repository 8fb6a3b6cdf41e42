package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	analyticsapp "github.com/restaurant/backend/internal/application/analytics"
	menuapp "github.com/restaurant/backend/internal/application/menu"
	orderapp "github.com/restaurant/backend/internal/application/order"
	"github.com/restaurant/backend/internal/infrastructure/cache"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/restaurant/backend/internal/infrastructure/datastore"
	"github.com/restaurant/backend/internal/infrastructure/logger"
	"github.com/restaurant/backend/internal/infrastructure/printing"
	"github.com/restaurant/backend/internal/infrastructure/storage"
	"github.com/restaurant/backend/internal/infrastructure/telemetry"
	"github.com/restaurant/backend/internal/interfaces/http/handler"
	"github.com/restaurant/backend/internal/interfaces/http/middleware"
	"github.com/restaurant/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/restaurant/backend/docs"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Restaurant Management API
//	@version		1.0
//	@description	Menu catalog, order intake and sales analytics for a single restaurant.

//	@contact.name	API Support

//	@license.name	MIT

//	@BasePath	/api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, &cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if providers.Logs.IsEnabled() {
		level, _ := zapcore.ParseLevel(cfg.Log.Level)
		if log, err = logger.New(logCfg, providers.Logs.Core(level)); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting restaurant API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("database", cfg.Database.Driver),
	)

	if err := run(ctx, cfg, log, providers); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}
	log.Info("Server exited")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, providers *telemetry.Providers) error {
	stores, err := datastore.Open(ctx, cfg, log, datastore.Options{Migrate: true, Telemetry: &cfg.Telemetry})
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	checks := map[string]handler.Pinger{"database": stores}

	idempotency, err := cache.NewIdempotencyStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if idempotency != nil {
		defer func() { _ = idempotency.Close() }()
		if p, ok := idempotency.(handler.Pinger); ok {
			checks["redis"] = p
		}
	}

	menuOpts := []menuapp.Option{menuapp.WithLogger(log)}
	if cfg.Storage.Enabled {
		images, err := storage.NewS3ImageStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return err
		}
		if err := images.EnsureBucket(ctx); err != nil {
			return err
		}
		menuOpts = append(menuOpts, menuapp.WithImageStorage(images))
	}

	meter := providers.Meter.Meter("restaurant-api")
	orderMetrics, err := telemetry.NewOrderMetrics(meter)
	if err != nil {
		return err
	}
	orderOpts := []orderapp.Option{
		orderapp.WithLogger(log),
		orderapp.WithMetrics(orderMetrics),
	}
	if idempotency != nil {
		orderOpts = append(orderOpts, orderapp.WithIdempotency(idempotency, cfg.Idempotency.TTL))
	}
	if cfg.Printing.Enabled {
		renderer, closer, err := newTicketRenderer(&cfg.Printing, log)
		if err != nil {
			return err
		}
		defer closer.Close()
		orderOpts = append(orderOpts, orderapp.WithTicketRenderer(renderer))
	}

	deps := router.Dependencies{
		Config:    cfg,
		Logger:    log,
		Version:   version,
		Menu:      menuapp.NewService(stores.MenuItems, menuOpts...),
		Orders:    orderapp.NewService(stores.Orders, stores.MenuItems, orderOpts...),
		Analytics: analyticsapp.NewService(stores.TopSellers),
		Checks:    checks,
	}
	if providers.Meter.IsEnabled() {
		deps.Meter = meter
	}
	if cfg.HTTP.RateLimitEnabled {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go deps.RateLimiter.Run(ctx)
	}

	engine, err := router.New(deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

// newTicketRenderer returns an HTML renderer, backed by headless Chrome
// when PDF output is configured.
func newTicketRenderer(cfg *config.PrintingConfig, log *zap.Logger) (*printing.TicketRenderer, io.Closer, error) {
	opts := []printing.TicketOption{printing.WithLogger(log)}
	var closer io.Closer = closerFunc(func() {})
	if cfg.PDF {
		chrome := printing.NewChromePDF(printing.ChromeConfig{
			ExecPath:  cfg.ChromePath,
			Timeout:   cfg.Timeout,
			NoSandbox: cfg.NoSandbox,
			Logger:    log,
		})
		opts = append(opts, printing.WithPDFConverter(chrome))
		closer = closerFunc(chrome.Close)
	}
	renderer, err := printing.NewTicketRenderer(cfg, opts...)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return renderer, closer, nil
}
