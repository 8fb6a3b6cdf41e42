// Package datastore opens the configured storage backend and exposes its
// repositories behind the domain interfaces.
package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/restaurant/backend/internal/domain/analytics"
	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/domain/order"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/restaurant/backend/internal/infrastructure/logger"
	"github.com/restaurant/backend/internal/infrastructure/migration"
	"github.com/restaurant/backend/internal/infrastructure/mongodb"
	"github.com/restaurant/backend/internal/infrastructure/persistence"
	"github.com/restaurant/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Options tune Open
type Options struct {
	// Migrate applies pending SQL migrations on postgres
	Migrate bool
	// Telemetry enables query tracing on the SQL backends when configured
	Telemetry *config.TelemetryConfig
}

// Stores holds the repositories of one backend
type Stores struct {
	Driver     string
	MenuItems  menu.Repository
	Orders     order.Repository
	TopSellers analytics.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks the backend is reachable
func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend connection
func (s *Stores) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Open connects to the backend selected by cfg.Database.Driver
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*Stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		return openMongo(ctx, &cfg.Database, log)
	case config.DriverPostgres, config.DriverSQLite:
		return openSQL(cfg, log, opts)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func openMongo(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*Stores, error) {
	client, err := mongodb.Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		_ = client.Close(context.Background())
		return nil, err
	}

	db := client.Database()
	return &Stores{
		Driver:     config.DriverMongo,
		MenuItems:  mongodb.NewMenuItemRepository(db),
		Orders:     mongodb.NewOrderRepository(db),
		TopSellers: mongodb.NewTopSellerRepository(db),
		ping:       client.Ping,
		close:      client.Close,
	}, nil
}

func openSQL(cfg *config.Config, log *zap.Logger, opts Options) (*Stores, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), slowThreshold(opts.Telemetry))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*Stores, error) {
		return nil, errors.Join(err, db.Close())
	}

	if opts.Migrate && cfg.Database.Driver == config.DriverPostgres {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return fail(err)
		}
		m, err := migration.New(sqlDB, log)
		if err != nil {
			return fail(err)
		}
		// Closing the migrator would close sqlDB as well
		if err := m.Up(); err != nil {
			return fail(err)
		}
	}

	if opts.Telemetry != nil {
		if err := telemetry.RegisterDBTracing(db.DB, opts.Telemetry, log); err != nil {
			return fail(fmt.Errorf("failed to enable database tracing: %w", err))
		}
	}

	log.Info("Database connected", zap.String("driver", db.Driver()))
	return &Stores{
		Driver:     db.Driver(),
		MenuItems:  persistence.NewGormMenuItemRepository(db.DB),
		Orders:     persistence.NewGormOrderRepository(db.DB),
		TopSellers: persistence.NewGormTopSellerRepository(db.DB),
		ping:       db.Ping,
		close:      func(context.Context) error { return db.Close() },
	}, nil
}

func slowThreshold(cfg *config.TelemetryConfig) (d time.Duration) {
	if cfg != nil {
		d = cfg.DBSlowQueryThresh
	}
	return d
}
