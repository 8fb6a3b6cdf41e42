// Command seed loads the demo menu and a batch of random orders into the
// configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	menuapp "github.com/restaurant/backend/internal/application/menu"
	orderapp "github.com/restaurant/backend/internal/application/order"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/restaurant/backend/internal/infrastructure/datastore"
	"github.com/restaurant/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	var (
		orders   int
		seed     uint64
		menuOnly bool
	)
	flag.IntVar(&orders, "orders", 10, "Number of random orders to place")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	flag.BoolVar(&menuOnly, "menu-only", false, "Seed the menu and skip orders")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if seed == 0 {
		seed = rand.Uint64()
	}
	if err := run(ctx, cfg, log, seed, orders, menuOnly); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, seed uint64, orders int, menuOnly bool) error {
	stores, err := datastore.Open(ctx, cfg, log, datastore.Options{Migrate: true})
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	s := &seeder{
		menu:   menuapp.NewService(stores.MenuItems, menuapp.WithLogger(log)),
		orders: orderapp.NewService(stores.Orders, stores.MenuItems, orderapp.WithLogger(log)),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:    log,
	}

	created, skipped, err := s.seedMenu(ctx)
	if err != nil {
		return err
	}
	log.Info("Menu seeded", zap.Int("created", created), zap.Int("skipped", skipped))

	if menuOnly || orders <= 0 {
		return nil
	}
	placed, err := s.seedOrders(ctx, orders)
	if err != nil {
		return err
	}
	log.Info("Orders seeded", zap.Int("placed", placed), zap.Uint64("seed", seed))
	return nil
}
