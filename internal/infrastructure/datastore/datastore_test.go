package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/restaurant/backend/internal/domain/menu"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "store.db"),
		},
		Log: config.LogConfig{Level: "warn"},
	}
	ctx := context.Background()

	stores, err := Open(ctx, cfg, zaptest.NewLogger(t), Options{Migrate: true, Telemetry: &config.TelemetryConfig{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close(ctx) })

	assert.Equal(t, config.DriverSQLite, stores.Driver)
	require.NoError(t, stores.Ping(ctx))

	item, err := menu.NewMenuItem("Masala Chai", menu.CategoryBeverage, decimal.NewFromInt(40))
	require.NoError(t, err)
	require.NoError(t, stores.MenuItems.Create(ctx, item))

	top, err := stores.TopSellers.TopSellers(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "cassandra"}}
	_, err := Open(context.Background(), cfg, zaptest.NewLogger(t), Options{})
	assert.ErrorContains(t, err, "cassandra")
}
