package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("sqlite opens and creates the schema", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "restaurant.db"),
		}

		db, err := NewDatabase(cfg)
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, config.DriverSQLite, db.Driver())
		assert.NoError(t, db.Ping(context.Background()))
		for _, table := range []string{"menu_items", "orders", "order_items"} {
			assert.True(t, db.DB.Migrator().HasTable(table), table)
		}
	})

	t.Run("mongo is not a SQL driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverMongo})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported SQL driver")
	})
}
